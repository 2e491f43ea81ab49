package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 10.56, Round(10.555))
	assert.Equal(t, 10.55, Round(10.554))
	assert.Equal(t, 0.0, Round(0))
	assert.Equal(t, -3.33, Round(-3.333))

	// Classic float artifacts must land on exact cents.
	assert.Equal(t, 0.3, Round(0.1+0.2))
	assert.Equal(t, 175.0, Round(100.0+50.0*1.5))
}

func TestLine(t *testing.T) {
	assert.Equal(t, 30.0, Line(3, 10))
	assert.Equal(t, 0.3, Line(3, 0.1))
	assert.Equal(t, 0.0, Line(5, 0))
	assert.Equal(t, 33.33, Line(3, 11.11))
}

func TestMax0(t *testing.T) {
	assert.Equal(t, 0.0, Max0(-5))
	assert.Equal(t, 0.0, Max0(0))
	assert.Equal(t, 5.0, Max0(5))
}
