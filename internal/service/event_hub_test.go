package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHub_DeliversToSubscribers(t *testing.T) {
	hub := NewEventHub()
	sub, backlog := hub.Subscribe()
	defer sub.Close()
	assert.Empty(t, backlog)

	hub.Broadcast(context.Background(), TopicQueueUpdate, map[string]int{"token": 4})

	select {
	case event := <-sub.Events():
		assert.Equal(t, TopicQueueUpdate, event.Topic)
		assert.Empty(t, event.Room)
	case <-time.After(time.Second):
		t.Fatal("expected an event")
	}
}

func TestEventHub_BacklogReplaysRecentEvents(t *testing.T) {
	hub := NewEventHub()

	hub.Broadcast(context.Background(), TopicQueueRefresh, nil)
	hub.BroadcastToRoom(context.Background(), RoomDisplay, TopicQueueUpdate, nil)

	_, backlog := hub.Subscribe()

	require.Len(t, backlog, 2)
	assert.Equal(t, TopicQueueRefresh, backlog[0].Topic)
	assert.Equal(t, RoomDisplay, backlog[1].Room)
}

func TestEventHub_BacklogIsBounded(t *testing.T) {
	hub := NewEventHub()

	for i := 0; i < hubBufferSize+20; i++ {
		hub.Broadcast(context.Background(), TopicQueueRefresh, i)
	}

	_, backlog := hub.Subscribe()

	require.Len(t, backlog, hubBufferSize)
	// Oldest events were dropped; the tail survives.
	assert.Equal(t, hubBufferSize+19, backlog[len(backlog)-1].Payload)
}

func TestEventHub_ClosedSubscriberStopsReceiving(t *testing.T) {
	hub := NewEventHub()
	sub, _ := hub.Subscribe()
	sub.Close()
	sub.Close() // idempotent

	hub.Broadcast(context.Background(), TopicQueueUpdate, nil)

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatal("closed subscription received an event")
		}
	default:
	}
}

func TestDoctorRoom(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, fmt.Sprintf("doctor:%s", id), DoctorRoom(id))
}
