package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The ledger's read-modify-write relies on the invoice row being
// locked before items and payments are read.
func TestFindByIDForUpdate_RequestsRowLock(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var statements []string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(d *gorm.DB) {
		statements = append(statements, d.Statement.SQL.String())
	})
	require.NoError(t, err)

	repo := NewInvoiceRepository()
	_, _ = repo.FindByIDForUpdate(db, uuid.New())

	require.NotEmpty(t, statements)
	assert.Contains(t, statements[0], "FOR UPDATE")
}

func TestFindByID_DoesNotLock(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var statements []string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(d *gorm.DB) {
		statements = append(statements, d.Statement.SQL.String())
	})
	require.NoError(t, err)

	repo := NewInvoiceRepository()
	_, _ = repo.FindByID(db, uuid.New())

	require.NotEmpty(t, statements)
	assert.NotContains(t, statements[0], "FOR UPDATE")
}
