package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-desk-backend/internal/delivery/http/middleware"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// actorID returns the authenticated user's ID for audit records, or nil
// for unauthenticated internal calls.
func actorID(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}

// isDuplicateKeyError detects store-level unique violations so handlers
// can answer 409 instead of 500.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// SQLite reports unique violations as plain text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
