package usecase

import (
	"errors"
	"fmt"
	"strings"

	"health-marketplace-backend/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

// ApprovalConflictError reports an approve/reject attempt against a profile
// that is no longer pending. Carries the current status so the client sees
// what actually happened.
type ApprovalConflictError struct {
	Current entity.ApprovalStatus
}

func (e *ApprovalConflictError) Error() string {
	return fmt.Sprintf("professional is already %s", e.Current)
}

// BookingConflictError reports a status transition whose source-status
// precondition failed, naming the booking's current status.
type BookingConflictError struct {
	Current entity.BookingStatus
	Reason  string
}

func (e *BookingConflictError) Error() string {
	return fmt.Sprintf("%s (current status: %s)", e.Reason, e.Current)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
