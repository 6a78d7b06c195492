package outbox

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen --destination=../../../internal/gen/mock/outbox/outbox_mock.go --package=mock . Repository
type Repository interface {
	// Insert writes a signal row in the caller's open transaction.
	Insert(ctx context.Context, s *Signal) error

	// ListPending returns up to limit rows in PENDING or retry-eligible
	// FAILED status, for the relay to drain.
	ListPending(ctx context.Context, limit int) ([]*Signal, error)

	// MarkStatus transitions a row to next status, rejecting the call if
	// the transition is not in ValidTransitions.
	MarkStatus(ctx context.Context, id uuid.UUID, next Status) error
}
