package offer

import "context"

// Repository persists and retrieves offers. Create, Get and Delete take
// the lock mode they need directly rather than exposing a separate
// locking parameter, since every caller already knows which mode it
// needs from §5 of the design.
//
//go:generate mockgen --destination=../../../internal/gen/mock/offer/offer_mock.go --package=mock . Repository
type Repository interface {
	// Create inserts a new offer row and returns the store-assigned
	// OfferID drawn from the payee's per-payee sequence.
	Create(ctx context.Context, m *PostgreSQLModel) (int64, error)

	// GetForShare returns the offer under a shared (read) lock, used by
	// make_payment_order while validating a route against it.
	GetForShare(ctx context.Context, payeeID, offerID int64) (*PostgreSQLModel, error)

	// GetForUpdate returns the offer under an exclusive lock, used by
	// cancel_offer and the commit path.
	GetForUpdate(ctx context.Context, payeeID, offerID int64) (*PostgreSQLModel, error)

	// Get returns the offer with no lock, used by the read-only HTTP surface.
	Get(ctx context.Context, payeeID, offerID int64) (*PostgreSQLModel, error)

	// Delete removes the offer row. Callers must already hold the
	// exclusive lock acquired via GetForUpdate in the same transaction.
	Delete(ctx context.Context, payeeID, offerID int64) error
}
