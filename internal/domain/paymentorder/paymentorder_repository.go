package paymentorder

import "context"

//go:generate mockgen --destination=../../../internal/gen/mock/paymentorder/paymentorder_mock.go --package=mock . Repository
type Repository interface {
	// Create inserts a new order and allocates its coordinator_request_id
	// from the global coordinator_request_id_seq sequence, shared by all
	// payees. Returns the allocated ID.
	Create(ctx context.Context, m *PostgreSQLModel) (int64, error)

	// FindByKey looks up an order by its natural key, used to detect
	// redelivered make_payment_order calls (no-op on repeat).
	FindByKey(ctx context.Context, payeeID, offerID, payerID, payerSeqnum int64) (*PostgreSQLModel, error)

	// GetForUpdate locates an order by (payeeID, |requestID|) under an
	// exclusive lock, used by every state transition in §4.2.
	GetForUpdate(ctx context.Context, payeeID, requestID int64) (*PostgreSQLModel, error)

	// ListLiveByOffer returns every non-finalized order against offerID,
	// used to abort siblings on offer cancellation or commit.
	ListLiveByOffer(ctx context.Context, payeeID, offerID int64) ([]*PostgreSQLModel, error)

	// Update persists changes to an existing order (slot fills,
	// finalization).
	Update(ctx context.Context, m *PostgreSQLModel) error

	// ListFinalizedBefore returns finalized orders whose finalized_at_ts
	// is at or before cutoff, for housekeeping.
	ListFinalizedBefore(ctx context.Context, cutoff int64, limit int) ([]*PostgreSQLModel, error)

	// DeleteBatch removes the given orders by natural key, used by
	// housekeeping. Orders reference no documents, so nothing else is
	// deleted with them.
	DeleteBatch(ctx context.Context, keys []OrderKey) (int64, error)
}

// OrderKey is the natural key of a payment order, used by housekeeping
// batch deletes.
type OrderKey struct {
	PayeeID     int64
	OfferID     int64
	PayerID     int64
	PayerSeqnum int64
}
