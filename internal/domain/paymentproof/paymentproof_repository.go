package paymentproof

import "context"

//go:generate mockgen --destination=../../../internal/gen/mock/paymentproof/paymentproof_mock.go --package=mock . Repository
type Repository interface {
	// Create inserts a new proof row, allocating proof_id from the
	// payee's per-payee sequence.
	Create(ctx context.Context, m *PostgreSQLModel) (int64, error)

	// Get looks up a proof by its identity with no lock (read-only path).
	Get(ctx context.Context, payeeID, proofID int64) (*PostgreSQLModel, error)

	// ListOlderThan returns proofs paid at or before cutoff, for
	// housekeeping.
	ListOlderThan(ctx context.Context, cutoff int64, limit int) ([]*PostgreSQLModel, error)

	// DeleteBatch removes the given proofs by identity.
	DeleteBatch(ctx context.Context, keys []ProofKey) (int64, error)
}

// ProofKey is the natural key of a payment proof.
type ProofKey struct {
	PayeeID int64
	ProofID int64
}
