// Package payments implements the payment order engine (C4): creation,
// validation against the referenced offer, and the prepare/finalize
// state machine that drives each order to Finalized-Success or
// Finalized-Failure.
package payments

import (
	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/adapters/redis"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	"github.com/epandurski/swpt-payments/internal/domain/offer"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
	"github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/domain/paymentproof"
)

// UseCase aggregates the repositories the payment order engine needs.
type UseCase struct {
	Conn *postgres.Connection

	OfferRepo    offer.Repository
	OrderRepo    paymentorder.Repository
	ProofRepo    paymentproof.Repository
	OutboxRepo   outbox.Repository
	DocumentRepo document.Repository

	// Dedup is a best-effort cache in front of HandlePrepared's
	// (payee_id, |request_id|, transfer_id) lookup. Nil is fine — a
	// redelivery just costs a Postgres round trip instead of a Redis hit.
	Dedup *redis.SignalDedup
}
