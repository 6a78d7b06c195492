// Package offers implements the offer registry (C3): create, cancel and
// read offers, and the concurrent-reader/cancellation guard around them.
package offers

import (
	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/domain/document"
	"github.com/epandurski/swpt-payments/internal/domain/offer"
	"github.com/epandurski/swpt-payments/internal/domain/outbox"
	"github.com/epandurski/swpt-payments/internal/domain/paymentorder"
	"github.com/epandurski/swpt-payments/internal/domain/paymentproof"
)

// UseCase aggregates the repositories the offer registry needs, mirroring
// the teacher's UseCase aggregation shape.
type UseCase struct {
	Conn *postgres.Connection

	OfferRepo    offer.Repository
	OrderRepo    paymentorder.Repository
	ProofRepo    paymentproof.Repository
	OutboxRepo   outbox.Repository
	DocumentRepo document.Repository
}
