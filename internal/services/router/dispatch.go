// Package router implements the transfer-signal router (C5): a stateless
// dispatcher that asserts the inbound signal is ours and forwards it to
// the payment order engine by coordinator ID and request ID.
package router

import (
	"context"
	"fmt"

	"github.com/epandurski/swpt-payments/internal/services/payments"
)

const coordinatorTypePayment = "payment"

// ErrWrongCoordinatorType is returned when a dispatched signal names a
// coordinator type other than "payment" — this core should never have
// been delivered that signal, and the caller should nack/escalate it
// rather than treat it as a business rejection (§7, programmer-detected
// invariant violation).
var ErrWrongCoordinatorType = fmt.Errorf("router: coordinator_type is not %q", coordinatorTypePayment)

// Dispatcher forwards correlated inbound signals to the payment order
// engine. It holds no state of its own (§4.3).
type Dispatcher struct {
	Payments *payments.UseCase
}

// PreparedSignal is the wire shape of an inbound prepared-transfer event.
type PreparedSignal struct {
	CoordinatorType string
	CoordinatorID   int64
	RequestID       int64
	DebtorID        int64
	SenderID        int64
	RecipientID     int64
	TransferID      int64
	LockedAmount    int64
}

// RejectedSignal is the wire shape of an inbound rejected-transfer event.
type RejectedSignal struct {
	CoordinatorType string
	CoordinatorID   int64
	RequestID       int64
	ErrorCode       string
	Details         string
}

// OnPrepared handles on_prepared_payment_transfer_signal (§6).
func (d *Dispatcher) OnPrepared(ctx context.Context, s *PreparedSignal) error {
	if s.CoordinatorType != coordinatorTypePayment {
		return ErrWrongCoordinatorType
	}

	return d.Payments.HandlePrepared(ctx, &payments.PreparedTransfer{
		CoordinatorID: s.CoordinatorID,
		RequestID:     s.RequestID,
		DebtorID:      s.DebtorID,
		SenderID:      s.SenderID,
		RecipientID:   s.RecipientID,
		TransferID:    s.TransferID,
		LockedAmount:  s.LockedAmount,
	})
}

// OnRejected handles on_rejected_payment_transfer_signal (§6).
func (d *Dispatcher) OnRejected(ctx context.Context, s *RejectedSignal) error {
	if s.CoordinatorType != coordinatorTypePayment {
		return ErrWrongCoordinatorType
	}

	return d.Payments.HandleRejected(ctx, &payments.RejectedTransfer{
		CoordinatorID: s.CoordinatorID,
		RequestID:     s.RequestID,
		ErrorCode:     s.ErrorCode,
		Details:       s.Details,
	})
}
