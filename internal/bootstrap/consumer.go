package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/epandurski/swpt-payments/internal/adapters/rabbitmq"
	"github.com/epandurski/swpt-payments/internal/services/offers"
	"github.com/epandurski/swpt-payments/internal/services/payments"
	"github.com/epandurski/swpt-payments/internal/services/router"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// newConsumerRoutes registers the five inbound handlers on their queue
// names, mirroring the teacher's MultiQueueConsumer wiring in
// components/consumer's bootstrap package.
func newConsumerRoutes(s *Service) *rabbitmq.ConsumerRoutes {
	routes := rabbitmq.NewConsumerRoutes(s.RabbitConn, s.Logger)

	routes.Register(s.Config.QueueCreateOffer, s.handleCreateOffer)
	routes.Register(s.Config.QueueCancelOffer, s.handleCancelOffer)
	routes.Register(s.Config.QueueMakePaymentOrder, s.handleMakePaymentOrder)
	routes.Register(s.Config.QueuePreparedTransfer, s.handlePreparedTransfer)
	routes.Register(s.Config.QueueRejectedTransfer, s.handleRejectedTransfer)

	return routes
}

func withRequestContext(ctx context.Context, s *Service) context.Context {
	ctx = swptlog.ContextWithLogger(ctx, s.Logger)
	return telemetry.ContextWithTracer(ctx, telemetry.Tracer(ApplicationName))
}

func (s *Service) handleCreateOffer(ctx context.Context, body []byte) error {
	var msg rabbitmq.CreateOfferMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("bootstrap: decode create_offer: %w", err)
	}

	_, err := s.Offers.CreateOffer(withRequestContext(ctx, s), &offers.CreateOfferInput{
		PayeeID:            msg.PayeeID,
		AnnouncementID:     msg.AnnouncementID,
		DebtorIDs:          msg.DebtorIDs,
		DebtorAmounts:      msg.DebtorAmounts,
		ValidUntilTS:       time.Unix(msg.ValidUntilTS, 0).UTC(),
		Description:        msg.Description,
		ReciprocalDebtorID: msg.ReciprocalDebtorID,
		ReciprocalAmount:   msg.ReciprocalAmount,
	})

	return err
}

func (s *Service) handleCancelOffer(ctx context.Context, body []byte) error {
	var msg rabbitmq.CancelOfferMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("bootstrap: decode cancel_offer: %w", err)
	}

	return s.Offers.CancelOffer(withRequestContext(ctx, s), msg.PayeeID, msg.OfferID, msg.OfferSecret)
}

func (s *Service) handleMakePaymentOrder(ctx context.Context, body []byte) error {
	var msg rabbitmq.MakePaymentOrderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("bootstrap: decode make_payment_order: %w", err)
	}

	var payerNote *string
	if msg.PayerNote != "" {
		payerNote = &msg.PayerNote
	}

	return s.Payments.MakePaymentOrder(withRequestContext(ctx, s), &payments.MakePaymentOrderInput{
		PayeeID:     msg.PayeeID,
		OfferID:     msg.OfferID,
		OfferSecret: msg.OfferSecret,
		PayerID:     msg.PayerID,
		PayerSeqnum: msg.PayerSeqnum,
		DebtorID:    msg.DebtorID,
		Amount:      msg.Amount,
		PayerNote:   payerNote,
	})
}

func (s *Service) handlePreparedTransfer(ctx context.Context, body []byte) error {
	var msg rabbitmq.PreparedTransferMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("bootstrap: decode prepared transfer: %w", err)
	}

	return s.Dispatcher.OnPrepared(withRequestContext(ctx, s), &router.PreparedSignal{
		CoordinatorType: "payment",
		CoordinatorID:   msg.CoordinatorID,
		RequestID:       msg.RequestID,
		DebtorID:        msg.DebtorID,
		SenderID:        msg.SenderID,
		RecipientID:     msg.RecipientID,
		TransferID:      msg.TransferID,
		LockedAmount:    msg.LockedAmount,
	})
}

func (s *Service) handleRejectedTransfer(ctx context.Context, body []byte) error {
	var msg rabbitmq.RejectedTransferMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("bootstrap: decode rejected transfer: %w", err)
	}

	return s.Dispatcher.OnRejected(withRequestContext(ctx, s), &router.RejectedSignal{
		CoordinatorType: "payment",
		CoordinatorID:   msg.CoordinatorID,
		RequestID:       msg.RequestID,
		ErrorCode:       msg.ErrorCode,
		Details:         msg.Details,
	})
}
