package payments

import (
	"context"

	"github.com/epandurski/swpt-payments/internal/adapters/postgres"
	"github.com/epandurski/swpt-payments/internal/swptlog"
	"github.com/epandurski/swpt-payments/internal/telemetry"
)

// RejectedTransfer is the accounts service's refusal to prepare a
// transfer, dispatched to us by the router (C5).
type RejectedTransfer struct {
	CoordinatorID int64
	RequestID     int64
	ErrorCode     string
	Details       string
}

// HandleRejected implements §4.2.5. A rejection of the reciprocal leg is
// reported as PAY005 regardless of the accounts service's own code,
// since from the payer's perspective it was the coordinator's reciprocal
// obligation that failed, not their own transfer.
func (uc *UseCase) HandleRejected(ctx context.Context, in *RejectedTransfer) error {
	logger := swptlog.FromContext(ctx)
	tracer := telemetry.TracerFromContext(ctx)

	ctx, span := tracer.Start(ctx, "payments.handle_rejected")
	defer span.End()

	err := postgres.WithTx(ctx, uc.Conn, func(ctx context.Context) error {
		ord, err := uc.OrderRepo.GetForUpdate(ctx, in.CoordinatorID, in.RequestID)
		if err != nil {
			return err
		}

		if ord == nil || ord.Finalized() {
			return nil
		}

		if in.RequestID < 0 {
			return uc.abortOrder(ctx, ord, "PAY005", "reciprocal transfer could not be prepared")
		}

		return uc.abortOrder(ctx, ord, in.ErrorCode, in.Details)
	})
	if err != nil {
		telemetry.HandleSpanError(&span, "failed to handle rejected transfer", err)
		logger.Errorf("failed to handle rejected transfer payee=%d request=%d: %v", in.CoordinatorID, in.RequestID, err)

		return err
	}

	return nil
}
