package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epandurski/swpt-payments/internal/services/payments"
)

func TestOnPreparedRejectsWrongCoordinatorType(t *testing.T) {
	d := &Dispatcher{Payments: &payments.UseCase{}}

	err := d.OnPrepared(context.Background(), &PreparedSignal{CoordinatorType: "account"})

	assert.ErrorIs(t, err, ErrWrongCoordinatorType)
}

func TestOnRejectedRejectsWrongCoordinatorType(t *testing.T) {
	d := &Dispatcher{Payments: &payments.UseCase{}}

	err := d.OnRejected(context.Background(), &RejectedSignal{CoordinatorType: "account"})

	assert.ErrorIs(t, err, ErrWrongCoordinatorType)
}
