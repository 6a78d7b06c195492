// Package outbox is the durable outbound signal log (C2): every signal a
// state transition emits is written here in the same transaction as the
// transition, and a separate relay drains it onto the message bus.
package outbox

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SignalType names one of the six outbound signal kinds the coordinator
// emits (§3).
type SignalType string

const (
	SignalCreatedOffer              SignalType = "CreatedOffer"
	SignalCanceledOffer              SignalType = "CanceledOffer"
	SignalPrepareTransfer            SignalType = "PrepareTransfer"
	SignalFinalizePreparedTransfer   SignalType = "FinalizePreparedTransfer"
	SignalSuccessfulPayment          SignalType = "SuccessfulPayment"
	SignalFailedPayment              SignalType = "FailedPayment"
)

// Status is this outbox row's delivery status, following the teacher's
// pending -> processing -> published/failed/dlq shape adapted to a
// relay that drains rows instead of a worker that drains jobs.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusPublished  Status = "PUBLISHED"
	StatusFailed     Status = "FAILED"
	StatusDLQ        Status = "DLQ"
)

// ValidTransitions enumerates the status graph a row may move through.
var ValidTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing},
	StatusProcessing: {StatusPublished, StatusFailed},
	StatusFailed:     {StatusProcessing, StatusDLQ},
	StatusPublished:  {},
	StatusDLQ:        {},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range ValidTransitions[s] {
		if candidate == next {
			return true
		}
	}

	return false
}

// IsTerminal reports whether s has no further transitions.
func (s Status) IsTerminal() bool {
	return len(ValidTransitions[s]) == 0
}

var (
	ErrSignalTypeEmpty = errors.New("outbox: signal type must not be empty")
	ErrPayloadNil      = errors.New("outbox: payload must not be nil")
)

// Signal is one row of the outbound signal log.
type Signal struct {
	ID         uuid.UUID
	Type       SignalType
	PayeeID    int64
	Payload    json.RawMessage
	Status     Status
	Attempts   int
	CreatedAtTS time.Time
}

// NewSignal builds a pending outbox row from a typed payload, matching
// the teacher's NewMetadataOutbox validate-then-marshal shape.
func NewSignal(signalType SignalType, payeeID int64, payload any) (*Signal, error) {
	if signalType == "" {
		return nil, ErrSignalTypeEmpty
	}

	if payload == nil {
		return nil, ErrPayloadNil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Signal{
		ID:      uuid.New(),
		Type:    signalType,
		PayeeID: payeeID,
		Payload: data,
		Status:  StatusPending,
	}, nil
}
