// Package paymentorder is the payer's attempt to pay one offer, and the
// state machine (§4.2) that drives it from creation through prepare,
// commit or abort.
package paymentorder

import "time"

// State is one of the derived (not stored) states of a payment order.
type State int

const (
	StateLiveNeedsPrimary State = iota
	StateLiveNeedsReciprocal
	StateLiveReadyToCommit
	StateFinalizedSuccess
	StateFinalizedFailure
)

func (s State) String() string {
	switch s {
	case StateLiveNeedsPrimary:
		return "Live-NeedsPrimary"
	case StateLiveNeedsReciprocal:
		return "Live-NeedsReciprocal"
	case StateLiveReadyToCommit:
		return "Live-ReadyToCommit"
	case StateFinalizedSuccess:
		return "Finalized-Success"
	case StateFinalizedFailure:
		return "Finalized-Failure"
	default:
		return "Unknown"
	}
}

// PostgreSQLModel is the row shape of payment orders in the durable store.
type PostgreSQLModel struct {
	PayeeID               int64
	OfferID               int64
	PayerID               int64
	PayerSeqnum           int64
	CoordinatorRequestID  int64

	DebtorID             int64
	Amount               int64
	ReciprocalDebtorID   *int64
	ReciprocalAmount     int64

	PayerNote            *string
	ProofSecret          []byte

	PaymentTransferID           *int64
	ReciprocalPaymentTransferID *int64

	FinalizedAtTS *time.Time
	Success       bool

	CreatedAtTS time.Time
}

// PaymentOrder is the in-memory representation used by the payment order
// engine. PayerNote is opaque to the engine itself — it is never
// inspected, only stored and echoed back — and is cleared on
// finalization along with ProofSecret (§3 privacy invariant).
type PaymentOrder struct {
	PayeeID              int64
	OfferID              int64
	PayerID              int64
	PayerSeqnum          int64
	CoordinatorRequestID int64

	DebtorID           int64
	Amount             int64
	ReciprocalDebtorID *int64
	ReciprocalAmount   int64

	PayerNote   *string
	ProofSecret []byte

	PaymentTransferID           *int64
	ReciprocalPaymentTransferID *int64

	FinalizedAtTS *time.Time
	Success       bool

	CreatedAtTS time.Time
}

func (m *PostgreSQLModel) ToEntity() *PaymentOrder {
	return &PaymentOrder{
		PayeeID:                     m.PayeeID,
		OfferID:                     m.OfferID,
		PayerID:                     m.PayerID,
		PayerSeqnum:                 m.PayerSeqnum,
		CoordinatorRequestID:        m.CoordinatorRequestID,
		DebtorID:                    m.DebtorID,
		Amount:                      m.Amount,
		ReciprocalDebtorID:          m.ReciprocalDebtorID,
		ReciprocalAmount:            m.ReciprocalAmount,
		PayerNote:                   m.PayerNote,
		ProofSecret:                 m.ProofSecret,
		PaymentTransferID:           m.PaymentTransferID,
		ReciprocalPaymentTransferID: m.ReciprocalPaymentTransferID,
		FinalizedAtTS:               m.FinalizedAtTS,
		Success:                     m.Success,
		CreatedAtTS:                 m.CreatedAtTS,
	}
}

func (m *PostgreSQLModel) FromEntity(o *PaymentOrder) {
	*m = PostgreSQLModel{
		PayeeID:                     o.PayeeID,
		OfferID:                     o.OfferID,
		PayerID:                     o.PayerID,
		PayerSeqnum:                 o.PayerSeqnum,
		CoordinatorRequestID:        o.CoordinatorRequestID,
		DebtorID:                    o.DebtorID,
		Amount:                      o.Amount,
		ReciprocalDebtorID:          o.ReciprocalDebtorID,
		ReciprocalAmount:            o.ReciprocalAmount,
		PayerNote:                   o.PayerNote,
		ProofSecret:                 o.ProofSecret,
		PaymentTransferID:           o.PaymentTransferID,
		ReciprocalPaymentTransferID: o.ReciprocalPaymentTransferID,
		FinalizedAtTS:               o.FinalizedAtTS,
		Success:                     o.Success,
		CreatedAtTS:                 o.CreatedAtTS,
	}
}

// NeedsReciprocal reports whether this order has a reciprocal leg to prepare.
func (o *PaymentOrder) NeedsReciprocal() bool {
	return o.ReciprocalDebtorID != nil && o.ReciprocalAmount > 0
}

// NeedsReciprocal reports whether this row has a reciprocal leg to prepare.
func (m *PostgreSQLModel) NeedsReciprocal() bool {
	return m.ReciprocalDebtorID != nil && m.ReciprocalAmount > 0
}

// Abort marks a row finalized with Success=false and clears the secret
// and note per the finalized-implies-no-secret invariant (§3, §8). This
// is the shape every rejection path in §4.2 (offer canceled, debtor
// mismatch, reciprocal failure, rejected prepare) converges on.
func (m *PostgreSQLModel) Abort(now time.Time) {
	m.FinalizedAtTS = &now
	m.Success = false
	m.PayerNote = nil
	m.ProofSecret = nil
}

// Commit marks a row finalized with Success=true and clears the secret
// and note, the successful counterpart to Abort.
func (m *PostgreSQLModel) Commit(now time.Time) {
	m.FinalizedAtTS = &now
	m.Success = true
	m.PayerNote = nil
	m.ProofSecret = nil
}

// Finalized reports whether the order has already reached a terminal state.
func (o *PaymentOrder) Finalized() bool {
	return o.FinalizedAtTS != nil
}

// Finalized reports whether this row has already reached a terminal state.
func (m *PostgreSQLModel) Finalized() bool {
	return m.FinalizedAtTS != nil
}

// CurrentState derives o's state the same way PostgreSQLModel.CurrentState
// does, for read-only consumers that only ever see the domain entity.
func (o *PaymentOrder) CurrentState() State {
	if o.Finalized() {
		if o.Success {
			return StateFinalizedSuccess
		}

		return StateFinalizedFailure
	}

	if o.PaymentTransferID == nil && o.Amount > 0 {
		return StateLiveNeedsPrimary
	}

	if o.NeedsReciprocal() && o.ReciprocalPaymentTransferID == nil {
		return StateLiveNeedsReciprocal
	}

	return StateLiveReadyToCommit
}

// CurrentState derives this order's state purely from field presence, per
// the state table in §4.2.2 — there is no stored status column. A zero
// amount on a leg means that leg needs no transfer at all, not merely
// that it's unfilled (§8 boundary: amount==0 ∧ reciprocal_amount==0
// commits immediately with no PrepareTransfer).
func (m *PostgreSQLModel) CurrentState() State {
	if m.Finalized() {
		if m.Success {
			return StateFinalizedSuccess
		}

		return StateFinalizedFailure
	}

	if m.PaymentTransferID == nil && m.Amount > 0 {
		return StateLiveNeedsPrimary
	}

	if m.NeedsReciprocal() && m.ReciprocalPaymentTransferID == nil {
		return StateLiveNeedsReciprocal
	}

	return StateLiveReadyToCommit
}

// PrimaryRequestID is the positive request ID sent to the accounts
// service for the primary leg.
func (m *PostgreSQLModel) PrimaryRequestID() int64 {
	return m.CoordinatorRequestID
}

// ReciprocalRequestID is the negative request ID sent for the reciprocal
// leg, so sign(id) tells the router which leg a signal refers to.
func (m *PostgreSQLModel) ReciprocalRequestID() int64 {
	return -m.CoordinatorRequestID
}
