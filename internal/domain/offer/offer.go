// Package offer is the payee's published invitation to be paid: the
// accepted debtor routes, the optional reciprocal leg, and the secret
// that gates reads and cancellation.
package offer

import "time"

// PostgreSQLModel is the row shape of offers in the durable store.
type PostgreSQLModel struct {
	PayeeID             int64
	OfferID             int64
	OfferSecret         []byte
	DebtorIDs           []int64
	DebtorAmounts       []int64
	ValidUntilTS        time.Time
	CreatedAtTS         time.Time
	ReciprocalDebtorID  *int64
	ReciprocalAmount    int64
	DescriptionDocID    *string
}

// Offer is the in-memory representation used by the offer registry and
// payment order engine.
type Offer struct {
	PayeeID            int64
	OfferID            int64
	OfferSecret        []byte
	DebtorIDs          []int64
	DebtorAmounts      []int64
	ValidUntilTS       time.Time
	CreatedAtTS        time.Time
	ReciprocalDebtorID *int64
	ReciprocalAmount   int64

	// Description is the opaque document attached to the offer, stored
	// separately as a Mongo document; nil when the offer carries a
	// reciprocal leg instead (the two are mutually exclusive, §3).
	Description map[string]any
}

// ToEntity converts a stored row into the domain type. docDescription is
// the document fetched separately from the metadata store, or nil.
func (m *PostgreSQLModel) ToEntity(docDescription map[string]any) *Offer {
	return &Offer{
		PayeeID:            m.PayeeID,
		OfferID:            m.OfferID,
		OfferSecret:        m.OfferSecret,
		DebtorIDs:          m.DebtorIDs,
		DebtorAmounts:      m.DebtorAmounts,
		ValidUntilTS:       m.ValidUntilTS,
		CreatedAtTS:        m.CreatedAtTS,
		ReciprocalDebtorID: m.ReciprocalDebtorID,
		ReciprocalAmount:   m.ReciprocalAmount,
		Description:        docDescription,
	}
}

// FromEntity converts the domain type into the stored row shape.
// docID is the metadata document ID already allocated for Description,
// or nil when the offer has no description.
func (m *PostgreSQLModel) FromEntity(o *Offer, docID *string) {
	*m = PostgreSQLModel{
		PayeeID:            o.PayeeID,
		OfferID:            o.OfferID,
		OfferSecret:        o.OfferSecret,
		DebtorIDs:          o.DebtorIDs,
		DebtorAmounts:      o.DebtorAmounts,
		ValidUntilTS:       o.ValidUntilTS,
		CreatedAtTS:        o.CreatedAtTS,
		ReciprocalDebtorID: o.ReciprocalDebtorID,
		ReciprocalAmount:   o.ReciprocalAmount,
		DescriptionDocID:   docID,
	}
}

// SanitizeAmount treats absent or negative route amounts as zero, matching
// the original's sanitize_amounts behavior for offer route matching.
func SanitizeAmount(amount int64) int64 {
	if amount < 0 {
		return 0
	}

	return amount
}

// AcceptsRoute reports whether debtorID/amount is one of the offer's
// accepted payment routes.
func (o *Offer) AcceptsRoute(debtorID, amount int64) bool {
	for i, id := range o.DebtorIDs {
		if id != debtorID {
			continue
		}

		if i >= len(o.DebtorAmounts) {
			continue
		}

		if SanitizeAmount(o.DebtorAmounts[i]) == SanitizeAmount(amount) {
			return true
		}
	}

	return false
}

// Expired reports whether the offer's validity window has closed as of now.
func (o *Offer) Expired(now time.Time) bool {
	return now.After(o.ValidUntilTS)
}

// HasReciprocal reports whether this offer carries a paired obligation
// from payee to payer.
func (o *Offer) HasReciprocal() bool {
	return o.ReciprocalDebtorID != nil && o.ReciprocalAmount > 0
}
