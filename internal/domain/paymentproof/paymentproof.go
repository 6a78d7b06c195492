// Package paymentproof is the immutable receipt persisted when a payment
// order commits successfully.
package paymentproof

import "time"

// PostgreSQLModel is the row shape of payment proofs in the durable store.
type PostgreSQLModel struct {
	PayeeID     int64
	ProofID     int64
	ProofSecret []byte

	PayerID            int64
	DebtorID           int64
	Amount             int64
	PayerNote          *string
	ReciprocalDebtorID *int64
	ReciprocalAmount   int64

	PaidAtTS time.Time

	OfferID               int64
	OfferCreatedAtTS      time.Time
	OfferDescriptionDocID *string
}

// PaymentProof is the in-memory representation returned by get_proof.
type PaymentProof struct {
	PayeeID     int64
	ProofID     int64
	ProofSecret []byte

	PayerID            int64
	DebtorID           int64
	Amount             int64
	PayerNote          *string
	ReciprocalDebtorID *int64
	ReciprocalAmount   int64

	PaidAtTS time.Time

	OfferID          int64
	OfferCreatedAtTS time.Time

	// OfferDescription is the snapshot of the offer's description taken
	// at commit time, fetched separately from the metadata store.
	OfferDescription map[string]any
}

func (m *PostgreSQLModel) ToEntity(offerDescription map[string]any) *PaymentProof {
	return &PaymentProof{
		PayeeID:            m.PayeeID,
		ProofID:            m.ProofID,
		ProofSecret:        m.ProofSecret,
		PayerID:            m.PayerID,
		DebtorID:           m.DebtorID,
		Amount:             m.Amount,
		PayerNote:          m.PayerNote,
		ReciprocalDebtorID: m.ReciprocalDebtorID,
		ReciprocalAmount:   m.ReciprocalAmount,
		PaidAtTS:           m.PaidAtTS,
		OfferID:            m.OfferID,
		OfferCreatedAtTS:   m.OfferCreatedAtTS,
		OfferDescription:   offerDescription,
	}
}

func (m *PostgreSQLModel) FromEntity(p *PaymentProof, offerDescriptionDocID *string) {
	*m = PostgreSQLModel{
		PayeeID:               p.PayeeID,
		ProofID:               p.ProofID,
		ProofSecret:           p.ProofSecret,
		PayerID:               p.PayerID,
		DebtorID:              p.DebtorID,
		Amount:                p.Amount,
		PayerNote:             p.PayerNote,
		ReciprocalDebtorID:    p.ReciprocalDebtorID,
		ReciprocalAmount:      p.ReciprocalAmount,
		PaidAtTS:              p.PaidAtTS,
		OfferID:               p.OfferID,
		OfferCreatedAtTS:      p.OfferCreatedAtTS,
		OfferDescriptionDocID: offerDescriptionDocID,
	}
}
