package rabbitmq

// Inbound message shapes consumed off the bus (§4.2.1, §4.2.3, §4.2.5).

// CreateOfferMessage is the payload of a create_offer request.
type CreateOfferMessage struct {
	PayeeID            int64          `json:"payee_id"`
	AnnouncementID     string         `json:"announcement_id"`
	DebtorIDs          []int64        `json:"debtor_ids"`
	DebtorAmounts      []int64        `json:"debtor_amounts"`
	ValidUntilTS       int64          `json:"valid_until_ts"`
	Description        map[string]any `json:"description,omitempty"`
	ReciprocalDebtorID *int64         `json:"reciprocal_debtor_id,omitempty"`
	ReciprocalAmount   int64          `json:"reciprocal_amount,omitempty"`
}

// CancelOfferMessage is the payload of a cancel_offer request.
type CancelOfferMessage struct {
	PayeeID     int64  `json:"payee_id"`
	OfferID     int64  `json:"offer_id"`
	OfferSecret []byte `json:"offer_secret"`
}

// MakePaymentOrderMessage is the payload of a make_payment_order request.
type MakePaymentOrderMessage struct {
	PayeeID      int64  `json:"payee_id"`
	OfferID      int64  `json:"offer_id"`
	OfferSecret  []byte `json:"offer_secret"`
	PayerID      int64  `json:"payer_id"`
	PayerSeqnum  int64  `json:"payer_seqnum"`
	DebtorID     int64  `json:"debtor_id"`
	Amount       int64  `json:"amount"`
	PayerNote    string `json:"payer_note,omitempty"`
}

// PreparedTransferMessage is the accounts service's confirmation that a
// transfer has been locked.
type PreparedTransferMessage struct {
	DebtorID      int64 `json:"debtor_id"`
	SenderID      int64 `json:"sender_creditor_id"`
	RecipientID   int64 `json:"recipient_creditor_id"`
	TransferID    int64 `json:"transfer_id"`
	LockedAmount  int64 `json:"locked_amount"`
	CoordinatorID int64 `json:"coordinator_id"`
	RequestID     int64 `json:"coordinator_request_id"`
}

// RejectedTransferMessage is the accounts service's refusal to prepare a
// transfer.
type RejectedTransferMessage struct {
	CoordinatorID int64  `json:"coordinator_id"`
	RequestID     int64  `json:"coordinator_request_id"`
	ErrorCode     string `json:"rejection_code"`
	Details       string `json:"details,omitempty"`
}
