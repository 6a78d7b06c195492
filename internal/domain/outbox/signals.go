package outbox

// Payload shapes for the six outbound signal types (§3, §4).

type CreatedOfferPayload struct {
	PayeeID        int64  `json:"payee_id"`
	OfferID        int64  `json:"offer_id"`
	AnnouncementID string `json:"announcement_id"`
	OfferSecret    []byte `json:"offer_secret"`
	CreatedAtTS    int64  `json:"created_at_ts"`
}

type CanceledOfferPayload struct {
	PayeeID int64 `json:"payee_id"`
	OfferID int64 `json:"offer_id"`
}

type PrepareTransferPayload struct {
	CoordinatorID        int64 `json:"coordinator_id"`
	CoordinatorRequestID int64 `json:"coordinator_request_id"`
	Sender               int64 `json:"sender_creditor_id"`
	Recipient            int64 `json:"recipient_creditor_id"`
	DebtorID             int64 `json:"debtor_id"`
	Amount               int64 `json:"amount"`
}

type FinalizePreparedTransferPayload struct {
	CoordinatorID        int64  `json:"coordinator_id"`
	TransferID           int64  `json:"transfer_id"`
	Committed            int64  `json:"committed_amount"`
	OfferID              int64  `json:"offer_id,omitempty"`
	Leg                  string `json:"leg,omitempty"`
}

type SuccessfulPaymentPayload struct {
	PayeeID int64 `json:"payee_id"`
	ProofID int64 `json:"proof_id"`
}

type FailedPaymentDetails struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message,omitempty"`
}

type FailedPaymentPayload struct {
	PayeeID     int64                `json:"payee_id"`
	OfferID     int64                `json:"offer_id"`
	PayerID     int64                `json:"payer_id"`
	PayerSeqnum int64                `json:"payer_seqnum"`
	Details     FailedPaymentDetails `json:"details"`
}
