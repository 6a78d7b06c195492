// Package coordinatorerr is the business-error catalog for the payment
// coordinator. The PAY0xx codes are the taxonomy the coordinator state
// machine reports to callers; they are not a parallel classification
// layered on top of it.
package coordinatorerr

import "errors"

// Sentinel business errors. ValidateBusinessError maps these, via
// errors.Is, onto a typed wrapper carrying the matching Code below.
var (
	ErrOfferNotFound     = errors.New("offer not found or wrong secret")
	ErrWrongSecret       = errors.New("offer not found or wrong secret")
	ErrDebtorNotAccepted = errors.New("debtor not in the offer's accepted routes")
	ErrAmountMismatch    = errors.New("amount does not match the route")
	ErrOfferCanceled     = errors.New("offer canceled by payee while order was live")
	ErrReciprocalFailed  = errors.New("reciprocal transfer could not be prepared")
	ErrOfferExpired      = errors.New("offer expired before order was accepted")

	ErrOrderNotFound = errors.New("payment order not found")
	ErrProofNotFound = errors.New("payment proof not found")
)

// Code is one of the PAY0xx business-error codes from the payment order
// state machine's rejection taxonomy.
type Code string

const (
	CodeOfferNotFoundOrWrongSecret Code = "PAY001"
	CodeDebtorNotAccepted          Code = "PAY002"
	CodeAmountMismatch             Code = "PAY003"
	CodeOfferCanceled              Code = "PAY004"
	CodeReciprocalFailed           Code = "PAY005"
	CodeOfferExpired               Code = "PAY006"
)
