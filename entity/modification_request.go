package entity

import "github.com/shopspring/decimal"

// ModificationAction selects the state change applied to an existing payment.
type ModificationAction string

const (
	ActionCapture        ModificationAction = "capture"
	ActionRefund         ModificationAction = "refund"
	ActionCancel         ModificationAction = "cancel"
	ActionCancelOrRefund ModificationAction = "cancelOrRefund"
)

// Credentials authenticate server-to-server calls at the transport level.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ModificationRequest captures, refunds or cancels a payment identified by
// the gateway reference of the original authorisation.
type ModificationRequest struct {
	Credentials
	MerchantAccount string `json:"merchantAccount"`
	// pspReference of the original payment
	OriginalReference string `json:"originalReference"`
	// Required for capture and refund
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}
