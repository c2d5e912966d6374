package entity

import "github.com/shopspring/decimal"

// RecurringQueryRequest lists the stored recurring details of a shopper.
type RecurringQueryRequest struct {
	Credentials
	MerchantAccount  string `json:"merchantAccount"`
	ShopperReference string `json:"shopperReference"`
}

// RecurringPaymentRequest charges a previously stored recurring detail
// without shopper interaction.
type RecurringPaymentRequest struct {
	Credentials
	RecurringDetailReference string          `json:"recurringDetailReference"`
	MerchantAccount          string          `json:"merchantAccount"`
	MerchantReference        string          `json:"merchantReference"`
	Currency                 string          `json:"currency"`
	Amount                   decimal.Decimal `json:"amount"`
	ShopperReference         string          `json:"shopperReference"`
	ShopperEmail             string          `json:"shopperEmail"`

	FraudOffset      string `json:"fraudOffset,omitempty"`
	ShopperIP        string `json:"shopperIP,omitempty"`
	ShopperStatement string `json:"shopperStatement,omitempty"`
}
