// Package entity defines data models for the hppgate service.
package entity

import "github.com/shopspring/decimal"

// HPPRequest describes a hosted payment page session. The signed redirect URL
// is built from these fields; HmacKey is used for signing only and never leaves
// the service.
type HPPRequest struct {
	MerchantReference string `json:"merchantReference"`
	// Amount in major units (e.g. 24.99), sent to the gateway in minor units
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	CurrencyCode  string          `json:"currencyCode"`
	// Date the goods must be shipped before, YYYY-MM-DD
	ShipBeforeDate  string `json:"shipBeforeDate"`
	SkinCode        string `json:"skinCode"`
	MerchantAccount string `json:"merchantAccount"`
	// Defaults to en_US
	ShopperLocale string `json:"shopperLocale,omitempty"`
	// Free text shown on the payment page; sent gzipped and Base64-encoded
	OrderData string `json:"orderData"`
	// ISO 8601 moment after which the payment session expires
	SessionValidity    string `json:"sessionValidity"`
	MerchantReturnData string `json:"merchantReturnData"`
	CountryCode        string `json:"countryCode"`
	ShopperEmail       string `json:"shopperEmail"`
	ShopperReference   string `json:"shopperReference"`
	// Hex-encoded skin HMAC key
	HmacKey string `json:"hmac_key"`

	AllowedMethods   string `json:"allowedMethods,omitempty"`
	BlockedMethods   string `json:"blockedMethods,omitempty"`
	Offset           string `json:"offset,omitempty"`
	ShopperStatement string `json:"shopperStatement,omitempty"`
	// Payment method brand; when set the shopper skips the method selection page
	BrandCode string `json:"brandCode,omitempty"`
	IssuerId  string `json:"issuerId,omitempty"`
	// Defaults to RECURRING
	RecurringContract string `json:"recurringContract,omitempty"`

	BillingPostalCode string `json:"zipcode,omitempty"`
	BillingCountry    string `json:"country,omitempty"`
	ShopperFirstName  string `json:"first_name,omitempty"`
	ShopperLastName   string `json:"last_name,omitempty"`
}
