package internal

import (
	"bytes"
	"fmt"
	"hppgate/entity"

	"gitee.com/golang-module/dongle"
	"github.com/klauspost/compress/gzip"
	"github.com/shopspring/decimal"
)

const (
	defaultShopperLocale = "en_US"
	recurringContract    = "RECURRING"
	// continuing authorisation: shopper is not present
	shopperInteraction = "ContAuth"
	recurringBrand     = "sepadirectdebit"
	gzipOSUnix         = 3
)

type field struct {
	name  string
	value string
}

// validateRequired fails on the first field with an empty value, in list order.
func validateRequired(fields []field) error {
	for _, f := range fields {
		if f.value == "" {
			return &MissingFieldError{Name: f.name}
		}
	}
	return nil
}

// minorUnits converts a major unit amount to an integer amount of cents.
// Amounts that round to zero or below render as empty, so they are treated
// as absent.
func minorUnits(amount decimal.Decimal) string {
	cents := amount.Shift(2).Round(0)
	if !cents.IsPositive() {
		return ""
	}
	return cents.String()
}

func encodeOrderData(data string) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.OS = gzipOSUnix
	if _, err := zw.Write([]byte(data)); err != nil {
		return "", fmt.Errorf("compress order data: %v", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compress order data: %v", err)
	}
	return dongle.Encode.FromBytes(buf.Bytes()).ByBase64().ToString(), nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// buildHPPParameters assembles the redirect fields of a hosted payment page
// session. The HMAC key is validated but not included.
func buildHPPParameters(r *entity.HPPRequest) (*ParameterSet, error) {
	if r == nil {
		return nil, ErrInvalidInput
	}
	amount := minorUnits(r.PaymentAmount)
	err := validateRequired([]field{
		{"merchantReference", r.MerchantReference},
		{"paymentAmount", amount},
		{"currencyCode", r.CurrencyCode},
		{"shipBeforeDate", r.ShipBeforeDate},
		{"skinCode", r.SkinCode},
		{"merchantAccount", r.MerchantAccount},
		{"orderData", r.OrderData},
		{"sessionValidity", r.SessionValidity},
		{"merchantReturnData", r.MerchantReturnData},
		{"countryCode", r.CountryCode},
		{"shopperEmail", r.ShopperEmail},
		{"shopperReference", r.ShopperReference},
		{"hmac_key", r.HmacKey},
	})
	if err != nil {
		return nil, err
	}

	orderData, err := encodeOrderData(r.OrderData)
	if err != nil {
		return nil, err
	}

	params := NewParameterSet()
	params.Set("merchantReference", r.MerchantReference)
	params.Set("paymentAmount", amount)
	params.Set("currencyCode", r.CurrencyCode)
	params.Set("shipBeforeDate", r.ShipBeforeDate)
	params.Set("skinCode", r.SkinCode)
	params.Set("merchantAccount", r.MerchantAccount)
	params.Set("shopperLocale", valueOr(r.ShopperLocale, defaultShopperLocale))
	params.Set("orderData", orderData)
	params.Set("sessionValidity", r.SessionValidity)
	params.Set("merchantReturnData", r.MerchantReturnData)
	params.Set("countryCode", r.CountryCode)
	params.Set("shopperEmail", r.ShopperEmail)
	params.Set("shopperReference", r.ShopperReference)

	params.Set("allowedMethods", r.AllowedMethods)
	params.Set("blockedMethods", r.BlockedMethods)
	params.Set("offset", r.Offset)
	params.Set("shopperStatement", r.ShopperStatement)
	params.Set("brandCode", r.BrandCode)
	params.Set("issuerId", r.IssuerId)
	params.Set("recurringContract", valueOr(r.RecurringContract, recurringContract))

	params.Set("billingAddress.postalCode", r.BillingPostalCode)
	params.Set("billingAddress.country", r.BillingCountry)
	params.Set("shopper.firstName", r.ShopperFirstName)
	params.Set("shopper.lastName", r.ShopperLastName)

	return params, nil
}

func isSupportedAction(action entity.ModificationAction) bool {
	switch action {
	case entity.ActionCapture, entity.ActionRefund, entity.ActionCancel, entity.ActionCancelOrRefund:
		return true
	}
	return false
}

func buildModificationParameters(action entity.ModificationAction, r *entity.ModificationRequest) (*ParameterSet, error) {
	if action == "" || r == nil {
		return nil, ErrInvalidInput
	}
	if !isSupportedAction(action) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}

	amount := minorUnits(r.Amount)
	required := []field{
		{"username", r.Username},
		{"password", r.Password},
		{"merchantAccount", r.MerchantAccount},
		{"originalReference", r.OriginalReference},
	}
	if action == entity.ActionCapture || action == entity.ActionRefund {
		required = append(required, field{"amount", amount}, field{"currency", r.Currency})
	}
	if err := validateRequired(required); err != nil {
		return nil, err
	}

	params := NewParameterSet()
	params.Set("action", "Payment."+string(action))
	params.Set("modificationRequest.merchantAccount", r.MerchantAccount)
	params.Set("modificationRequest.originalReference", r.OriginalReference)
	params.Set("modificationRequest.modificationAmount.currency", r.Currency)
	params.Set("modificationRequest.modificationAmount.value", amount)
	return params, nil
}

func buildRecurringQueryParameters(r *entity.RecurringQueryRequest) (*ParameterSet, error) {
	if r == nil {
		return nil, ErrInvalidInput
	}
	err := validateRequired([]field{
		{"username", r.Username},
		{"password", r.Password},
		{"merchantAccount", r.MerchantAccount},
		{"shopperReference", r.ShopperReference},
	})
	if err != nil {
		return nil, err
	}

	params := NewParameterSet()
	params.Set("action", "Recurring.listRecurringDetails")
	params.Set("recurringDetailsRequest.merchantAccount", r.MerchantAccount)
	params.Set("recurringDetailsRequest.shopperReference", r.ShopperReference)
	params.Set("recurringDetailsRequest.recurring.contract", recurringContract)
	return params, nil
}

func buildRecurringPaymentParameters(r *entity.RecurringPaymentRequest) (*ParameterSet, error) {
	if r == nil {
		return nil, ErrInvalidInput
	}
	amount := minorUnits(r.Amount)
	err := validateRequired([]field{
		{"username", r.Username},
		{"password", r.Password},
		{"recurringDetailReference", r.RecurringDetailReference},
		{"merchantAccount", r.MerchantAccount},
		{"merchantReference", r.MerchantReference},
		{"currency", r.Currency},
		{"amount", amount},
		{"shopperReference", r.ShopperReference},
		{"shopperEmail", r.ShopperEmail},
	})
	if err != nil {
		return nil, err
	}

	params := NewParameterSet()
	params.Set("action", "Payment.authorise")
	params.Set("paymentRequest.selectedRecurringDetailReference", r.RecurringDetailReference)
	params.Set("paymentRequest.recurring.contract", recurringContract)
	params.Set("paymentRequest.merchantAccount", r.MerchantAccount)
	params.Set("paymentRequest.amount.currency", r.Currency)
	params.Set("paymentRequest.amount.value", amount)
	params.Set("paymentRequest.reference", r.MerchantReference)
	params.Set("paymentRequest.shopperEmail", r.ShopperEmail)
	params.Set("paymentRequest.shopperReference", r.ShopperReference)
	params.Set("paymentRequest.shopperInteraction", shopperInteraction)
	params.Set("paymentRequest.fraudOffset", r.FraudOffset)
	params.Set("paymentRequest.shopperIP", r.ShopperIP)
	params.Set("paymentRequest.shopperStatement", r.ShopperStatement)
	params.Set("paymentRequest.selectedbrand", recurringBrand)
	return params, nil
}
