package internal

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"errors"
	"hppgate/entity"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hppRequest() *entity.HPPRequest {
	return &entity.HPPRequest{
		MerchantReference:  "1_1",
		PaymentAmount:      decimal.NewFromInt(10),
		CurrencyCode:       "EUR",
		ShipBeforeDate:     "2026-10-20",
		SkinCode:           "X",
		MerchantAccount:    "A",
		OrderData:          "This is test example",
		SessionValidity:    "2026-10-20T10:00:00+00:00",
		MerchantReturnData: "1234567890",
		CountryCode:        "nl",
		ShopperEmail:       "a@b.com",
		ShopperReference:   "m1",
		HmacKey:            zeroKey,
	}
}

func assertMissing(t *testing.T, err error, name string) {
	t.Helper()
	var missing *MissingFieldError
	require.True(t, errors.As(err, &missing), "expected missing field error, got %v", err)
	assert.Equal(t, name, missing.Name)
}

func TestBuildHPPParameters_AmountInMinorUnits(t *testing.T) {
	params, err := buildHPPParameters(hppRequest())
	require.NoError(t, err)

	assert.Equal(t, "1000", params.Get("paymentAmount"))
}

func TestBuildHPPParameters_FractionalAmount(t *testing.T) {
	request := hppRequest()
	request.PaymentAmount = decimal.RequireFromString("24.99")

	params, err := buildHPPParameters(request)
	require.NoError(t, err)

	assert.Equal(t, "2499", params.Get("paymentAmount"))
}

func TestBuildHPPParameters_Defaults(t *testing.T) {
	params, err := buildHPPParameters(hppRequest())
	require.NoError(t, err)

	assert.Equal(t, "en_US", params.Get("shopperLocale"))
	assert.Equal(t, "RECURRING", params.Get("recurringContract"))
	assert.False(t, params.Has("hmac_key"))
}

func TestBuildHPPParameters_OmitsEmptyOptionalFields(t *testing.T) {
	params, err := buildHPPParameters(hppRequest())
	require.NoError(t, err)

	for _, key := range []string{"offset", "allowedMethods", "blockedMethods", "shopperStatement",
		"brandCode", "issuerId", "billingAddress.postalCode", "billingAddress.country",
		"shopper.firstName", "shopper.lastName"} {
		assert.False(t, params.Has(key), key)
	}
	for _, value := range params.Map() {
		assert.NotEmpty(t, value)
	}
}

func TestBuildHPPParameters_OptionalFields(t *testing.T) {
	request := hppRequest()
	request.ShopperLocale = "nl"
	request.BrandCode = "ideal"
	request.Offset = "5"
	request.RecurringContract = "ONECLICK"
	request.BillingPostalCode = "0000"
	request.BillingCountry = "NL"
	request.ShopperFirstName = "John"
	request.ShopperLastName = "Smith"

	params, err := buildHPPParameters(request)
	require.NoError(t, err)

	assert.Equal(t, "nl", params.Get("shopperLocale"))
	assert.Equal(t, "ideal", params.Get("brandCode"))
	assert.Equal(t, "5", params.Get("offset"))
	assert.Equal(t, "ONECLICK", params.Get("recurringContract"))
	assert.Equal(t, "0000", params.Get("billingAddress.postalCode"))
	assert.Equal(t, "NL", params.Get("billingAddress.country"))
	assert.Equal(t, "John", params.Get("shopper.firstName"))
	assert.Equal(t, "Smith", params.Get("shopper.lastName"))
}

func TestBuildHPPParameters_Order(t *testing.T) {
	request := hppRequest()
	request.BrandCode = "ideal"
	request.ShopperLastName = "Smith"

	params, err := buildHPPParameters(request)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"merchantReference", "paymentAmount", "currencyCode", "shipBeforeDate", "skinCode",
		"merchantAccount", "shopperLocale", "orderData", "sessionValidity", "merchantReturnData",
		"countryCode", "shopperEmail", "shopperReference", "brandCode", "recurringContract",
		"shopper.lastName",
	}, params.Keys())
}

func TestBuildHPPParameters_OrderDataCompressed(t *testing.T) {
	params, err := buildHPPParameters(hppRequest())
	require.NoError(t, err)

	compressed, err := base64.StdEncoding.DecodeString(params.Get("orderData"))
	require.NoError(t, err)
	reader, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	assert.Equal(t, "This is test example", string(data))
}

func TestBuildHPPParameters_MissingField(t *testing.T) {
	request := hppRequest()
	request.SkinCode = ""

	_, err := buildHPPParameters(request)
	assertMissing(t, err, "skinCode")
}

func TestBuildHPPParameters_FirstMissingFieldWins(t *testing.T) {
	request := hppRequest()
	request.ShopperEmail = ""
	request.CurrencyCode = ""
	request.HmacKey = ""

	_, err := buildHPPParameters(request)
	assertMissing(t, err, "currencyCode")
}

func TestBuildHPPParameters_ZeroAmountIsMissing(t *testing.T) {
	request := hppRequest()
	request.PaymentAmount = decimal.Zero

	_, err := buildHPPParameters(request)
	assertMissing(t, err, "paymentAmount")
}

func TestBuildHPPParameters_AmountRoundingToZeroIsMissing(t *testing.T) {
	for _, amount := range []string{"0.004", "-0.001", "-5"} {
		request := hppRequest()
		request.PaymentAmount = decimal.RequireFromString(amount)

		_, err := buildHPPParameters(request)
		assertMissing(t, err, "paymentAmount")
	}
}

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"10", "1000"},
		{"24.99", "2499"},
		{"0.005", "1"},
		{"0.004", ""},
		{"0", ""},
		{"-5", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, minorUnits(decimal.RequireFromString(tt.amount)), tt.amount)
	}
}

func TestBuildHPPParameters_NilRequest(t *testing.T) {
	_, err := buildHPPParameters(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBuildHPPParameters_DoesNotMutateInput(t *testing.T) {
	request := hppRequest()
	before := *request

	_, err := buildHPPParameters(request)
	require.NoError(t, err)

	assert.Equal(t, before, *request)
}

func modificationRequest() *entity.ModificationRequest {
	return &entity.ModificationRequest{
		Credentials:       entity.Credentials{Username: "ws@Company.Test", Password: "secret"},
		MerchantAccount:   "A",
		OriginalReference: "8313547924770610",
		Amount:            decimal.RequireFromString("12.5"),
		Currency:          "EUR",
	}
}

func TestBuildModificationParameters_Capture(t *testing.T) {
	params, err := buildModificationParameters(entity.ActionCapture, modificationRequest())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"action":                                          "Payment.capture",
		"modificationRequest.merchantAccount":             "A",
		"modificationRequest.originalReference":           "8313547924770610",
		"modificationRequest.modificationAmount.currency": "EUR",
		"modificationRequest.modificationAmount.value":    "1250",
	}, params.Map())
}

func TestBuildModificationParameters_CaptureRequiresAmount(t *testing.T) {
	request := modificationRequest()
	request.Amount = decimal.Zero

	_, err := buildModificationParameters(entity.ActionCapture, request)
	assertMissing(t, err, "amount")

	_, err = buildModificationParameters(entity.ActionRefund, request)
	assertMissing(t, err, "amount")

	request.Amount = decimal.RequireFromString("0.001")
	_, err = buildModificationParameters(entity.ActionRefund, request)
	assertMissing(t, err, "amount")
}

func TestBuildModificationParameters_CancelWithoutAmount(t *testing.T) {
	request := modificationRequest()
	request.Amount = decimal.Zero
	request.Currency = ""

	for _, action := range []entity.ModificationAction{entity.ActionCancel, entity.ActionCancelOrRefund} {
		params, err := buildModificationParameters(action, request)
		require.NoError(t, err)
		assert.Equal(t, "Payment."+string(action), params.Get("action"))
		assert.False(t, params.Has("modificationRequest.modificationAmount.value"))
		assert.False(t, params.Has("modificationRequest.modificationAmount.currency"))
	}
}

func TestBuildModificationParameters_Validation(t *testing.T) {
	_, err := buildModificationParameters("", modificationRequest())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = buildModificationParameters(entity.ActionCapture, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = buildModificationParameters("authorise", modificationRequest())
	assert.ErrorIs(t, err, ErrUnsupportedAction)

	request := modificationRequest()
	request.Password = ""
	_, err = buildModificationParameters(entity.ActionCancel, request)
	assertMissing(t, err, "password")
}

func TestBuildRecurringQueryParameters(t *testing.T) {
	params, err := buildRecurringQueryParameters(&entity.RecurringQueryRequest{
		Credentials:      entity.Credentials{Username: "u", Password: "p"},
		MerchantAccount:  "A",
		ShopperReference: "m1_12345",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"action":                                     "Recurring.listRecurringDetails",
		"recurringDetailsRequest.merchantAccount":    "A",
		"recurringDetailsRequest.shopperReference":   "m1_12345",
		"recurringDetailsRequest.recurring.contract": "RECURRING",
	}, params.Map())

	_, err = buildRecurringQueryParameters(&entity.RecurringQueryRequest{
		Credentials:     entity.Credentials{Username: "u", Password: "p"},
		MerchantAccount: "A",
	})
	assertMissing(t, err, "shopperReference")
}

func recurringPaymentRequest() *entity.RecurringPaymentRequest {
	return &entity.RecurringPaymentRequest{
		Credentials:              entity.Credentials{Username: "u", Password: "p"},
		RecurringDetailReference: "LATEST",
		MerchantAccount:          "A",
		MerchantReference:        "1_2",
		Currency:                 "EUR",
		Amount:                   decimal.NewFromInt(10),
		ShopperReference:         "m1_12345",
		ShopperEmail:             "a@b.com",
	}
}

func TestBuildRecurringPaymentParameters(t *testing.T) {
	params, err := buildRecurringPaymentParameters(recurringPaymentRequest())
	require.NoError(t, err)

	assert.Equal(t, "Payment.authorise", params.Get("action"))
	assert.Equal(t, "LATEST", params.Get("paymentRequest.selectedRecurringDetailReference"))
	assert.Equal(t, "RECURRING", params.Get("paymentRequest.recurring.contract"))
	assert.Equal(t, "1000", params.Get("paymentRequest.amount.value"))
	assert.Equal(t, "EUR", params.Get("paymentRequest.amount.currency"))
	assert.Equal(t, "1_2", params.Get("paymentRequest.reference"))
	assert.Equal(t, "ContAuth", params.Get("paymentRequest.shopperInteraction"))
	assert.Equal(t, "sepadirectdebit", params.Get("paymentRequest.selectedbrand"))
	assert.False(t, params.Has("paymentRequest.fraudOffset"))
	assert.False(t, params.Has("paymentRequest.shopperIP"))
}

func TestBuildRecurringPaymentParameters_MissingField(t *testing.T) {
	request := recurringPaymentRequest()
	request.RecurringDetailReference = ""
	request.ShopperEmail = ""

	_, err := buildRecurringPaymentParameters(request)
	assertMissing(t, err, "recurringDetailReference")
}
