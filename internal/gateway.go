package internal

import (
	"context"
	"errors"
	"fmt"
	"hppgate/entity"
	"hppgate/services"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	markerPayment   = "pspReference"
	markerRecurring = "recurringDetailReference"
)

// Gateway builds hosted payment page URLs and sends modification and
// recurring requests. The environment is fixed at construction; per-call
// credentials travel with each request, so a Gateway can be shared.
type Gateway struct {
	environment Environment
	transport   Transport
	database    services.Database
	logger      services.LogHandler
	mutex       sync.Mutex
	lastError   string
}

func NewGateway(environment Environment, transport Transport) *Gateway {
	return &Gateway{
		environment: environment,
		transport:   transport,
		logger:      NewLogger("gateway", false, nil),
	}
}

func (g *Gateway) SetDatabase(database services.Database) {
	g.database = database
}

func (g *Gateway) SetLogger(logger services.LogHandler) {
	g.logger = logger
	g.logger.Info(fmt.Sprintf("gateway environment: %s", g.environment))
}

func (g *Gateway) Environment() Environment {
	return g.environment
}

// LastError describes the failure of the most recent call; empty after a
// successful one.
func (g *Gateway) LastError() string {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.lastError
}

func (g *Gateway) setLastError(err error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if err == nil {
		g.lastError = ""
		return
	}
	g.lastError = err.Error()
}

// HPPURL returns the signed redirect URL of a hosted payment page session.
// Sessions with a brand code skip the payment method selection page.
func (g *Gateway) HPPURL(request *entity.HPPRequest) (string, error) {
	params, err := buildHPPParameters(request)
	if err != nil {
		return "", g.fail("hpp url", err)
	}

	signature, err := NewSigner(request.HmacKey, params).CreateSignature()
	if err != nil {
		return "", g.fail("hpp url", fmt.Errorf("create signature: %w", err))
	}
	params.Set(signatureField, signature)

	page := HPPMulti
	if params.Has("brandCode") {
		page = HPPDetails
	}
	observeHPPURL(page)
	g.setLastError(nil)

	g.logger.Debug(fmt.Sprintf("hpp url: reference %s; page %s", request.MerchantReference, page))
	return g.environment.URL(page) + "?" + params.Encode(), nil
}

// Modify captures, refunds or cancels an existing payment.
func (g *Gateway) Modify(ctx context.Context, action entity.ModificationAction, request *entity.ModificationRequest) (entity.GatewayResult, error) {
	const operation = "modify"
	params, err := buildModificationParameters(action, request)
	if err != nil {
		return nil, g.fail(operation, err)
	}
	g.logger.Debug(fmt.Sprintf("modify: action %s", params.Get("action")))
	return g.dispatch(ctx, operation, request.OriginalReference, request.Credentials, params, markerPayment)
}

// ListRecurringDetails returns the recurring contracts stored for a shopper.
func (g *Gateway) ListRecurringDetails(ctx context.Context, request *entity.RecurringQueryRequest) (entity.GatewayResult, error) {
	const operation = "list recurring details"
	params, err := buildRecurringQueryParameters(request)
	if err != nil {
		return nil, g.fail(operation, err)
	}
	return g.dispatch(ctx, operation, request.ShopperReference, request.Credentials, params, markerRecurring)
}

// SubmitRecurringPayment authorises a payment on a stored recurring detail.
func (g *Gateway) SubmitRecurringPayment(ctx context.Context, request *entity.RecurringPaymentRequest) (entity.GatewayResult, error) {
	const operation = "recurring payment"
	params, err := buildRecurringPaymentParameters(request)
	if err != nil {
		return nil, g.fail(operation, err)
	}
	return g.dispatch(ctx, operation, request.MerchantReference, request.Credentials, params, markerPayment)
}

// dispatch posts a fully built parameter set and accepts the response only if
// its body contains marker.
func (g *Gateway) dispatch(ctx context.Context, operation, reference string, credentials entity.Credentials, params *ParameterSet, marker string) (entity.GatewayResult, error) {
	endpoint := g.environment.URL(ModificationRest)
	g.logger.Info(fmt.Sprintf("%s: reference %s; user %s", operation, secret(reference), secret(credentials.Username)))

	response, err := g.transport.Post(ctx, endpoint, credentials, params.Values())
	if err != nil {
		err = &TransportError{Err: err}
		g.audit(ctx, operation, reference, nil, err)
		return nil, g.fail(operation, err)
	}

	if !strings.Contains(response.Body, marker) {
		message := response.ErrorText
		if message == "" {
			message = strings.TrimSpace(response.Body)
		}
		err = &RemoteFailureError{Message: message}
		g.audit(ctx, operation, reference, nil, err)
		return nil, g.fail(operation, err)
	}

	result := ParseResult(response.Body)

	observeRequest(operation, "success")
	g.setLastError(nil)
	g.audit(ctx, operation, reference, result, nil)
	g.logger.Info(fmt.Sprintf("%s: reference %s; psp reference %s", operation, secret(reference), result.PspReference()))
	return result, nil
}

// ParseResult reads a flat key=value&... gateway body. Malformed pairs are
// kept as raw text and a repeated key keeps its last value, so a body that
// carries a success marker is never discarded.
func ParseResult(body string) entity.GatewayResult {
	result := make(entity.GatewayResult)
	for _, pair := range strings.Split(strings.TrimSpace(body), "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = unescapeLenient(key)
		if key == "" {
			continue
		}
		result[key] = unescapeLenient(value)
	}
	return result
}

func unescapeLenient(text string) string {
	unescaped, err := url.QueryUnescape(text)
	if err != nil {
		return text
	}
	return unescaped
}

func (g *Gateway) fail(operation string, err error) error {
	g.setLastError(err)
	switch {
	case IsValidationError(err):
		observeRequest(operation, "invalid")
		g.logger.Warn(fmt.Sprintf("%s: %v", operation, err))
	case errors.Is(err, ErrTransport):
		observeRequest(operation, "transport")
		g.logger.Error(operation, err)
	default:
		observeRequest(operation, "remote")
		g.logger.Warn(fmt.Sprintf("%s: %v", operation, err))
	}
	return err
}

func (g *Gateway) audit(ctx context.Context, operation, reference string, result entity.GatewayResult, failure error) {
	if g.database == nil {
		return
	}
	record := &entity.PaymentResult{
		Operation:    operation,
		Reference:    reference,
		PspReference: result.PspReference(),
		Success:      failure == nil,
		Result:       result,
		RequestID:    GetRequestID(ctx),
		Time:         time.Now().UTC(),
	}
	if failure != nil {
		record.Error = failure.Error()
	}
	if err := g.database.SavePaymentResult(ctx, record); err != nil {
		g.logger.Error("save payment result", err)
	}
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
