package internal

import (
	"context"
	"fmt"
	"hppgate/entity"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "hppgate-client/1.0"
	defaultTimeout   = 30 * time.Second
	// gateway replies are short key=value bodies
	maxResponseBody  = 1 << 20
)

// Transport posts form fields to a gateway endpoint. An error is returned only
// when no HTTP response was received; gateway rejections come back as a
// response with ErrorText set.
type Transport interface {
	Post(ctx context.Context, endpoint string, credentials entity.Credentials, form url.Values) (*entity.TransportResponse, error)
}

type HTTPTransport struct {
	userAgent  string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport with a pooled HTTP client and the default
// user agent and timeout.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				DisableKeepAlives:   false,
			},
		},
	}
}

// SetUserAgent must be called before the transport is shared.
func (t *HTTPTransport) SetUserAgent(userAgent string) *HTTPTransport {
	if userAgent != "" {
		t.userAgent = userAgent
	}
	return t
}

// SetTimeout must be called before the transport is shared.
func (t *HTTPTransport) SetTimeout(seconds int) *HTTPTransport {
	if seconds > 0 {
		t.httpClient.Timeout = time.Duration(seconds) * time.Second
	}
	return t
}

func (t *HTTPTransport) Post(ctx context.Context, endpoint string, credentials entity.Credentials, form url.Values) (*entity.TransportResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create http request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", t.userAgent)
	req.SetBasicAuth(credentials.Username, credentials.Password)

	response, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post request: %v", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(response.Body)

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response body: %v", err)
	}

	result := &entity.TransportResponse{
		StatusCode: response.StatusCode,
		Body:       string(body),
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		result.ErrorText = response.Status
		if text := strings.TrimSpace(result.Body); text != "" {
			result.ErrorText = fmt.Sprintf("%s: %s", response.Status, text)
		}
	}
	return result, nil
}
