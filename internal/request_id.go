package internal

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "requestID"

// GenerateRequestID returns a random uuid used to correlate server log lines
// with the audit record of the gateway call they triggered.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID attaches a fresh id unless ctx already carries one.
func WithRequestID(ctx context.Context) context.Context {
	if GetRequestID(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, GenerateRequestID())
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
