package logger

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header carrying the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// NewRequestID returns a fresh random request ID
func NewRequestID() string {
	return uuid.NewString()
}

// ContextWithRequestID stores id in ctx. An empty or unparseable id is
// replaced by a fresh one, so clients cannot inject arbitrary log content.
func ContextWithRequestID(ctx context.Context, id string) (context.Context, string) {
	if _, err := uuid.Parse(id); err != nil {
		id = NewRequestID()
	}
	return context.WithValue(ctx, RequestIDKey, id), id
}
