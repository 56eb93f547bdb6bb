package common

import (
	"context"
	"time"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	startTimeKey
)

// WithRequestID stores the request id for loggers further down the chain
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the id stored by WithRequestID
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// WithStartTime marks when request handling began
func WithStartTime(ctx context.Context, start time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey, start)
}

// GetElapsedTime is the time since WithStartTime, or 0
func GetElapsedTime(ctx context.Context) time.Duration {
	if start, ok := ctx.Value(startTimeKey).(time.Time); ok {
		return time.Since(start)
	}
	return 0
}
