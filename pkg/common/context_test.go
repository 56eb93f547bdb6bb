package common

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestContext(t *testing.T) {
	ctx := context.Background()
	_, ok := GetRequestID(ctx)
	assert.False(t, ok)
	assert.Zero(t, GetElapsedTime(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithStartTime(ctx, time.Now().Add(-time.Second))

	id, ok := GetRequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
	assert.GreaterOrEqual(t, GetElapsedTime(ctx), time.Second)

	r := httptest.NewRequest("GET", "/albums", nil)
	r.Header.Set("X-Amzn-Trace-Id", "Root=1-abc")
	assert.Equal(t, "Root=1-abc", ExtractRequestID(r))

	r.Header.Set("X-Request-ID", "hdr")
	assert.Equal(t, "hdr", ExtractRequestID(r))

	assert.Equal(t, "req-1", ExtractRequestID(r.WithContext(ctx)))
}
