package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rollouthq/pkg/auth"
	pkgerrors "rollouthq/pkg/errors"
	"rollouthq/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.Write([]byte(user.UserID))
}

func TestAuthenticator(t *testing.T) {
	logger := zap.NewNop()
	validator, err := auth.NewJWTValidator(auth.JWTConfig{SigningMethod: "HS256", SecretKey: "s3cret"})
	require.NoError(t, err)
	token, err := auth.SignHS256("s3cret", auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}, time.Minute)
	require.NoError(t, err)
	forged, err := auth.SignHS256("other", auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid bearer", "Bearer " + token, http.StatusOK, "alice"},
		{"bare token", token, http.StatusOK, "alice"},
		{"wrong signature", "Bearer " + forged, http.StatusUnauthorized, ""},
		{"missing header", "", http.StatusUnauthorized, ""},
	}

	a := NewAuthenticator(validator, nil, nil, pkgerrors.NewErrorHandler(logger, false), logger)
	handler := a.Middleware(http.HandlerFunc(echoUser))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestAuthenticatorWithoutValidatorRejectsBearer(t *testing.T) {
	logger := zap.NewNop()
	a := NewAuthenticator(nil, nil, nil, pkgerrors.NewErrorHandler(logger, false), logger)

	req := httptest.NewRequest(http.MethodGet, "/albums", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	a.Middleware(http.HandlerFunc(echoUser)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (bool, error) { return false, nil }
func (denyAll) Reset(context.Context, string) error         { return nil }

func TestAuthenticatorRateLimit(t *testing.T) {
	logger := zap.NewNop()
	a := NewAuthenticator(nil, denyAll{}, nil, pkgerrors.NewErrorHandler(logger, false), logger)

	rec := httptest.NewRecorder()
	a.Middleware(http.HandlerFunc(echoUser)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/albums", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestCircuitBreakerOpensOnServerErrors(t *testing.T) {
	logger := zap.NewNop()
	cfg := DefaultCircuitBreakerConfig("test")
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5

	failing := CircuitBreaker(cfg, pkgerrors.NewErrorHandler(logger, false), logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}),
	)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		failing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/albums", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	}

	rec := httptest.NewRecorder()
	failing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/albums", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCircuitBreakerIgnoresClientErrors(t *testing.T) {
	logger := zap.NewNop()
	cfg := DefaultCircuitBreakerConfig("test")
	cfg.MinRequests = 1

	handler := CircuitBreaker(cfg, pkgerrors.NewErrorHandler(logger, false), logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}),
	)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/projects", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	collector := observability.NewCollector("test")
	r := chi.NewRouter()
	r.Use(Metrics(collector))
	r.Get("/projects/{id}", func(w http.ResponseWriter, r *http.Request) {})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects/"+id, nil))
	}

	families, err := collector.Registry().Gather()
	require.NoError(t, err)

	var count float64
	for _, mf := range families {
		if mf.GetName() != "test_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == "/projects/{id}" && labels["status"] == "200" {
				count += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(2), count)
}
