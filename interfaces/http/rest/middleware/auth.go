package middleware

import (
	"net"
	"net/http"
	"strings"

	"rollouthq/pkg/auth"
	pkgerrors "rollouthq/pkg/errors"

	"go.uber.org/zap"
)

// Authenticator resolves the caller's identity and applies rate limits.
// Claims from an API Gateway JWT authorizer win; otherwise a bearer token
// is validated locally when a validator is configured.
type Authenticator struct {
	validator   *auth.JWTValidator
	ipLimiter   auth.RateLimiter
	userLimiter auth.RateLimiter
	errors      *pkgerrors.ErrorHandler
	logger      *zap.Logger
}

// NewAuthenticator creates the middleware. validator and the limiters may
// be nil.
func NewAuthenticator(
	validator *auth.JWTValidator,
	ipLimiter auth.RateLimiter,
	userLimiter auth.RateLimiter,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *Authenticator {
	return &Authenticator{
		validator:   validator,
		ipLimiter:   ipLimiter,
		userLimiter: userLimiter,
		errors:      errorHandler,
		logger:      logger,
	}
}

// Middleware rejects requests without a verified subject with 401
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !a.allow(w, r, a.ipLimiter, clientIP(r)) {
			return
		}

		user, ok := auth.UserFromAPIGateway(ctx)
		if !ok {
			user, ok = a.fromBearer(r)
		}
		if !ok {
			a.errors.Handle(w, r, pkgerrors.NewUnauthorizedError(""))
			return
		}

		if !a.allow(w, r, a.userLimiter, user.UserID) {
			return
		}

		a.logger.Debug("Request authenticated",
			zap.String("userID", user.UserID),
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
		)
		next.ServeHTTP(w, r.WithContext(auth.SetUserInContext(ctx, user)))
	})
}

func (a *Authenticator) fromBearer(r *http.Request) (*auth.UserContext, bool) {
	if a.validator == nil {
		return nil, false
	}
	token := extractToken(r)
	if token == "" {
		return nil, false
	}
	claims, err := a.validator.ValidateToken(token)
	if err != nil {
		a.logger.Warn("Invalid token",
			zap.Error(err),
			zap.String("ip", clientIP(r)),
			zap.String("path", r.URL.Path),
		)
		return nil, false
	}
	return claims.UserContext(), true
}

func (a *Authenticator) allow(w http.ResponseWriter, r *http.Request, limiter auth.RateLimiter, key string) bool {
	if limiter == nil {
		return true
	}
	allowed, err := limiter.Allow(r.Context(), key)
	if err != nil {
		a.errors.Handle(w, r, err)
		return false
	}
	if !allowed {
		limit := 0
		if kl, ok := limiter.(*auth.KeyedLimiter); ok {
			limit = kl.Limit()
		}
		a.errors.Handle(w, r, pkgerrors.NewRateLimitError(limit, "minute"))
		return false
	}
	return true
}

// extractToken reads the Authorization header, with or without the Bearer
// scheme
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// clientIP relies on chi's RealIP having rewritten RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
