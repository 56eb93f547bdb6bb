package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "local-dev-secret"

func TestJWTValidator_HS256(t *testing.T) {
	v, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256", SecretKey: testSecret, Issuer: "rollout-local"})
	require.NoError(t, err)

	token, err := SignHS256(testSecret, Claims{
		Email:       "a@example.com",
		CognitoUser: "alice",
		Groups:      []string{"artists"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-a",
			Issuer:  "rollout-local",
		},
	}, time.Minute)
	require.NoError(t, err)

	claims, err := v.ValidateToken("Bearer " + token)
	require.NoError(t, err)

	user := claims.UserContext()
	assert.Equal(t, "user-a", user.UserID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []string{"artists"}, user.Groups)
}

func TestJWTValidator_Rejects(t *testing.T) {
	v, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256", SecretKey: testSecret, Audience: []string{"web"}})
	require.NoError(t, err)

	_, err = v.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	expired, err := SignHS256(testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u",
		Audience:  jwt.ClaimStrings{"web"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}, time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	wrongKey, err := SignHS256("other", Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}, time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(wrongKey)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	wrongAud, err := SignHS256(testSecret, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  "u",
		Audience: jwt.ClaimStrings{"mobile"},
	}}, time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(wrongAud)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestNewJWTValidator_Config(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256"})
	assert.Error(t, err)
	_, err = NewJWTValidator(JWTConfig{SigningMethod: "RS256"})
	assert.Error(t, err)
	_, err = NewJWTValidator(JWTConfig{SigningMethod: "ES512", SecretKey: "x"})
	assert.Error(t, err)
}

func TestUserFromAPIGateway(t *testing.T) {
	var (
		user *UserContext
		ok   bool
	)
	router := chi.NewRouter()
	router.Get("/me", func(w http.ResponseWriter, r *http.Request) {
		user, ok = UserFromAPIGateway(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	adapter := chiadapter.NewV2(router)
	resp, err := adapter.ProxyWithContextV2(context.Background(), events.APIGatewayV2HTTPRequest{
		RawPath: "/me",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			DomainName: "api.example.test",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: http.MethodGet,
				Path:   "/me",
			},
			Authorizer: &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
				JWT: &events.APIGatewayV2HTTPRequestContextAuthorizerJWTDescription{
					Claims: map[string]string{
						"sub":              "user-a",
						"email":            "a@example.com",
						"cognito:username": "alice",
						"cognito:groups":   "[admins artists]",
					},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.True(t, ok)
	assert.Equal(t, "user-a", user.UserID)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []string{"admins", "artists"}, user.Groups)

	_, ok = UserFromAPIGateway(context.Background())
	assert.False(t, ok)
}

func TestParseGroupsClaim(t *testing.T) {
	assert.Equal(t, []string{"admin", "editor"}, parseGroupsClaim("admin,editor"))
	assert.Equal(t, []string{"admin"}, parseGroupsClaim(`["admin"]`))
	assert.Nil(t, parseGroupsClaim("[]"))
}

func TestUserContextRoundTrip(t *testing.T) {
	_, err := GetUserFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoUser)

	ctx := SetUserInContext(context.Background(), &UserContext{UserID: "user-a"})
	user, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-a", user.UserID)
}

func TestTokenBucketLimiter(t *testing.T) {
	l := NewTokenBucketLimiter(2, time.Minute)
	defer l.Close()

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "k")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "other")
	assert.True(t, ok)

	clock = clock.Add(30 * time.Second)
	ok, _ = l.Allow(ctx, "k")
	assert.True(t, ok)

	require.NoError(t, l.Reset(ctx, "k"))
	ok, _ = l.Allow(ctx, "k")
	assert.True(t, ok)
}

func TestKeyedLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewIPRateLimiter(1)
	defer l.Close()

	assert.Equal(t, 1, l.Limit())

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	require.NoError(t, l.Reset(ctx, "10.0.0.1"))
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)

	var limiter RateLimiter = NewUserRateLimiter(5)
	kl, isKeyed := limiter.(*KeyedLimiter)
	require.True(t, isKeyed)
	assert.Equal(t, 5, kl.Limit())
	kl.Close()
}
