package auth

import (
	"context"
	"strings"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
)

// UserFromAPIGateway reads the claims an API Gateway JWT authorizer attached
// to a proxied HTTP API (v2) request. ok is false outside Lambda or when the
// route has no authorizer.
func UserFromAPIGateway(ctx context.Context) (*UserContext, bool) {
	reqCtx, ok := core.GetAPIGatewayV2ContextFromContext(ctx)
	if !ok || reqCtx.Authorizer == nil || reqCtx.Authorizer.JWT == nil {
		return nil, false
	}

	claims := reqCtx.Authorizer.JWT.Claims
	sub := claims["sub"]
	if sub == "" {
		return nil, false
	}

	username := claims["cognito:username"]
	if username == "" {
		username = claims["username"]
	}

	return &UserContext{
		UserID:   sub,
		Email:    claims["email"],
		Username: username,
		Groups:   parseGroupsClaim(claims["cognito:groups"]),
	}, true
}

// parseGroupsClaim handles the flattened forms API Gateway uses for list
// claims: "[admin editor]" or "admin,editor".
func parseGroupsClaim(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	groups := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.Trim(f, `"`); f != "" {
			groups = append(groups, f)
		}
	}
	return groups
}
