package handlers

import (
	"net/http"

	"rollouthq/application/commands/bus"
	querybus "rollouthq/application/queries/bus"
	"rollouthq/pkg/auth"
	"rollouthq/pkg/common"
	pkgerrors "rollouthq/pkg/errors"

	"go.uber.org/zap"
)

const msgInvalidJSON = "invalid JSON body"

// base carries what every resource handler needs
type base struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// userID returns the verified subject, writing 401 when there is none
func (b *base) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		b.errors.Handle(w, r, pkgerrors.NewUnauthorizedError(""))
		return "", false
	}
	return user.UserID, true
}

// decode parses the JSON body into v, writing 400 on malformed input
func (b *base) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v); err != nil {
		b.errors.Handle(w, r, pkgerrors.NewValidationError(msgInvalidJSON).WithCause(err))
		return false
	}
	return true
}

// albumID prefers the body value and falls back to the query string
func albumID(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	return r.URL.Query().Get("albumId")
}
