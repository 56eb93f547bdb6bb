package handlers

import (
	"net/http"

	"rollouthq/application/services"
	"rollouthq/pkg/auth"
	"rollouthq/pkg/common"
	pkgerrors "rollouthq/pkg/errors"

	"go.uber.org/zap"
)

// PresignHandler issues signed media URLs
type PresignHandler struct {
	base
	service *services.PresignService
}

// NewPresignHandler creates a new presign handler
func NewPresignHandler(service *services.PresignService, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *PresignHandler {
	return &PresignHandler{
		base:    base{errors: errorHandler, logger: logger},
		service: service,
	}
}

// Presign handles POST /uploads/presign
func (h *PresignHandler) Presign(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req services.PresignRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.service.Presign(r.Context(), userID, req)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Me handles GET /me
func Me(errorHandler *pkgerrors.ErrorHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := auth.GetUserFromContext(r.Context())
		if err != nil {
			errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError(""))
			return
		}
		groups := user.Groups
		if groups == nil {
			groups = []string{}
		}
		common.RespondJSON(w, http.StatusOK, auth.UserContext{
			UserID:   user.UserID,
			Email:    user.Email,
			Username: user.Username,
			Groups:   groups,
		})
	}
}
