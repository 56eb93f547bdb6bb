package handlers

import (
	"net/http"

	"rollouthq/application/commands"
	"rollouthq/application/commands/bus"
	"rollouthq/application/queries"
	querybus "rollouthq/application/queries/bus"
	"rollouthq/domain/core/entities"
	"rollouthq/pkg/common"
	pkgerrors "rollouthq/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AlbumHandler handles album-related HTTP requests
type AlbumHandler struct {
	base
}

// NewAlbumHandler creates a new album handler
func NewAlbumHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AlbumHandler {
	return &AlbumHandler{base{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}}
}

// CreateAlbumRequest represents the request body for creating an album
type CreateAlbumRequest struct {
	AlbumID     string  `json:"albumId"`
	Name        *string `json:"name"`
	CoverArtKey *string `json:"coverArtKey"`
}

// UpdateAlbumRequest carries the album id next to the patch fields
type UpdateAlbumRequest struct {
	AlbumID string `json:"albumId"`
	entities.AlbumPatch
}

// ListAlbums handles GET /albums
func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListAlbumsQuery{UserID: userID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateAlbum handles POST /albums
func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req CreateAlbumRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateAlbumCommand{
		UserID:      userID,
		AlbumID:     req.AlbumID,
		Name:        req.Name,
		CoverArtKey: req.CoverArtKey,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// UpdateAlbum handles PUT /albums
func (h *AlbumHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req UpdateAlbumRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateAlbumCommand{
		UserID:  userID,
		AlbumID: albumID(r, req.AlbumID),
		Patch:   req.AlbumPatch,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteAlbum handles DELETE /albums/{id}
func (h *AlbumHandler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.commandBus.Send(r.Context(), commands.DeleteAlbumCommand{UserID: userID, AlbumID: id}); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("Album deleted", zap.String("albumID", id), zap.String("userID", userID))
	common.RespondNoContent(w)
}
