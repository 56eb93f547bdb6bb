package handlers

import (
	"net/http"

	"rollouthq/application/commands"
	"rollouthq/application/queries"
	"rollouthq/domain/core/valueobjects"
	"rollouthq/pkg/common"

	"github.com/go-chi/chi/v5"
)

// CreateProjectFileRequest represents the request body for recording a file
type CreateProjectFileRequest struct {
	AlbumID string                `json:"albumId"`
	FileID  string                `json:"fileId"`
	Type    valueobjects.FileType `json:"type"`
	Key     string                `json:"key"`
	Name    string                `json:"name"`
}

// ListFiles handles GET /projects/{id}/files
func (h *ProjectHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	result, err := h.queryBus.Ask(r.Context(), queries.ListProjectFilesQuery{
		UserID:    userID,
		AlbumID:   q.Get("albumId"),
		ProjectID: chi.URLParam(r, "id"),
		Type:      q.Get("type"),
		Limit:     common.ClampLimit(q.Get("limit")),
		Cursor:    q.Get("cursor"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateFile handles POST /projects/{id}/files
func (h *ProjectHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req CreateProjectFileRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateProjectFileCommand{
		UserID:    userID,
		AlbumID:   albumID(r, req.AlbumID),
		ProjectID: chi.URLParam(r, "id"),
		FileID:    req.FileID,
		Type:      req.Type,
		Key:       req.Key,
		Name:      req.Name,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}
