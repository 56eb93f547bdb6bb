package handlers

import (
	"net/http"

	"rollouthq/application/commands"
	"rollouthq/application/commands/bus"
	"rollouthq/application/queries"
	querybus "rollouthq/application/queries/bus"
	"rollouthq/domain/core/entities"
	"rollouthq/domain/core/valueobjects"
	"rollouthq/pkg/common"
	pkgerrors "rollouthq/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProjectHandler handles project and project-file requests
type ProjectHandler struct {
	base
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *ProjectHandler {
	return &ProjectHandler{base{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}}
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	AlbumID   string                       `json:"albumId"`
	ProjectID string                       `json:"projectId"`
	Name      string                       `json:"name"`
	Status    valueobjects.ProjectStatus   `json:"status"`
	Priority  valueobjects.ProjectPriority `json:"priority"`
}

// UpdateProjectRequest is a full replacement plus the owning album
type UpdateProjectRequest struct {
	AlbumID string `json:"albumId"`
	entities.ProjectReplacement
}

// albumOnly is the body shape of requests that only need the album id
type albumOnly struct {
	AlbumID string `json:"albumId"`
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListProjectsQuery{
		UserID:  userID,
		AlbumID: albumID(r, ""),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// GetProject handles GET /projects/{id}. A missing project is an empty
// object, not a 404.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetProjectQuery{
		UserID:    userID,
		AlbumID:   albumID(r, ""),
		ProjectID: chi.URLParam(r, "id"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if project, ok := result.(*entities.Project); !ok || project == nil {
		common.RespondJSON(w, http.StatusOK, struct{}{})
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateProjectCommand{
		UserID:    userID,
		AlbumID:   albumID(r, req.AlbumID),
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Status:    req.Status,
		Priority:  req.Priority,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, result)
}

// UpdateProject handles PUT /projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateProjectCommand{
		UserID:      userID,
		AlbumID:     albumID(r, req.AlbumID),
		ProjectID:   chi.URLParam(r, "id"),
		Replacement: req.ProjectReplacement,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteProject handles DELETE /projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req albumOnly
	if !h.decode(w, r, &req) {
		return
	}

	projectID := chi.URLParam(r, "id")
	_, err := h.commandBus.Send(r.Context(), commands.DeleteProjectCommand{
		UserID:    userID,
		AlbumID:   albumID(r, req.AlbumID),
		ProjectID: projectID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("Project deleted", zap.String("projectID", projectID), zap.String("userID", userID))
	common.RespondNoContent(w)
}
