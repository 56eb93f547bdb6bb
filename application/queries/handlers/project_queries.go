package handlers

import (
	"context"
	"errors"

	"rollouthq/application/ports"
	"rollouthq/application/queries"
	"rollouthq/domain/core/entities"
	"rollouthq/pkg/common"
	pkgerrors "rollouthq/pkg/errors"

	"go.uber.org/zap"
)

// ListProjectsHandler handles project listing
type ListProjectsHandler struct {
	projectRepo ports.ProjectRepository
	logger      *zap.Logger
}

// NewListProjectsHandler creates a new list projects handler
func NewListProjectsHandler(projectRepo ports.ProjectRepository, logger *zap.Logger) *ListProjectsHandler {
	return &ListProjectsHandler{projectRepo: projectRepo, logger: logger}
}

// Handle returns every project of the album
func (h *ListProjectsHandler) Handle(ctx context.Context, query queries.ListProjectsQuery) (*common.ItemsResponse[*entities.Project], error) {
	projects, err := h.projectRepo.ListByAlbum(ctx, query.AlbumID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list projects", err)
	}
	if projects == nil {
		projects = []*entities.Project{}
	}
	return &common.ItemsResponse[*entities.Project]{Items: projects}, nil
}

// GetProjectHandler reads a single project
type GetProjectHandler struct {
	projectRepo ports.ProjectRepository
	logger      *zap.Logger
}

// NewGetProjectHandler creates a new get project handler
func NewGetProjectHandler(projectRepo ports.ProjectRepository, logger *zap.Logger) *GetProjectHandler {
	return &GetProjectHandler{projectRepo: projectRepo, logger: logger}
}

// Handle returns the project, or nil when it does not exist
func (h *GetProjectHandler) Handle(ctx context.Context, query queries.GetProjectQuery) (*entities.Project, error) {
	project, err := h.projectRepo.Get(ctx, query.AlbumID, query.ProjectID)
	if errors.Is(err, ports.ErrNotFound) {
		h.logger.Debug("Project not found",
			zap.String("albumID", query.AlbumID),
			zap.String("projectID", query.ProjectID),
		)
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get project", err)
	}
	return project, nil
}

// ListProjectFilesHandler pages through a project's file items
type ListProjectFilesHandler struct {
	fileRepo ports.ProjectFileRepository
	logger   *zap.Logger
}

// NewListProjectFilesHandler creates a new list project files handler
func NewListProjectFilesHandler(fileRepo ports.ProjectFileRepository, logger *zap.Logger) *ListProjectFilesHandler {
	return &ListProjectFilesHandler{fileRepo: fileRepo, logger: logger}
}

// Handle returns one page in creation order
func (h *ListProjectFilesHandler) Handle(ctx context.Context, query queries.ListProjectFilesQuery) (*common.Page[*entities.ProjectFile], error) {
	page, err := h.fileRepo.List(ctx, ports.FileListQuery{
		ProjectID: query.ProjectID,
		Type:      query.Type,
		Limit:     common.ClampLimitInt(query.Limit),
		Cursor:    query.Cursor,
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list project files", err)
	}

	items := page.Items
	if items == nil {
		items = []*entities.ProjectFile{}
	}
	return &common.Page[*entities.ProjectFile]{Items: items, NextCursor: page.NextCursor}, nil
}
