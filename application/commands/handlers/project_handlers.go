package handlers

import (
	"context"
	"time"

	"rollouthq/application/commands"
	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"
	"rollouthq/domain/events"
	pkgerrors "rollouthq/pkg/errors"

	"go.uber.org/zap"
)

// CreateProjectHandler handles project creation
type CreateProjectHandler struct {
	projectRepo ports.ProjectRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewCreateProjectHandler creates a new create project handler
func NewCreateProjectHandler(projectRepo ports.ProjectRepository, publisher ports.EventPublisher, logger *zap.Logger) *CreateProjectHandler {
	return &CreateProjectHandler{projectRepo: projectRepo, publisher: publisher, logger: logger}
}

// Handle writes a project with default status, priority and content
func (h *CreateProjectHandler) Handle(ctx context.Context, cmd commands.CreateProjectCommand) (*entities.Project, error) {
	project, err := entities.NewProject(cmd.AlbumID, cmd.ProjectID, cmd.Name, cmd.Status, cmd.Priority, cmd.UserID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := h.projectRepo.Save(ctx, project); err != nil {
		return nil, pkgerrors.NewDatabaseError("create project", err)
	}

	h.logger.Info("Project created",
		zap.String("albumID", project.AlbumID),
		zap.String("projectID", project.ProjectID),
		zap.String("userID", cmd.UserID),
	)

	publishEvents(ctx, h.publisher, h.logger, project.GetUncommittedEvents())
	project.MarkEventsAsCommitted()
	return project, nil
}

// UpdateProjectHandler handles full-field project replacement
type UpdateProjectHandler struct {
	projectRepo ports.ProjectRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewUpdateProjectHandler creates a new update project handler
func NewUpdateProjectHandler(projectRepo ports.ProjectRepository, publisher ports.EventPublisher, logger *zap.Logger) *UpdateProjectHandler {
	return &UpdateProjectHandler{projectRepo: projectRepo, publisher: publisher, logger: logger}
}

// Handle overwrites every mutable field. Fields missing from the
// replacement are reset to their defaults.
func (h *UpdateProjectHandler) Handle(ctx context.Context, cmd commands.UpdateProjectCommand) (*entities.Project, error) {
	project, err := h.projectRepo.Replace(ctx, cmd.AlbumID, cmd.ProjectID, cmd.Replacement)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("update project", err)
	}

	h.logger.Info("Project updated",
		zap.String("albumID", cmd.AlbumID),
		zap.String("projectID", cmd.ProjectID),
		zap.String("userID", cmd.UserID),
	)

	publishEvents(ctx, h.publisher, h.logger, []events.DomainEvent{
		events.NewProjectUpdated(cmd.ProjectID, cmd.AlbumID, cmd.UserID, string(project.Status), time.Now()),
	})
	return project, nil
}

// DeleteProjectHandler removes a project item
type DeleteProjectHandler struct {
	projectRepo ports.ProjectRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewDeleteProjectHandler creates a new delete project handler
func NewDeleteProjectHandler(projectRepo ports.ProjectRepository, publisher ports.EventPublisher, logger *zap.Logger) *DeleteProjectHandler {
	return &DeleteProjectHandler{projectRepo: projectRepo, publisher: publisher, logger: logger}
}

// Handle deletes the project item. Its file partition stays behind and is
// announced through the project.deleted event.
func (h *DeleteProjectHandler) Handle(ctx context.Context, cmd commands.DeleteProjectCommand) error {
	if err := h.projectRepo.Delete(ctx, cmd.AlbumID, cmd.ProjectID); err != nil {
		return pkgerrors.NewDatabaseError("delete project", err)
	}

	filePartition := "PROJECT#" + cmd.ProjectID
	h.logger.Warn("Project deleted without its files",
		zap.String("albumID", cmd.AlbumID),
		zap.String("projectID", cmd.ProjectID),
		zap.String("filePartition", filePartition),
	)

	publishEvents(ctx, h.publisher, h.logger, []events.DomainEvent{
		events.NewProjectDeleted(cmd.ProjectID, cmd.AlbumID, cmd.UserID, filePartition, time.Now()),
	})
	return nil
}

// CreateProjectFileHandler records uploaded assets
type CreateProjectFileHandler struct {
	fileRepo  ports.ProjectFileRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateProjectFileHandler creates a new create project file handler
func NewCreateProjectFileHandler(fileRepo ports.ProjectFileRepository, publisher ports.EventPublisher, logger *zap.Logger) *CreateProjectFileHandler {
	return &CreateProjectFileHandler{fileRepo: fileRepo, publisher: publisher, logger: logger}
}

// Handle writes a file item under the project partition
func (h *CreateProjectFileHandler) Handle(ctx context.Context, cmd commands.CreateProjectFileCommand) (*entities.ProjectFile, error) {
	file, err := entities.NewProjectFile(cmd.ProjectID, cmd.AlbumID, cmd.FileID, cmd.Type, cmd.Key, cmd.Name, time.Now())
	if err != nil {
		return nil, err
	}

	if err := h.fileRepo.Save(ctx, file); err != nil {
		return nil, pkgerrors.NewDatabaseError("create project file", err)
	}

	h.logger.Info("Project file created",
		zap.String("projectID", file.ProjectID),
		zap.String("fileID", file.FileID),
		zap.String("type", string(file.Type)),
	)

	publishEvents(ctx, h.publisher, h.logger, file.GetUncommittedEvents())
	file.MarkEventsAsCommitted()
	return file, nil
}
