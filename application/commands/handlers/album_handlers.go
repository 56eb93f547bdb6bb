package handlers

import (
	"context"
	"errors"
	"time"

	"rollouthq/application/commands"
	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"
	"rollouthq/domain/events"
	pkgerrors "rollouthq/pkg/errors"

	"go.uber.org/zap"
)

// CreateAlbumHandler handles album creation
type CreateAlbumHandler struct {
	albumRepo ports.AlbumRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateAlbumHandler creates a new create album handler
func NewCreateAlbumHandler(albumRepo ports.AlbumRepository, publisher ports.EventPublisher, logger *zap.Logger) *CreateAlbumHandler {
	return &CreateAlbumHandler{albumRepo: albumRepo, publisher: publisher, logger: logger}
}

// Handle writes the album and returns it
func (h *CreateAlbumHandler) Handle(ctx context.Context, cmd commands.CreateAlbumCommand) (*entities.Album, error) {
	album, err := entities.NewAlbum(cmd.UserID, cmd.AlbumID, cmd.Name, cmd.CoverArtKey, time.Now())
	if err != nil {
		return nil, err
	}

	if err := h.albumRepo.Save(ctx, album); err != nil {
		return nil, pkgerrors.NewDatabaseError("create album", err)
	}

	h.logger.Info("Album created",
		zap.String("albumID", album.AlbumID),
		zap.String("userID", cmd.UserID),
	)

	publishEvents(ctx, h.publisher, h.logger, album.GetUncommittedEvents())
	album.MarkEventsAsCommitted()
	return album, nil
}

// UpdateAlbumHandler applies album patches
type UpdateAlbumHandler struct {
	albumRepo ports.AlbumRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateAlbumHandler creates a new update album handler
func NewUpdateAlbumHandler(albumRepo ports.AlbumRepository, publisher ports.EventPublisher, logger *zap.Logger) *UpdateAlbumHandler {
	return &UpdateAlbumHandler{albumRepo: albumRepo, publisher: publisher, logger: logger}
}

// Handle writes only the fields present in the patch. There is no
// ownership check; a missing album is created with the patched fields.
func (h *UpdateAlbumHandler) Handle(ctx context.Context, cmd commands.UpdateAlbumCommand) (*entities.Album, error) {
	album, err := h.albumRepo.Update(ctx, cmd.AlbumID, cmd.Patch)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("update album", err)
	}

	changed := cmd.Patch.ChangedFields()
	h.logger.Info("Album updated",
		zap.String("albumID", cmd.AlbumID),
		zap.String("userID", cmd.UserID),
		zap.Strings("fields", changed),
	)

	publishEvents(ctx, h.publisher, h.logger, []events.DomainEvent{
		events.NewAlbumUpdated(cmd.AlbumID, cmd.UserID, changed, time.Now()),
	})
	return album, nil
}

// DeleteAlbumHandler deletes an album and everything in its partition
type DeleteAlbumHandler struct {
	albumRepo ports.AlbumRepository
	publisher ports.EventPublisher
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

// NewDeleteAlbumHandler creates a new delete album handler
func NewDeleteAlbumHandler(
	albumRepo ports.AlbumRepository,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *DeleteAlbumHandler {
	return &DeleteAlbumHandler{
		albumRepo: albumRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle verifies ownership and runs the cascade. The cascade is not
// transactional: on failure some batches may already be gone and the
// caller can simply repeat the delete.
func (h *DeleteAlbumHandler) Handle(ctx context.Context, cmd commands.DeleteAlbumCommand) (*ports.CascadeResult, error) {
	album, err := h.albumRepo.Get(ctx, cmd.AlbumID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, pkgerrors.NewNotFoundError("album")
	}
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get album", err)
	}
	if !album.IsOwnedBy(cmd.UserID) {
		h.logger.Warn("Album delete denied",
			zap.String("albumID", cmd.AlbumID),
			zap.String("userID", cmd.UserID),
		)
		return nil, pkgerrors.NewForbiddenError("")
	}

	result, err := h.albumRepo.DeleteCascade(ctx, cmd.AlbumID)
	if h.metrics != nil {
		h.metrics.RecordItemsDeleted(ctx, result.ItemsDeleted)
	}
	if err != nil {
		h.logger.Error("Album cascade delete incomplete",
			zap.String("albumID", cmd.AlbumID),
			zap.Int("itemsDeleted", result.ItemsDeleted),
			zap.Int("batches", result.Batches),
			zap.Error(err),
		)
		return nil, pkgerrors.NewDatabaseError("delete album", err)
	}

	for _, projectID := range result.ProjectIDs {
		h.logger.Warn("Project files left in place after album delete",
			zap.String("albumID", cmd.AlbumID),
			zap.String("projectID", projectID),
		)
	}

	h.logger.Info("Album deleted",
		zap.String("albumID", cmd.AlbumID),
		zap.String("userID", cmd.UserID),
		zap.Int("itemsDeleted", result.ItemsDeleted),
		zap.Int("batches", result.Batches),
	)

	publishEvents(ctx, h.publisher, h.logger, []events.DomainEvent{
		events.NewAlbumDeleted(cmd.AlbumID, cmd.UserID, result.ItemsDeleted, result.ProjectIDs, time.Now()),
	})
	return &result, nil
}
