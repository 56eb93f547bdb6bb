package handlers

import (
	"context"

	"rollouthq/application/ports"
	"rollouthq/application/queries"
	"rollouthq/domain/core/entities"
	"rollouthq/pkg/common"
	pkgerrors "rollouthq/pkg/errors"

	"go.uber.org/zap"
)

// ListAlbumsHandler handles album listing
type ListAlbumsHandler struct {
	albumRepo ports.AlbumRepository
	logger    *zap.Logger
}

// NewListAlbumsHandler creates a new list albums handler
func NewListAlbumsHandler(albumRepo ports.AlbumRepository, logger *zap.Logger) *ListAlbumsHandler {
	return &ListAlbumsHandler{albumRepo: albumRepo, logger: logger}
}

// Handle returns the caller's albums in creation order
func (h *ListAlbumsHandler) Handle(ctx context.Context, query queries.ListAlbumsQuery) (*common.ItemsResponse[*entities.Album], error) {
	albums, err := h.albumRepo.ListByOwner(ctx, query.UserID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("list albums", err)
	}
	if albums == nil {
		albums = []*entities.Album{}
	}

	h.logger.Debug("Albums listed",
		zap.String("userID", query.UserID),
		zap.Int("count", len(albums)),
	)
	return &common.ItemsResponse[*entities.Album]{Items: albums}, nil
}
