package commands

import (
	"rollouthq/domain/core/entities"
	pkgerrors "rollouthq/pkg/errors"
)

// CreateAlbumCommand creates an album owned by UserID
type CreateAlbumCommand struct {
	UserID      string
	AlbumID     string
	Name        *string
	CoverArtKey *string
}

// Validate validates the command
func (c CreateAlbumCommand) Validate() error {
	return requireUser(c.UserID)
}

// UpdateAlbumCommand applies a partial update to an album
type UpdateAlbumCommand struct {
	UserID  string
	AlbumID string
	Patch   entities.AlbumPatch
}

// Validate validates the command
func (c UpdateAlbumCommand) Validate() error {
	if err := requireUser(c.UserID); err != nil {
		return err
	}
	if c.AlbumID == "" {
		return pkgerrors.NewValidationError(MsgAlbumIDRequired)
	}
	if c.Patch.IsEmpty() {
		return pkgerrors.NewValidationError(MsgNoFieldsToUpdate)
	}
	return nil
}

// DeleteAlbumCommand removes an album and every item in its partition
type DeleteAlbumCommand struct {
	UserID  string
	AlbumID string
}

// Validate validates the command
func (c DeleteAlbumCommand) Validate() error {
	if err := requireUser(c.UserID); err != nil {
		return err
	}
	if c.AlbumID == "" {
		return pkgerrors.NewValidationError(MsgAlbumIDRequired)
	}
	return nil
}
