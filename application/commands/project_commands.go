package commands

import (
	"rollouthq/domain/core/entities"
	"rollouthq/domain/core/valueobjects"
	pkgerrors "rollouthq/pkg/errors"
)

// CreateProjectCommand creates a project under an album
type CreateProjectCommand struct {
	UserID    string
	AlbumID   string
	ProjectID string
	Name      string
	Status    valueobjects.ProjectStatus   `validate:"projectstatus"`
	Priority  valueobjects.ProjectPriority `validate:"projectpriority"`
}

// Validate validates the command
func (c CreateProjectCommand) Validate() error {
	if err := requireUser(c.UserID); err != nil {
		return err
	}
	if c.AlbumID == "" {
		return pkgerrors.NewValidationError(MsgAlbumIDRequired)
	}
	return validateStruct(c)
}

// UpdateProjectCommand replaces every mutable project field
type UpdateProjectCommand struct {
	UserID      string
	AlbumID     string
	ProjectID   string
	Replacement entities.ProjectReplacement
}

// Validate validates the command
func (c UpdateProjectCommand) Validate() error {
	if err := requireUser(c.UserID); err != nil {
		return err
	}
	if c.AlbumID == "" {
		return pkgerrors.NewValidationError(MsgAlbumIDRequired)
	}
	if c.ProjectID == "" {
		return pkgerrors.NewValidationError(MsgProjectIDRequired)
	}
	return validateStruct(c.Replacement)
}

// DeleteProjectCommand removes a single project item
type DeleteProjectCommand struct {
	UserID    string
	AlbumID   string
	ProjectID string
}

// Validate validates the command
func (c DeleteProjectCommand) Validate() error {
	if err := requireUser(c.UserID); err != nil {
		return err
	}
	if c.AlbumID == "" {
		return pkgerrors.NewValidationError(MsgAlbumIDRequired)
	}
	if c.ProjectID == "" {
		return pkgerrors.NewValidationError(MsgProjectIDRequired)
	}
	return nil
}

// CreateProjectFileCommand records an uploaded asset under a project
type CreateProjectFileCommand struct {
	UserID    string
	AlbumID   string
	ProjectID string
	FileID    string
	Type      valueobjects.FileType `validate:"filetype"`
	Key       string
	Name      string
}

// Validate validates the command
func (c CreateProjectFileCommand) Validate() error {
	if err := requireUser(c.UserID); err != nil {
		return err
	}
	if c.AlbumID == "" {
		return pkgerrors.NewValidationError(MsgAlbumIDRequired)
	}
	if c.ProjectID == "" {
		return pkgerrors.NewValidationError(MsgProjectIDRequired)
	}
	if c.Type == "" || c.Key == "" || c.Name == "" {
		return pkgerrors.NewValidationError(entities.MsgFileFieldsRequired)
	}
	return validateStruct(c)
}
