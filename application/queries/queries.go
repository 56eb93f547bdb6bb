package queries

import (
	pkgerrors "rollouthq/pkg/errors"
)

const msgAlbumIDRequired = "albumId required"

// ListAlbumsQuery lists the albums owned by UserID
type ListAlbumsQuery struct {
	UserID string
}

// Validate validates the ListAlbumsQuery
func (q ListAlbumsQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewUnauthorizedError("")
	}
	return nil
}

// ListProjectsQuery lists every project of an album
type ListProjectsQuery struct {
	UserID  string
	AlbumID string
}

// Validate validates the ListProjectsQuery
func (q ListProjectsQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewUnauthorizedError("")
	}
	if q.AlbumID == "" {
		return pkgerrors.NewValidationError(msgAlbumIDRequired)
	}
	return nil
}

// GetProjectQuery reads one project
type GetProjectQuery struct {
	UserID    string
	AlbumID   string
	ProjectID string
}

// Validate validates the GetProjectQuery
func (q GetProjectQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewUnauthorizedError("")
	}
	if q.AlbumID == "" {
		return pkgerrors.NewValidationError(msgAlbumIDRequired)
	}
	if q.ProjectID == "" {
		return pkgerrors.NewValidationError("projectId required")
	}
	return nil
}

// ListProjectFilesQuery reads one page of a project's files.
// Limit is clamped by the handler; Cursor is opaque.
type ListProjectFilesQuery struct {
	UserID    string
	AlbumID   string
	ProjectID string
	Type      string
	Limit     int
	Cursor    string
}

// Validate validates the ListProjectFilesQuery
func (q ListProjectFilesQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewUnauthorizedError("")
	}
	if q.AlbumID == "" {
		return pkgerrors.NewValidationError(msgAlbumIDRequired)
	}
	if q.ProjectID == "" {
		return pkgerrors.NewValidationError("projectId required")
	}
	return nil
}
