package ports

import (
	"context"
	"errors"
	"time"

	"rollouthq/domain/core/entities"
	"rollouthq/domain/events"
)

// ErrNotFound is returned by Get methods when the item does not exist
var ErrNotFound = errors.New("item not found")

// AlbumRepository persists albums and owns the album partition
type AlbumRepository interface {
	// ListByOwner returns the albums created by ownerSub in creation order
	ListByOwner(ctx context.Context, ownerSub string) ([]*entities.Album, error)

	// Get returns ErrNotFound when the album does not exist
	Get(ctx context.Context, albumID string) (*entities.Album, error)

	// Save writes the album unconditionally
	Save(ctx context.Context, album *entities.Album) error

	// Update applies the present fields of patch and returns the stored album.
	// A missing album is created with only those fields.
	Update(ctx context.Context, albumID string, patch entities.AlbumPatch) (*entities.Album, error)

	// DeleteCascade removes every item in the album partition in batches
	DeleteCascade(ctx context.Context, albumID string) (CascadeResult, error)
}

// CascadeResult summarises an album delete
type CascadeResult struct {
	ItemsDeleted int
	Batches      int
	ProjectIDs   []string
}

// ProjectRepository persists projects inside their album partition
type ProjectRepository interface {
	ListByAlbum(ctx context.Context, albumID string) ([]*entities.Project, error)

	// Get returns ErrNotFound when the project does not exist
	Get(ctx context.Context, albumID, projectID string) (*entities.Project, error)

	Save(ctx context.Context, project *entities.Project) error

	// Replace overwrites every mutable field except a stored name and
	// returns the stored project
	Replace(ctx context.Context, albumID, projectID string, r entities.ProjectReplacement) (*entities.Project, error)

	// Delete removes the project item only
	Delete(ctx context.Context, albumID, projectID string) error
}

// FileListQuery selects one page of a project's files
type FileListQuery struct {
	ProjectID string
	Type      string // optional
	Limit     int
	Cursor    string // opaque; invalid values start from the beginning
}

// FilePage is one page of project files in creation order
type FilePage struct {
	Items      []*entities.ProjectFile
	NextCursor string
}

// ProjectFileRepository persists file items under the project partition
type ProjectFileRepository interface {
	List(ctx context.Context, q FileListQuery) (FilePage, error)
	Save(ctx context.Context, file *entities.ProjectFile) error
}

// Presigner issues time-limited URLs against the media bucket
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

// EventPublisher ships domain events to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, evts []events.DomainEvent) error
}

// MetricsRecorder receives use case measurements
type MetricsRecorder interface {
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordItemsDeleted(ctx context.Context, n int)
}
