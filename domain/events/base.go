package events

import "time"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Event type names, used as the EventBridge detail-type
const (
	TypeAlbumCreated       = "album.created"
	TypeAlbumUpdated       = "album.updated"
	TypeAlbumDeleted       = "album.deleted"
	TypeProjectCreated     = "project.created"
	TypeProjectUpdated     = "project.updated"
	TypeProjectDeleted     = "project.deleted"
	TypeProjectFileCreated = "project_file.created"
)

func newBase(aggregateID, eventType string, at time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   at,
		Version:     1,
	}
}

// Album Events

// AlbumCreated is raised when a new album is written
type AlbumCreated struct {
	BaseEvent
	AlbumID  string `json:"album_id"`
	OwnerSub string `json:"owner_sub"`
	Name     string `json:"name"`
}

// NewAlbumCreated creates an AlbumCreated event
func NewAlbumCreated(albumID, ownerSub, name string, at time.Time) AlbumCreated {
	return AlbumCreated{
		BaseEvent: newBase(albumID, TypeAlbumCreated, at),
		AlbumID:   albumID,
		OwnerSub:  ownerSub,
		Name:      name,
	}
}

// AlbumUpdated is raised after a patch is applied to an album
type AlbumUpdated struct {
	BaseEvent
	AlbumID       string   `json:"album_id"`
	UserID        string   `json:"user_id"`
	ChangedFields []string `json:"changed_fields"`
}

// NewAlbumUpdated creates an AlbumUpdated event
func NewAlbumUpdated(albumID, userID string, changed []string, at time.Time) AlbumUpdated {
	return AlbumUpdated{
		BaseEvent:     newBase(albumID, TypeAlbumUpdated, at),
		AlbumID:       albumID,
		UserID:        userID,
		ChangedFields: changed,
	}
}

// AlbumDeleted is raised after the album partition has been removed.
// ProjectIDs lists the projects whose file partitions were left in place.
type AlbumDeleted struct {
	BaseEvent
	AlbumID      string   `json:"album_id"`
	OwnerSub     string   `json:"owner_sub"`
	ItemsDeleted int      `json:"items_deleted"`
	ProjectIDs   []string `json:"project_ids"`
}

// NewAlbumDeleted creates an AlbumDeleted event
func NewAlbumDeleted(albumID, ownerSub string, itemsDeleted int, projectIDs []string, at time.Time) AlbumDeleted {
	return AlbumDeleted{
		BaseEvent:    newBase(albumID, TypeAlbumDeleted, at),
		AlbumID:      albumID,
		OwnerSub:     ownerSub,
		ItemsDeleted: itemsDeleted,
		ProjectIDs:   projectIDs,
	}
}

// Project Events

// ProjectCreated is raised when a project is written under an album
type ProjectCreated struct {
	BaseEvent
	ProjectID string `json:"project_id"`
	AlbumID   string `json:"album_id"`
	UserID    string `json:"user_id"`
}

// NewProjectCreated creates a ProjectCreated event
func NewProjectCreated(projectID, albumID, userID string, at time.Time) ProjectCreated {
	return ProjectCreated{
		BaseEvent: newBase(projectID, TypeProjectCreated, at),
		ProjectID: projectID,
		AlbumID:   albumID,
		UserID:    userID,
	}
}

// ProjectUpdated is raised after a full-field replacement
type ProjectUpdated struct {
	BaseEvent
	ProjectID string `json:"project_id"`
	AlbumID   string `json:"album_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
}

// NewProjectUpdated creates a ProjectUpdated event
func NewProjectUpdated(projectID, albumID, userID, status string, at time.Time) ProjectUpdated {
	return ProjectUpdated{
		BaseEvent: newBase(projectID, TypeProjectUpdated, at),
		ProjectID: projectID,
		AlbumID:   albumID,
		UserID:    userID,
		Status:    status,
	}
}

// ProjectDeleted is raised after the project item is removed. Items under
// the project's own file partition are not deleted with it.
type ProjectDeleted struct {
	BaseEvent
	ProjectID     string `json:"project_id"`
	AlbumID       string `json:"album_id"`
	UserID        string `json:"user_id"`
	FilePartition string `json:"file_partition"`
}

// NewProjectDeleted creates a ProjectDeleted event
func NewProjectDeleted(projectID, albumID, userID, filePartition string, at time.Time) ProjectDeleted {
	return ProjectDeleted{
		BaseEvent:     newBase(projectID, TypeProjectDeleted, at),
		ProjectID:     projectID,
		AlbumID:       albumID,
		UserID:        userID,
		FilePartition: filePartition,
	}
}

// Project File Events

// ProjectFileCreated is raised when a file item is added under a project
type ProjectFileCreated struct {
	BaseEvent
	FileID    string `json:"file_id"`
	ProjectID string `json:"project_id"`
	AlbumID   string `json:"album_id"`
	Type      string `json:"type"`
	Key       string `json:"key"`
}

// NewProjectFileCreated creates a ProjectFileCreated event
func NewProjectFileCreated(fileID, projectID, albumID, fileType, key string, at time.Time) ProjectFileCreated {
	return ProjectFileCreated{
		BaseEvent: newBase(fileID, TypeProjectFileCreated, at),
		FileID:    fileID,
		ProjectID: projectID,
		AlbumID:   albumID,
		Type:      fileType,
		Key:       key,
	}
}
