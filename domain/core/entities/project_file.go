package entities

import (
	"time"

	"rollouthq/domain/core/valueobjects"
	"rollouthq/domain/events"
	pkgerrors "rollouthq/pkg/errors"
	"rollouthq/pkg/utils"

	"github.com/google/uuid"
)

// ProjectFile is one uploaded asset stored as its own item under the
// project's partition
type ProjectFile struct {
	FileID    string                `json:"fileId"`
	ProjectID string                `json:"projectId"`
	AlbumID   string                `json:"albumId"`
	Type      valueobjects.FileType `json:"type"`
	Key       string                `json:"key"`
	Name      string                `json:"name"`
	CreatedAt string                `json:"createdAt"`

	events []events.DomainEvent
}

// MsgFileFieldsRequired is the validation message for a file missing type, key or name
const MsgFileFieldsRequired = "type, key, and name are required"

// NewProjectFile creates a file record. An empty fileID gets a generated
// identifier.
func NewProjectFile(projectID, albumID, fileID string, fileType valueobjects.FileType, key, name string, now time.Time) (*ProjectFile, error) {
	if fileType == "" || key == "" || name == "" {
		return nil, pkgerrors.NewValidationError(MsgFileFieldsRequired)
	}
	if !fileType.IsValid() {
		return nil, pkgerrors.NewValidationError("unknown file type: " + string(fileType))
	}
	if projectID == "" {
		return nil, pkgerrors.NewValidationError("projectId required")
	}
	if fileID == "" {
		fileID = uuid.New().String()
	}

	f := &ProjectFile{
		FileID:    fileID,
		ProjectID: projectID,
		AlbumID:   albumID,
		Type:      fileType,
		Key:       key,
		Name:      name,
		CreatedAt: utils.FormatISO(now),
	}
	f.addEvent(events.NewProjectFileCreated(fileID, projectID, albumID, string(fileType), key, now))
	return f, nil
}

// GetUncommittedEvents returns events raised since construction
func (f *ProjectFile) GetUncommittedEvents() []events.DomainEvent {
	return f.events
}

// MarkEventsAsCommitted clears the pending events
func (f *ProjectFile) MarkEventsAsCommitted() {
	f.events = nil
}

func (f *ProjectFile) addEvent(e events.DomainEvent) {
	f.events = append(f.events, e)
}
