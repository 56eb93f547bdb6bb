package entities

import (
	"time"

	"rollouthq/domain/core/valueobjects"
	"rollouthq/domain/events"
	pkgerrors "rollouthq/pkg/errors"
	"rollouthq/pkg/utils"

	"github.com/google/uuid"
)

const (
	// DefaultProjectName is used on create, and by updates of a project
	// that has never been named
	DefaultProjectName = "Untitled project"

	// DefaultLead is written whenever a replacement omits the lead
	DefaultLead = "You"
)

// Project is a single track within an album.
// The content arrays are the embedded file model; ProjectFile items are the
// paginated alternative and are not reflected here.
type Project struct {
	ProjectID   string                       `json:"projectId"`
	AlbumID     string                       `json:"albumId"`
	Name        string                       `json:"name"`
	Status      valueobjects.ProjectStatus   `json:"status"`
	Priority    valueobjects.ProjectPriority `json:"priority"`
	Verses      []valueobjects.ContentFile   `json:"verses"`
	Hooks       []valueobjects.ContentFile   `json:"hooks"`
	Beats       []valueobjects.ContentFile   `json:"beats"`
	Samples     []valueobjects.ContentFile   `json:"samples"`
	FinalSong   *valueobjects.ContentFile    `json:"finalSong"`
	Description string                       `json:"description"`
	Updates     []valueobjects.Update        `json:"updates"`
	Artists     []valueobjects.Artist        `json:"artists"`
	Producers   []valueobjects.Artist        `json:"producers"`
	Writers     []valueobjects.Artist        `json:"writers"`
	Lead        string                       `json:"lead,omitempty"`
	StartDate   *string                      `json:"startDate"`
	TargetDate  *string                      `json:"targetDate"`
	CreatedAt   string                       `json:"createdAt,omitempty"`

	events []events.DomainEvent
}

// NewProject creates a project under albumID with default status, priority
// and empty content arrays
func NewProject(albumID, projectID, name string, status valueobjects.ProjectStatus, priority valueobjects.ProjectPriority, userID string, now time.Time) (*Project, error) {
	if albumID == "" {
		return nil, pkgerrors.NewValidationError("albumId required")
	}
	if projectID == "" {
		projectID = uuid.New().String()
	}
	if name == "" {
		name = DefaultProjectName
	}

	p := &Project{
		ProjectID: projectID,
		AlbumID:   albumID,
		Name:      name,
		Status:    status.OrDefault(),
		Priority:  priority.OrDefault(),
		CreatedAt: utils.FormatISO(now),
	}
	p.Normalize()
	p.addEvent(events.NewProjectCreated(projectID, albumID, userID, now))
	return p, nil
}

// Normalize replaces nil slices with empty ones so every array field
// serialises as []
func (p *Project) Normalize() {
	if p.Verses == nil {
		p.Verses = []valueobjects.ContentFile{}
	}
	if p.Hooks == nil {
		p.Hooks = []valueobjects.ContentFile{}
	}
	if p.Beats == nil {
		p.Beats = []valueobjects.ContentFile{}
	}
	if p.Samples == nil {
		p.Samples = []valueobjects.ContentFile{}
	}
	if p.Updates == nil {
		p.Updates = []valueobjects.Update{}
	}
	if p.Artists == nil {
		p.Artists = []valueobjects.Artist{}
	}
	if p.Producers == nil {
		p.Producers = []valueobjects.Artist{}
	}
	if p.Writers == nil {
		p.Writers = []valueobjects.Artist{}
	}
}

// GetUncommittedEvents returns events raised since construction
func (p *Project) GetUncommittedEvents() []events.DomainEvent {
	return p.events
}

// MarkEventsAsCommitted clears the pending events
func (p *Project) MarkEventsAsCommitted() {
	p.events = nil
}

func (p *Project) addEvent(e events.DomainEvent) {
	p.events = append(p.events, e)
}

// ProjectReplacement is the body of a full-field update. Every field except
// Name is written unconditionally: an omitted field is reset to its default.
// Name only seeds a project that has no stored name.
type ProjectReplacement struct {
	Name        string                       `json:"name"`
	Status      valueobjects.ProjectStatus   `json:"status" validate:"projectstatus"`
	Priority    valueobjects.ProjectPriority `json:"priority" validate:"projectpriority"`
	Verses      []valueobjects.ContentFile   `json:"verses"`
	Hooks       []valueobjects.ContentFile   `json:"hooks"`
	Beats       []valueobjects.ContentFile   `json:"beats"`
	Samples     []valueobjects.ContentFile   `json:"samples"`
	FinalSong   *valueobjects.ContentFile    `json:"finalSong"`
	Description string                       `json:"description"`
	Updates     []valueobjects.Update        `json:"updates"`
	Artists     []valueobjects.Artist        `json:"artists"`
	Producers   []valueobjects.Artist        `json:"producers"`
	Writers     []valueobjects.Artist        `json:"writers"`
	Lead        string                       `json:"lead"`
	StartDate   *string                      `json:"startDate"`
	TargetDate  *string                      `json:"targetDate"`
}

// WithDefaults returns the values that will actually be written
func (r ProjectReplacement) WithDefaults() ProjectReplacement {
	out := r
	if out.Name == "" {
		out.Name = DefaultProjectName
	}
	out.Status = out.Status.OrDefault()
	out.Priority = out.Priority.OrDefault()
	if out.Verses == nil {
		out.Verses = []valueobjects.ContentFile{}
	}
	if out.Hooks == nil {
		out.Hooks = []valueobjects.ContentFile{}
	}
	if out.Beats == nil {
		out.Beats = []valueobjects.ContentFile{}
	}
	if out.Samples == nil {
		out.Samples = []valueobjects.ContentFile{}
	}
	if out.Updates == nil {
		out.Updates = []valueobjects.Update{}
	}
	if out.Artists == nil {
		out.Artists = []valueobjects.Artist{}
	}
	if out.Producers == nil {
		out.Producers = []valueobjects.Artist{}
	}
	if out.Writers == nil {
		out.Writers = []valueobjects.Artist{}
	}
	if out.Lead == "" {
		out.Lead = DefaultLead
	}
	if out.StartDate != nil && *out.StartDate == "" {
		out.StartDate = nil
	}
	if out.TargetDate != nil && *out.TargetDate == "" {
		out.TargetDate = nil
	}
	return out
}

// ResetContent is the replacement used to clear a project's content arrays
func ResetContent() ProjectReplacement {
	return ProjectReplacement{
		Verses:  []valueobjects.ContentFile{},
		Hooks:   []valueobjects.ContentFile{},
		Beats:   []valueobjects.ContentFile{},
		Samples: []valueobjects.ContentFile{},
	}
}
