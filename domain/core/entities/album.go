package entities

import (
	"time"

	"rollouthq/domain/core/valueobjects"
	"rollouthq/domain/events"
	pkgerrors "rollouthq/pkg/errors"
	"rollouthq/pkg/utils"

	"github.com/google/uuid"
)

// DefaultAlbumName is used when an album is created without a name
const DefaultAlbumName = "Untitled"

// Album is the top-level collection of projects, owned by one user
type Album struct {
	AlbumID     string  `json:"albumId"`
	Name        *string `json:"name"`
	CoverArtKey *string `json:"coverArtKey"`
	CreatedAt   string  `json:"createdAt,omitempty"`

	// OwnerSub is the subject of the creating user. It is persisted only as
	// the secondary index partition key.
	OwnerSub string `json:"-"`

	events []events.DomainEvent
}

// NewAlbum creates an album owned by ownerSub. An empty albumID gets a
// generated identifier.
func NewAlbum(ownerSub, albumID string, name, coverArtKey *string, now time.Time) (*Album, error) {
	if ownerSub == "" {
		return nil, pkgerrors.NewUnauthorizedError("")
	}
	if albumID == "" {
		albumID = uuid.New().String()
	}

	n := DefaultAlbumName
	if name != nil && *name != "" {
		n = *name
	}
	var cover *string
	if coverArtKey != nil && *coverArtKey != "" {
		cover = coverArtKey
	}

	album := &Album{
		AlbumID:     albumID,
		Name:        &n,
		CoverArtKey: cover,
		CreatedAt:   utils.FormatISO(now),
		OwnerSub:    ownerSub,
	}
	album.addEvent(events.NewAlbumCreated(albumID, ownerSub, n, now))
	return album, nil
}

// IsOwnedBy reports whether sub created this album
func (a *Album) IsOwnedBy(sub string) bool {
	return sub != "" && a.OwnerSub == sub
}

// GetUncommittedEvents returns events raised since construction
func (a *Album) GetUncommittedEvents() []events.DomainEvent {
	return a.events
}

// MarkEventsAsCommitted clears the pending events
func (a *Album) MarkEventsAsCommitted() {
	a.events = nil
}

func (a *Album) addEvent(e events.DomainEvent) {
	a.events = append(a.events, e)
}

// AlbumPatch is a partial update. Only fields whose Set flag is true are
// written; a set field with a nil Value stores null.
type AlbumPatch struct {
	Name        valueobjects.Optional[string] `json:"name"`
	CoverArtKey valueobjects.Optional[string] `json:"coverArtKey"`
}

// IsEmpty reports whether the patch carries no recognised field
func (p AlbumPatch) IsEmpty() bool {
	return !p.Name.Set && !p.CoverArtKey.Set
}

// ChangedFields names the attributes the patch writes, in a fixed order
func (p AlbumPatch) ChangedFields() []string {
	var fields []string
	if p.CoverArtKey.Set {
		fields = append(fields, "coverArtKey")
	}
	if p.Name.Set {
		fields = append(fields, "name")
	}
	return fields
}
