package entities

import (
	"encoding/json"
	"testing"
	"time"

	"rollouthq/domain/core/valueobjects"
	"rollouthq/domain/events"
	pkgerrors "rollouthq/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func TestNewAlbum(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		album, err := NewAlbum("user-1", "", nil, nil, now)
		require.NoError(t, err)

		assert.NotEmpty(t, album.AlbumID)
		require.NotNil(t, album.Name)
		assert.Equal(t, DefaultAlbumName, *album.Name)
		assert.Nil(t, album.CoverArtKey)
		assert.Equal(t, "2024-03-01T12:30:00.000Z", album.CreatedAt)
		assert.True(t, album.IsOwnedBy("user-1"))
		assert.False(t, album.IsOwnedBy("user-2"))
		assert.False(t, album.IsOwnedBy(""))

		evts := album.GetUncommittedEvents()
		require.Len(t, evts, 1)
		assert.Equal(t, events.TypeAlbumCreated, evts[0].GetEventType())
		album.MarkEventsAsCommitted()
		assert.Empty(t, album.GetUncommittedEvents())
	})

	t.Run("requires an owner", func(t *testing.T) {
		_, err := NewAlbum("", "a-1", nil, nil, now)
		assert.True(t, pkgerrors.IsUnauthorized(err))
	})

	t.Run("owner is not serialised", func(t *testing.T) {
		name := "Debut"
		album, err := NewAlbum("user-1", "a-1", &name, nil, now)
		require.NoError(t, err)

		raw, err := json.Marshal(album)
		require.NoError(t, err)
		assert.JSONEq(t, `{"albumId":"a-1","name":"Debut","coverArtKey":null,"createdAt":"2024-03-01T12:30:00.000Z"}`, string(raw))
	})
}

func TestAlbumPatchDecoding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		empty   bool
		changed []string
	}{
		{"nothing", `{}`, true, nil},
		{"unknown key", `{"color":"red"}`, true, nil},
		{"name only", `{"name":"B-Sides"}`, false, []string{"name"}},
		{"explicit null", `{"coverArtKey":null}`, false, []string{"coverArtKey"}},
		{"both", `{"name":"x","coverArtKey":"k"}`, false, []string{"coverArtKey", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch AlbumPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			assert.Equal(t, tt.empty, patch.IsEmpty())
			assert.Equal(t, tt.changed, patch.ChangedFields())
		})
	}
}

func TestNewProject(t *testing.T) {
	p, err := NewProject("a-1", "", "", "", "", "user-1", now)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ProjectID)
	assert.Equal(t, DefaultProjectName, p.Name)
	assert.Equal(t, valueobjects.StatusOnTrack, p.Status)
	assert.Equal(t, valueobjects.PriorityNone, p.Priority)
	assert.NotNil(t, p.Verses)
	assert.Empty(t, p.Verses)
	assert.Nil(t, p.FinalSong)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	for _, field := range []string{"verses", "hooks", "beats", "samples", "updates", "artists", "producers", "writers"} {
		assert.Equal(t, []interface{}{}, body[field], field)
	}

	_, err = NewProject("", "p-1", "x", "", "", "user-1", now)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestProjectReplacementWithDefaults(t *testing.T) {
	empty := ""
	out := ProjectReplacement{StartDate: &empty}.WithDefaults()

	assert.Equal(t, DefaultProjectName, out.Name)
	assert.Equal(t, valueobjects.StatusOnTrack, out.Status)
	assert.Equal(t, valueobjects.PriorityNone, out.Priority)
	assert.Equal(t, DefaultLead, out.Lead)
	assert.Nil(t, out.StartDate)
	assert.NotNil(t, out.Writers)
	assert.Equal(t, "", out.Description)

	kept := ProjectReplacement{Name: "Track One", Lead: "Sam", Status: valueobjects.StatusDone}.WithDefaults()
	assert.Equal(t, "Track One", kept.Name)
	assert.Equal(t, "Sam", kept.Lead)
	assert.Equal(t, valueobjects.StatusDone, kept.Status)
}

func TestResetContent(t *testing.T) {
	raw, err := json.Marshal(ResetContent())
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []interface{}{}, body["verses"])
	assert.Equal(t, []interface{}{}, body["samples"])
	assert.Nil(t, body["finalSong"])
}

func TestNewProjectFile(t *testing.T) {
	f, err := NewProjectFile("p-1", "a-1", "", valueobjects.FileTypeBeat, "uploads/u/beat.wav", "beat", now)
	require.NoError(t, err)
	assert.NotEmpty(t, f.FileID)
	assert.Equal(t, "2024-03-01T12:30:00.000Z", f.CreatedAt)
	require.Len(t, f.GetUncommittedEvents(), 1)
	assert.Equal(t, events.TypeProjectFileCreated, f.GetUncommittedEvents()[0].GetEventType())

	_, err = NewProjectFile("p-1", "a-1", "", "", "k", "n", now)
	require.Error(t, err)
	assert.Equal(t, MsgFileFieldsRequired, pkgerrors.GetAppError(err).Message)

	_, err = NewProjectFile("p-1", "a-1", "", "podcast", "k", "n", now)
	assert.True(t, pkgerrors.IsValidation(err))
}
