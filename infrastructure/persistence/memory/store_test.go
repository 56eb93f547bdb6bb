package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"
	"rollouthq/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlbumRepository_CascadeBatches(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	album, err := entities.NewAlbum("user-a", "alb-1", nil, nil, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Albums().Save(ctx, album))
	for i := 0; i < 30; i++ {
		p, err := entities.NewProject("alb-1", fmt.Sprintf("p%02d", i), "", "", "", "user-a", time.Now())
		require.NoError(t, err)
		require.NoError(t, store.Projects().Save(ctx, p))
	}

	res, err := store.Albums().DeleteCascade(ctx, "alb-1")
	require.NoError(t, err)
	assert.Equal(t, 31, res.ItemsDeleted)
	assert.Equal(t, []int{25, 6}, store.Batches)
	assert.Len(t, res.ProjectIDs, 30)

	left, err := store.Projects().ListByAlbum(ctx, "alb-1")
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = store.Albums().Get(ctx, "alb-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestProjectRepository_ReplaceKeepsName(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	p, err := entities.NewProject("alb-1", "p1", "Track One", "", "", "user-a", time.Now())
	require.NoError(t, err)
	p.Verses = []valueobjects.ContentFile{{ID: "v1", Name: "v1.wav"}}
	require.NoError(t, store.Projects().Save(ctx, p))

	got, err := store.Projects().Replace(ctx, "alb-1", "p1", entities.ProjectReplacement{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Track One", got.Name)
	assert.Empty(t, got.Verses)
	assert.Equal(t, entities.DefaultLead, got.Lead)
}

func TestProjectFileRepository_Paging(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		ft := valueobjects.FileTypeVerse
		if i%2 == 1 {
			ft = valueobjects.FileTypeBeat
		}
		f, err := entities.NewProjectFile("p1", "alb-1", fmt.Sprintf("f%d", i), ft, "k", "n", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, store.Files().Save(ctx, f))
	}

	first, err := store.Files().List(ctx, ports.FileListQuery{ProjectID: "p1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "f0", first.Items[0].FileID)
	require.NotEmpty(t, first.NextCursor)

	second, err := store.Files().List(ctx, ports.FileListQuery{ProjectID: "p1", Limit: 10, Cursor: first.NextCursor})
	require.NoError(t, err)
	assert.Len(t, second.Items, 3)
	assert.Empty(t, second.NextCursor)

	beats, err := store.Files().List(ctx, ports.FileListQuery{ProjectID: "p1", Type: "beat", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, beats.Items, 2)

	restart, err := store.Files().List(ctx, ports.FileListQuery{ProjectID: "p1", Limit: 1, Cursor: "%%%"})
	require.NoError(t, err)
	assert.Equal(t, "f0", restart.Items[0].FileID)
}
