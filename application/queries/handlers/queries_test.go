package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"rollouthq/application/ports"
	"rollouthq/application/ports/mocks"
	"rollouthq/application/queries"
	"rollouthq/domain/core/entities"
	pkgerrors "rollouthq/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListAlbumsHandler_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.AlbumRepository)
	repo.On("ListByOwner", ctx, "user-a").Return(nil, nil)

	res, err := NewListAlbumsHandler(repo, zap.NewNop()).Handle(ctx, queries.ListAlbumsQuery{UserID: "user-a"})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestGetProjectHandler_MissingIsNil(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProjectRepository)
	repo.On("Get", ctx, "alb-1", "p-404").Return(nil, ports.ErrNotFound)

	project, err := NewGetProjectHandler(repo, zap.NewNop()).Handle(ctx, queries.GetProjectQuery{UserID: "u", AlbumID: "alb-1", ProjectID: "p-404"})
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestGetProjectHandler_StoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProjectRepository)
	repo.On("Get", ctx, "alb-1", "p1").Return(nil, errors.New("boom"))

	_, err := NewGetProjectHandler(repo, zap.NewNop()).Handle(ctx, queries.GetProjectQuery{UserID: "u", AlbumID: "alb-1", ProjectID: "p1"})
	assert.Equal(t, http.StatusInternalServerError, pkgerrors.StatusOf(err))
}

func TestListProjectFilesHandler_ClampsLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{50, 50},
		{10000, 200},
	}

	for _, tt := range tests {
		ctx := context.Background()
		repo := new(mocks.ProjectFileRepository)
		q := ports.FileListQuery{ProjectID: "p1", Type: "verse", Limit: tt.want, Cursor: "abc"}
		repo.On("List", ctx, q).Return(ports.FilePage{
			Items:      []*entities.ProjectFile{{FileID: "f1"}},
			NextCursor: "next",
		}, nil)

		page, err := NewListProjectFilesHandler(repo, zap.NewNop()).Handle(ctx, queries.ListProjectFilesQuery{
			UserID: "u", AlbumID: "alb-1", ProjectID: "p1", Type: "verse", Limit: tt.in, Cursor: "abc",
		})
		require.NoError(t, err)
		assert.Equal(t, "next", page.NextCursor)
		assert.Len(t, page.Items, 1)
		repo.AssertExpectations(t)
	}
}

func TestQueryValidate(t *testing.T) {
	assert.True(t, pkgerrors.IsUnauthorized(queries.ListAlbumsQuery{}.Validate()))
	assert.Equal(t, "albumId required", pkgerrors.GetAppError(queries.ListProjectsQuery{UserID: "u"}.Validate()).Message)
	assert.NoError(t, queries.GetProjectQuery{UserID: "u", AlbumID: "a", ProjectID: "p"}.Validate())
	assert.Error(t, queries.ListProjectFilesQuery{UserID: "u", AlbumID: "a"}.Validate())
}
