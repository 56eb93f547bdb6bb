// Package mocks holds testify mocks of the application ports.
package mocks

import (
	"context"
	"time"

	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"
	"rollouthq/domain/events"

	"github.com/stretchr/testify/mock"
)

type AlbumRepository struct {
	mock.Mock
}

func (m *AlbumRepository) ListByOwner(ctx context.Context, ownerSub string) ([]*entities.Album, error) {
	args := m.Called(ctx, ownerSub)
	albums, _ := args.Get(0).([]*entities.Album)
	return albums, args.Error(1)
}

func (m *AlbumRepository) Get(ctx context.Context, albumID string) (*entities.Album, error) {
	args := m.Called(ctx, albumID)
	album, _ := args.Get(0).(*entities.Album)
	return album, args.Error(1)
}

func (m *AlbumRepository) Save(ctx context.Context, album *entities.Album) error {
	return m.Called(ctx, album).Error(0)
}

func (m *AlbumRepository) Update(ctx context.Context, albumID string, patch entities.AlbumPatch) (*entities.Album, error) {
	args := m.Called(ctx, albumID, patch)
	album, _ := args.Get(0).(*entities.Album)
	return album, args.Error(1)
}

func (m *AlbumRepository) DeleteCascade(ctx context.Context, albumID string) (ports.CascadeResult, error) {
	args := m.Called(ctx, albumID)
	res, _ := args.Get(0).(ports.CascadeResult)
	return res, args.Error(1)
}

type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) ListByAlbum(ctx context.Context, albumID string) ([]*entities.Project, error) {
	args := m.Called(ctx, albumID)
	projects, _ := args.Get(0).([]*entities.Project)
	return projects, args.Error(1)
}

func (m *ProjectRepository) Get(ctx context.Context, albumID, projectID string) (*entities.Project, error) {
	args := m.Called(ctx, albumID, projectID)
	project, _ := args.Get(0).(*entities.Project)
	return project, args.Error(1)
}

func (m *ProjectRepository) Save(ctx context.Context, project *entities.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *ProjectRepository) Replace(ctx context.Context, albumID, projectID string, r entities.ProjectReplacement) (*entities.Project, error) {
	args := m.Called(ctx, albumID, projectID, r)
	project, _ := args.Get(0).(*entities.Project)
	return project, args.Error(1)
}

func (m *ProjectRepository) Delete(ctx context.Context, albumID, projectID string) error {
	return m.Called(ctx, albumID, projectID).Error(0)
}

type ProjectFileRepository struct {
	mock.Mock
}

func (m *ProjectFileRepository) List(ctx context.Context, q ports.FileListQuery) (ports.FilePage, error) {
	args := m.Called(ctx, q)
	page, _ := args.Get(0).(ports.FilePage)
	return page, args.Error(1)
}

func (m *ProjectFileRepository) Save(ctx context.Context, file *entities.ProjectFile) error {
	return m.Called(ctx, file).Error(0)
}

type Presigner struct {
	mock.Mock
}

func (m *Presigner) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *Presigner) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, evts []events.DomainEvent) error {
	return m.Called(ctx, evts).Error(0)
}

type MetricsRecorder struct {
	mock.Mock
}

func (m *MetricsRecorder) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	m.Called(ctx, operation, duration, err)
}

func (m *MetricsRecorder) RecordItemsDeleted(ctx context.Context, n int) {
	m.Called(ctx, n)
}

var (
	_ ports.AlbumRepository       = (*AlbumRepository)(nil)
	_ ports.ProjectRepository     = (*ProjectRepository)(nil)
	_ ports.ProjectFileRepository = (*ProjectFileRepository)(nil)
	_ ports.Presigner             = (*Presigner)(nil)
	_ ports.EventPublisher        = (*EventPublisher)(nil)
	_ ports.MetricsRecorder       = (*MetricsRecorder)(nil)
)
