// Package memory keeps the single-table model in process memory. It backs
// the local server when no table is configured and the HTTP tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"
	"rollouthq/infrastructure/persistence/dynamodb"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store holds albums with their projects, and files by project
type Store struct {
	mu       sync.RWMutex
	albums   map[string]*entities.Album
	projects map[string]map[string]*entities.Project
	files    map[string]map[string]*entities.ProjectFile

	// Batches records the size of every delete batch, oldest first
	Batches []int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		albums:   make(map[string]*entities.Album),
		projects: make(map[string]map[string]*entities.Project),
		files:    make(map[string]map[string]*entities.ProjectFile),
	}
}

// Albums returns the album repository view
func (s *Store) Albums() *AlbumRepository { return &AlbumRepository{s} }

// Projects returns the project repository view
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s} }

// Files returns the project file repository view
func (s *Store) Files() *ProjectFileRepository { return &ProjectFileRepository{s} }

// AlbumRepository implements ports.AlbumRepository
type AlbumRepository struct{ s *Store }

func (r *AlbumRepository) ListByOwner(_ context.Context, ownerSub string) ([]*entities.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	albums := []*entities.Album{}
	for _, a := range r.s.albums {
		if a.OwnerSub == ownerSub {
			copied := *a
			albums = append(albums, &copied)
		}
	}
	sort.Slice(albums, func(i, j int) bool {
		return albums[i].CreatedAt < albums[j].CreatedAt
	})
	return albums, nil
}

func (r *AlbumRepository) Get(_ context.Context, albumID string) (*entities.Album, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.albums[albumID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *AlbumRepository) Save(_ context.Context, album *entities.Album) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *album
	r.s.albums[album.AlbumID] = &copied
	return nil
}

// Update upserts like UpdateItem: a missing album gets only the patched
// fields and no owner.
func (r *AlbumRepository) Update(_ context.Context, albumID string, patch entities.AlbumPatch) (*entities.Album, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.albums[albumID]
	if !ok {
		a = &entities.Album{AlbumID: albumID}
		r.s.albums[albumID] = a
	}
	if patch.Name.Set {
		a.Name = patch.Name.Value
	}
	if patch.CoverArtKey.Set {
		a.CoverArtKey = patch.CoverArtKey.Value
	}
	copied := *a
	return &copied, nil
}

// DeleteCascade removes the album item and every project in its partition,
// counting deletes in chunks of dynamodb.MaxBatchSize
func (r *AlbumRepository) DeleteCascade(_ context.Context, albumID string) (ports.CascadeResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result ports.CascadeResult
	total := len(r.s.projects[albumID])
	if _, ok := r.s.albums[albumID]; ok {
		total++
	}
	for id := range r.s.projects[albumID] {
		result.ProjectIDs = append(result.ProjectIDs, id)
	}
	sort.Strings(result.ProjectIDs)

	for remaining := total; remaining > 0; remaining -= dynamodb.MaxBatchSize {
		n := min(remaining, dynamodb.MaxBatchSize)
		r.s.Batches = append(r.s.Batches, n)
		result.Batches++
		result.ItemsDeleted += n
	}

	delete(r.s.albums, albumID)
	delete(r.s.projects, albumID)
	return result, nil
}

// ProjectRepository implements ports.ProjectRepository
type ProjectRepository struct{ s *Store }

func (r *ProjectRepository) ListByAlbum(_ context.Context, albumID string) ([]*entities.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	projects := []*entities.Project{}
	for _, p := range r.s.projects[albumID] {
		copied := *p
		projects = append(projects, &copied)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ProjectID < projects[j].ProjectID
	})
	return projects, nil
}

func (r *ProjectRepository) Get(_ context.Context, albumID, projectID string) (*entities.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.projects[albumID][projectID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *ProjectRepository) Save(_ context.Context, project *entities.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	partition, ok := r.s.projects[project.AlbumID]
	if !ok {
		partition = make(map[string]*entities.Project)
		r.s.projects[project.AlbumID] = partition
	}
	copied := *project
	partition[project.ProjectID] = &copied
	return nil
}

// Replace overwrites every field but a stored name
func (r *ProjectRepository) Replace(_ context.Context, albumID, projectID string, rep entities.ProjectReplacement) (*entities.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	partition, ok := r.s.projects[albumID]
	if !ok {
		partition = make(map[string]*entities.Project)
		r.s.projects[albumID] = partition
	}
	p, ok := partition[projectID]
	if !ok {
		p = &entities.Project{ProjectID: projectID, AlbumID: albumID}
		partition[projectID] = p
	}

	rep = rep.WithDefaults()
	if p.Name == "" {
		p.Name = rep.Name
	}
	p.Status = rep.Status
	p.Priority = rep.Priority
	p.Verses = rep.Verses
	p.Hooks = rep.Hooks
	p.Beats = rep.Beats
	p.Samples = rep.Samples
	p.FinalSong = rep.FinalSong
	p.Description = rep.Description
	p.Updates = rep.Updates
	p.Artists = rep.Artists
	p.Producers = rep.Producers
	p.Writers = rep.Writers
	p.Lead = rep.Lead
	p.StartDate = rep.StartDate
	p.TargetDate = rep.TargetDate

	copied := *p
	return &copied, nil
}

func (r *ProjectRepository) Delete(_ context.Context, albumID, projectID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.projects[albumID], projectID)
	return nil
}

// ProjectFileRepository implements ports.ProjectFileRepository
type ProjectFileRepository struct{ s *Store }

// List mirrors Query semantics: Limit bounds the items evaluated, the type
// filter runs afterwards, so a filtered page may hold fewer items.
func (r *ProjectFileRepository) List(_ context.Context, q ports.FileListQuery) (ports.FilePage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pk := dynamodb.ProjectPK(q.ProjectID)
	partition := r.s.files[q.ProjectID]
	keys := make([]string, 0, len(partition))
	for sk := range partition {
		keys = append(keys, sk)
	}
	sort.Strings(keys)

	start := 0
	if q.Cursor != "" {
		if key, err := dynamodb.DecodeCursor(q.Cursor); err == nil {
			if after, ok := key["sk"].(*types.AttributeValueMemberS); ok {
				start = sort.SearchStrings(keys, after.Value)
				if start < len(keys) && keys[start] == after.Value {
					start++
				}
			}
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = len(keys)
	}
	end := min(start+limit, len(keys))

	page := ports.FilePage{Items: []*entities.ProjectFile{}}
	for _, sk := range keys[start:end] {
		f := partition[sk]
		if q.Type != "" && string(f.Type) != q.Type {
			continue
		}
		copied := *f
		page.Items = append(page.Items, &copied)
	}

	if end < len(keys) && end > start {
		cursor, err := dynamodb.EncodeCursor(map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: pk},
			"sk": &types.AttributeValueMemberS{Value: keys[end-1]},
		})
		if err != nil {
			return ports.FilePage{}, fmt.Errorf("failed to encode cursor: %w", err)
		}
		page.NextCursor = cursor
	}
	return page, nil
}

func (r *ProjectFileRepository) Save(_ context.Context, file *entities.ProjectFile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	partition, ok := r.s.files[file.ProjectID]
	if !ok {
		partition = make(map[string]*entities.ProjectFile)
		r.s.files[file.ProjectID] = partition
	}
	copied := *file
	partition[dynamodb.FileSK(file.CreatedAt, file.FileID)] = &copied
	return nil
}

var (
	_ ports.AlbumRepository       = (*AlbumRepository)(nil)
	_ ports.ProjectRepository     = (*ProjectRepository)(nil)
	_ ports.ProjectFileRepository = (*ProjectFileRepository)(nil)
)
