package dynamodb

import (
	"context"
	"fmt"

	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"
	"rollouthq/domain/core/valueobjects"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ProjectRepository implements ports.ProjectRepository
type ProjectRepository struct {
	client DynamoDBAPI
	table  TableConfig
	logger *zap.Logger
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(client DynamoDBAPI, table TableConfig, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{client: client, table: table, logger: logger}
}

// projectItem is the stored shape. Fields written only by a replacement are
// omitted on create.
type projectItem struct {
	PK          string                       `dynamodbav:"pk"`
	SK          string                       `dynamodbav:"sk"`
	ProjectID   string                       `dynamodbav:"projectId,omitempty"`
	AlbumID     string                       `dynamodbav:"albumId,omitempty"`
	Name        string                       `dynamodbav:"name,omitempty"`
	Status      valueobjects.ProjectStatus   `dynamodbav:"status,omitempty"`
	Priority    valueobjects.ProjectPriority `dynamodbav:"priority,omitempty"`
	Verses      []valueobjects.ContentFile   `dynamodbav:"verses"`
	Hooks       []valueobjects.ContentFile   `dynamodbav:"hooks"`
	Beats       []valueobjects.ContentFile   `dynamodbav:"beats"`
	Samples     []valueobjects.ContentFile   `dynamodbav:"samples"`
	FinalSong   *valueobjects.ContentFile    `dynamodbav:"finalSong"`
	Description string                       `dynamodbav:"description,omitempty"`
	Updates     []valueobjects.Update        `dynamodbav:"updates,omitempty"`
	Artists     []valueobjects.Artist        `dynamodbav:"artists,omitempty"`
	Producers   []valueobjects.Artist        `dynamodbav:"producers,omitempty"`
	Writers     []valueobjects.Artist        `dynamodbav:"writers,omitempty"`
	Lead        string                       `dynamodbav:"lead,omitempty"`
	StartDate   *string                      `dynamodbav:"startDate,omitempty"`
	TargetDate  *string                      `dynamodbav:"targetDate,omitempty"`
	CreatedAt   string                       `dynamodbav:"createdAt,omitempty"`
}

func (i projectItem) toEntity() *entities.Project {
	p := &entities.Project{
		ProjectID:   i.ProjectID,
		AlbumID:     i.AlbumID,
		Name:        i.Name,
		Status:      i.Status,
		Priority:    i.Priority,
		Verses:      i.Verses,
		Hooks:       i.Hooks,
		Beats:       i.Beats,
		Samples:     i.Samples,
		FinalSong:   i.FinalSong,
		Description: i.Description,
		Updates:     i.Updates,
		Artists:     i.Artists,
		Producers:   i.Producers,
		Writers:     i.Writers,
		Lead:        i.Lead,
		StartDate:   i.StartDate,
		TargetDate:  i.TargetDate,
		CreatedAt:   i.CreatedAt,
	}
	// An upserted project has only its keys
	if p.ProjectID == "" {
		p.ProjectID = trimPrefix(i.SK, prefixProject)
	}
	if p.AlbumID == "" {
		p.AlbumID = trimPrefix(i.PK, prefixAlbum)
	}
	p.Normalize()
	return p
}

func unmarshalProject(av map[string]types.AttributeValue) (*entities.Project, error) {
	var item projectItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return item.toEntity(), nil
}

// ListByAlbum returns every project in the album partition
func (r *ProjectRepository) ListByAlbum(ctx context.Context, albumID string) ([]*entities.Project, error) {
	keyCond := expression.Key(attrPK).Equal(expression.Value(AlbumPK(albumID))).
		And(expression.Key(attrSK).BeginsWith(prefixProject))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build project query: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	projects := []*entities.Project{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query projects: %w", err)
		}
		for _, av := range page.Items {
			p, err := unmarshalProject(av)
			if err != nil {
				return nil, err
			}
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// Get reads one project, ports.ErrNotFound when absent
func (r *ProjectRepository) Get(ctx context.Context, albumID, projectID string) (*entities.Project, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.TableName),
		Key:       primaryKey(AlbumPK(albumID), ProjectSK(projectID)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ports.ErrNotFound
	}
	return unmarshalProject(out.Item)
}

// Save writes a newly created project
func (r *ProjectRepository) Save(ctx context.Context, project *entities.Project) error {
	project.Normalize()
	item := projectItem{
		PK:        AlbumPK(project.AlbumID),
		SK:        ProjectSK(project.ProjectID),
		ProjectID: project.ProjectID,
		AlbumID:   project.AlbumID,
		Name:      project.Name,
		Status:    project.Status,
		Priority:  project.Priority,
		Verses:    project.Verses,
		Hooks:     project.Hooks,
		Beats:     project.Beats,
		Samples:   project.Samples,
		FinalSong: project.FinalSong,
		CreatedAt: project.CreatedAt,
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table.TableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("failed to put project: %w", err)
	}
	return nil
}

// Replace writes every mutable field. The name is only written when the
// stored item has none.
func (r *ProjectRepository) Replace(ctx context.Context, albumID, projectID string, rep entities.ProjectReplacement) (*entities.Project, error) {
	rep = rep.WithDefaults()

	upd := expression.Set(expression.Name("name"), expression.IfNotExists(expression.Name("name"), expression.Value(rep.Name))).
		Set(expression.Name("status"), expression.Value(rep.Status)).
		Set(expression.Name("priority"), expression.Value(rep.Priority)).
		Set(expression.Name("verses"), expression.Value(rep.Verses)).
		Set(expression.Name("hooks"), expression.Value(rep.Hooks)).
		Set(expression.Name("beats"), expression.Value(rep.Beats)).
		Set(expression.Name("samples"), expression.Value(rep.Samples)).
		Set(expression.Name("finalSong"), expression.Value(rep.FinalSong)).
		Set(expression.Name("description"), expression.Value(rep.Description)).
		Set(expression.Name("updates"), expression.Value(rep.Updates)).
		Set(expression.Name("artists"), expression.Value(rep.Artists)).
		Set(expression.Name("producers"), expression.Value(rep.Producers)).
		Set(expression.Name("writers"), expression.Value(rep.Writers)).
		Set(expression.Name("lead"), expression.Value(rep.Lead)).
		Set(expression.Name("startDate"), expression.Value(rep.StartDate)).
		Set(expression.Name("targetDate"), expression.Value(rep.TargetDate))

	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build project update: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table.TableName),
		Key:                       primaryKey(AlbumPK(albumID), ProjectSK(projectID)),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return unmarshalProject(out.Attributes)
}

// Delete removes the project item. Files under PROJECT#<id> remain.
func (r *ProjectRepository) Delete(ctx context.Context, albumID, projectID string) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table.TableName),
		Key:       primaryKey(AlbumPK(albumID), ProjectSK(projectID)),
	}); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
