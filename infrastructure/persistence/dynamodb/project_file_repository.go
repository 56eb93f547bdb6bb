package dynamodb

import (
	"context"
	"fmt"

	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"
	"rollouthq/domain/core/valueobjects"
	"rollouthq/pkg/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProjectFileRepository implements ports.ProjectFileRepository
type ProjectFileRepository struct {
	client DynamoDBAPI
	table  TableConfig
	logger *zap.Logger
}

// NewProjectFileRepository creates a new ProjectFileRepository
func NewProjectFileRepository(client DynamoDBAPI, table TableConfig, logger *zap.Logger) *ProjectFileRepository {
	return &ProjectFileRepository{client: client, table: table, logger: logger}
}

type projectFileItem struct {
	PK        string                `dynamodbav:"pk"`
	SK        string                `dynamodbav:"sk"`
	ProjectID string                `dynamodbav:"projectId"`
	AlbumID   string                `dynamodbav:"albumId"`
	FileID    string                `dynamodbav:"fileId"`
	Type      valueobjects.FileType `dynamodbav:"type"`
	Key       string                `dynamodbav:"key"`
	Name      string                `dynamodbav:"name"`
	CreatedAt string                `dynamodbav:"createdAt"`
}

// List returns one page of files in creation order. A cursor that does not
// decode is ignored.
func (r *ProjectFileRepository) List(ctx context.Context, q ports.FileListQuery) (ports.FilePage, error) {
	keyCond := expression.Key(attrPK).Equal(expression.Value(ProjectPK(q.ProjectID))).
		And(expression.Key(attrSK).BeginsWith(prefixFile))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if q.Type != "" {
		builder = builder.WithFilter(expression.Name("type").Equal(expression.Value(q.Type)))
	}
	expr, err := builder.Build()
	if err != nil {
		return ports.FilePage{}, fmt.Errorf("failed to build file query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(int32(common.ClampLimitInt(q.Limit))),
	}
	if q.Cursor != "" {
		startKey, err := DecodeCursor(q.Cursor)
		if err != nil {
			r.logger.Debug("Ignoring invalid cursor", zap.String("projectID", q.ProjectID), zap.Error(err))
		} else {
			input.ExclusiveStartKey = startKey
		}
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return ports.FilePage{}, fmt.Errorf("failed to query project files: %w", err)
	}

	page := ports.FilePage{Items: make([]*entities.ProjectFile, 0, len(out.Items))}
	for _, av := range out.Items {
		var item projectFileItem
		if err := attributevalue.UnmarshalMap(av, &item); err != nil {
			return ports.FilePage{}, fmt.Errorf("failed to unmarshal project file: %w", err)
		}
		page.Items = append(page.Items, &entities.ProjectFile{
			FileID:    item.FileID,
			ProjectID: item.ProjectID,
			AlbumID:   item.AlbumID,
			Type:      item.Type,
			Key:       item.Key,
			Name:      item.Name,
			CreatedAt: item.CreatedAt,
		})
	}

	page.NextCursor, err = EncodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return ports.FilePage{}, err
	}
	return page, nil
}

// Save writes a file item keyed by creation time
func (r *ProjectFileRepository) Save(ctx context.Context, file *entities.ProjectFile) error {
	av, err := attributevalue.MarshalMap(projectFileItem{
		PK:        ProjectPK(file.ProjectID),
		SK:        FileSK(file.CreatedAt, file.FileID),
		ProjectID: file.ProjectID,
		AlbumID:   file.AlbumID,
		FileID:    file.FileID,
		Type:      file.Type,
		Key:       file.Key,
		Name:      file.Name,
		CreatedAt: file.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal project file: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table.TableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("failed to put project file: %w", err)
	}
	return nil
}

var _ ports.ProjectFileRepository = (*ProjectFileRepository)(nil)
