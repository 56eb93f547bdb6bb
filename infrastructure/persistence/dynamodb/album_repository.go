package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"rollouthq/application/ports"
	"rollouthq/domain/core/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ErrUnprocessedItems is returned when a batch delete leaves items behind
var ErrUnprocessedItems = errors.New("batch write left unprocessed items")

// AlbumRepository implements ports.AlbumRepository
type AlbumRepository struct {
	client DynamoDBAPI
	table  TableConfig
	logger *zap.Logger
}

// NewAlbumRepository creates a new AlbumRepository
func NewAlbumRepository(client DynamoDBAPI, table TableConfig, logger *zap.Logger) *AlbumRepository {
	return &AlbumRepository{client: client, table: table, logger: logger}
}

type albumItem struct {
	PK          string  `dynamodbav:"pk"`
	SK          string  `dynamodbav:"sk"`
	GSI1PK      string  `dynamodbav:"gsi1pk,omitempty"`
	GSI1SK      string  `dynamodbav:"gsi1sk,omitempty"`
	AlbumID     string  `dynamodbav:"albumId,omitempty"`
	Name        *string `dynamodbav:"name"`
	CoverArtKey *string `dynamodbav:"coverArtKey"`
	CreatedAt   string  `dynamodbav:"createdAt,omitempty"`
}

func (i albumItem) toEntity() *entities.Album {
	id := i.AlbumID
	if id == "" {
		id = trimPrefix(i.PK, prefixAlbum)
	}
	return &entities.Album{
		AlbumID:     id,
		Name:        i.Name,
		CoverArtKey: i.CoverArtKey,
		CreatedAt:   i.CreatedAt,
		OwnerSub:    trimPrefix(i.GSI1PK, prefixUser),
	}
}

func unmarshalAlbum(av map[string]types.AttributeValue) (*entities.Album, error) {
	var item albumItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal album: %w", err)
	}
	return item.toEntity(), nil
}

// ListByOwner queries the owner index in creation order
func (r *AlbumRepository) ListByOwner(ctx context.Context, ownerSub string) ([]*entities.Album, error) {
	keyCond := expression.Key(attrGSI1PK).Equal(expression.Value(UserGSI1PK(ownerSub)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build album query: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.TableName),
		IndexName:                 aws.String(r.table.GSI1Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	albums := []*entities.Album{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query albums: %w", err)
		}
		for _, av := range page.Items {
			album, err := unmarshalAlbum(av)
			if err != nil {
				return nil, err
			}
			albums = append(albums, album)
		}
	}
	return albums, nil
}

// Get reads the album meta item
func (r *AlbumRepository) Get(ctx context.Context, albumID string) (*entities.Album, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table.TableName),
		Key:       primaryKey(AlbumPK(albumID), albumSK),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ports.ErrNotFound
	}
	return unmarshalAlbum(out.Item)
}

// Save writes the album with its owner index keys
func (r *AlbumRepository) Save(ctx context.Context, album *entities.Album) error {
	item := albumItem{
		PK:          AlbumPK(album.AlbumID),
		SK:          albumSK,
		GSI1PK:      UserGSI1PK(album.OwnerSub),
		GSI1SK:      AlbumGSI1SK(album.CreatedAt),
		AlbumID:     album.AlbumID,
		Name:        album.Name,
		CoverArtKey: album.CoverArtKey,
		CreatedAt:   album.CreatedAt,
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal album: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table.TableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("failed to put album: %w", err)
	}

	r.logger.Debug("Album saved", zap.String("albumID", album.AlbumID))
	return nil
}

// Update sets only the fields present in patch
func (r *AlbumRepository) Update(ctx context.Context, albumID string, patch entities.AlbumPatch) (*entities.Album, error) {
	if patch.IsEmpty() {
		return nil, errors.New("empty album patch")
	}

	var upd expression.UpdateBuilder
	if patch.Name.Set {
		upd = upd.Set(expression.Name("name"), expression.Value(patch.Name.Value))
	}
	if patch.CoverArtKey.Set {
		upd = upd.Set(expression.Name("coverArtKey"), expression.Value(patch.CoverArtKey.Value))
	}

	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build album update: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table.TableName),
		Key:                       primaryKey(AlbumPK(albumID), albumSK),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update album: %w", err)
	}
	return unmarshalAlbum(out.Attributes)
}

// DeleteCascade deletes the album item and every project item in its
// partition. Project file partitions are left in place.
func (r *AlbumRepository) DeleteCascade(ctx context.Context, albumID string) (ports.CascadeResult, error) {
	var result ports.CascadeResult

	keys, err := r.partitionKeys(ctx, AlbumPK(albumID))
	if err != nil {
		return result, err
	}
	if len(keys) == 0 {
		return result, nil
	}

	for _, key := range keys {
		if projectID, ok := cutPrefix(stringAttr(key, attrSK), prefixProject); ok {
			result.ProjectIDs = append(result.ProjectIDs, projectID)
		}
	}

	for start := 0; start < len(keys); start += MaxBatchSize {
		end := min(start+MaxBatchSize, len(keys))

		requests := make([]types.WriteRequest, 0, end-start)
		for _, key := range keys[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
		}

		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.table.TableName: requests},
		})
		result.Batches++
		if err != nil {
			return result, fmt.Errorf("failed to batch delete album items: %w", err)
		}

		if unprocessed := len(out.UnprocessedItems[r.table.TableName]); unprocessed > 0 {
			r.logger.Error("Batch delete left unprocessed items",
				zap.String("albumID", albumID),
				zap.Int("batch", result.Batches),
				zap.Int("batchSize", len(requests)),
				zap.Int("unprocessed", unprocessed),
			)
			result.ItemsDeleted += len(requests) - unprocessed
			return result, fmt.Errorf("%w: %d in batch %d", ErrUnprocessedItems, unprocessed, result.Batches)
		}
		result.ItemsDeleted += len(requests)

		r.logger.Debug("Album batch deleted",
			zap.String("albumID", albumID),
			zap.Int("batch", result.Batches),
			zap.Int("batchSize", len(requests)),
		)
	}

	return result, nil
}

// partitionKeys returns the primary keys of every item under pk
func (r *AlbumRepository) partitionKeys(ctx context.Context, pk string) ([]map[string]types.AttributeValue, error) {
	keyCond := expression.Key(attrPK).Equal(expression.Value(pk))
	proj := expression.NamesList(expression.Name(attrPK), expression.Name(attrSK))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build partition query: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ProjectionExpression:      expr.Projection(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var keys []map[string]types.AttributeValue
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query album partition: %w", err)
		}
		for _, item := range page.Items {
			keys = append(keys, primaryKey(stringAttr(item, attrPK), stringAttr(item, attrSK)))
		}
	}
	return keys, nil
}

var _ ports.AlbumRepository = (*AlbumRepository)(nil)
