// Package dynamodb implements the repositories on a single DynamoDB table.
//
// Key layout:
//
//	album    pk=ALBUM#<albumId>    sk=ALBUM                     gsi1pk=USER#<sub> gsi1sk=ALBUM#<createdAt>
//	project  pk=ALBUM#<albumId>    sk=PROJECT#<projectId>
//	file     pk=PROJECT#<projectId> sk=FILE#<createdAt>#<fileId>
package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// MaxBatchSize is the BatchWriteItem request limit
const MaxBatchSize = 25

// DynamoDBAPI is the subset of the DynamoDB client the repositories use
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

var _ DynamoDBAPI = (*dynamodb.Client)(nil)

// TableConfig names the table and its index
type TableConfig struct {
	TableName string
	GSI1Name  string
}
