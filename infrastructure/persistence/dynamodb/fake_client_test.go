package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

type apiCall[T, U any] func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error)

// fakeClient is a func-field fake; calls without a func fail the test
type fakeClient struct {
	t        *testing.T
	getFn    apiCall[dynamodb.GetItemInput, dynamodb.GetItemOutput]
	putFn    apiCall[dynamodb.PutItemInput, dynamodb.PutItemOutput]
	updateFn apiCall[dynamodb.UpdateItemInput, dynamodb.UpdateItemOutput]
	deleteFn apiCall[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput]
	queryFn  apiCall[dynamodb.QueryInput, dynamodb.QueryOutput]
	batchFn  apiCall[dynamodb.BatchWriteItemInput, dynamodb.BatchWriteItemOutput]
}

func newFakeClient(t *testing.T) *fakeClient {
	return &fakeClient{t: t}
}

func unexpected(t *testing.T, op string) {
	t.Helper()
	t.Fatalf("unexpected %s call", op)
}

func (f *fakeClient) GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getFn == nil {
		unexpected(f.t, "GetItem")
	}
	return f.getFn(ctx, in, opts...)
}

func (f *fakeClient) PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putFn == nil {
		unexpected(f.t, "PutItem")
	}
	return f.putFn(ctx, in, opts...)
}

func (f *fakeClient) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.updateFn == nil {
		unexpected(f.t, "UpdateItem")
	}
	return f.updateFn(ctx, in, opts...)
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.deleteFn == nil {
		unexpected(f.t, "DeleteItem")
	}
	return f.deleteFn(ctx, in, opts...)
}

func (f *fakeClient) Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.queryFn == nil {
		unexpected(f.t, "Query")
	}
	return f.queryFn(ctx, in, opts...)
}

func (f *fakeClient) BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if f.batchFn == nil {
		unexpected(f.t, "BatchWriteItem")
	}
	return f.batchFn(ctx, in, opts...)
}

var testTable = TableConfig{TableName: "rollout-test", GSI1Name: "GSI1"}

func testLogger() *zap.Logger { return zap.NewNop() }

func s(v string) *types.AttributeValueMemberS { return &types.AttributeValueMemberS{Value: v} }

// namesUsed resolves the #aliases of an expression back to attribute names
func namesUsed(names map[string]string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
