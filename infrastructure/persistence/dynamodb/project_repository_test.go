package dynamodb

import (
	"context"
	"testing"
	"time"

	"rollouthq/domain/core/entities"
	"rollouthq/domain/core/valueobjects"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_SaveDefaults(t *testing.T) {
	client := newFakeClient(t)
	var put *dynamodb.PutItemInput
	client.putFn = func(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		put = in
		return &dynamodb.PutItemOutput{}, nil
	}

	p, err := entities.NewProject("alb-1", "prj-1", "Track One", "", "", "user-a", time.Now())
	require.NoError(t, err)
	require.NoError(t, NewProjectRepository(client, testTable, testLogger()).Save(context.Background(), p))

	assert.Equal(t, s("ALBUM#alb-1"), put.Item["pk"])
	assert.Equal(t, s("PROJECT#prj-1"), put.Item["sk"])
	assert.Equal(t, s("On Track"), put.Item["status"])
	assert.Equal(t, s("No priority"), put.Item["priority"])
	verses, ok := put.Item["verses"].(*types.AttributeValueMemberL)
	require.True(t, ok)
	assert.Empty(t, verses.Value)
	assert.IsType(t, &types.AttributeValueMemberNULL{}, put.Item["finalSong"])
	assert.NotContains(t, put.Item, "lead")
	assert.NotContains(t, put.Item, "description")
}

func TestProjectRepository_ReplaceExpression(t *testing.T) {
	client := newFakeClient(t)
	var upd *dynamodb.UpdateItemInput
	client.updateFn = func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
		upd = in
		return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
			"pk":     s("ALBUM#alb-1"),
			"sk":     s("PROJECT#prj-1"),
			"name":   s("Track One"),
			"status": s("At Risk"),
			"verses": &types.AttributeValueMemberL{},
		}}, nil
	}

	rep := entities.ProjectReplacement{Name: "Renamed", Status: valueobjects.ProjectStatus("At Risk")}
	p, err := NewProjectRepository(client, testTable, testLogger()).Replace(context.Background(), "alb-1", "prj-1", rep)
	require.NoError(t, err)

	assert.Equal(t, "prj-1", p.ProjectID)
	assert.Equal(t, "alb-1", p.AlbumID)
	assert.Equal(t, "Track One", p.Name)
	assert.NotNil(t, p.Verses)
	assert.NotNil(t, p.Writers)

	require.NotNil(t, upd)
	assert.Contains(t, *upd.UpdateExpression, "if_not_exists")
	assert.Equal(t, types.ReturnValueAllNew, upd.ReturnValues)

	names := namesUsed(upd.ExpressionAttributeNames)
	for _, field := range []string{"name", "status", "priority", "verses", "hooks", "beats", "samples", "finalSong",
		"description", "updates", "artists", "producers", "writers", "lead", "startDate", "targetDate"} {
		assert.True(t, names[field], field)
	}

	values := map[string]interface{}{}
	for alias, av := range upd.ExpressionAttributeValues {
		var v interface{}
		require.NoError(t, attributevalue.Unmarshal(av, &v))
		values[alias] = v
	}
	assert.Contains(t, valueSet(values), "Renamed")
	assert.Contains(t, valueSet(values), "You")
	assert.Contains(t, valueSet(values), "No priority")
}

func valueSet(values map[string]interface{}) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func TestProjectRepository_ListByAlbumUsesPrefix(t *testing.T) {
	client := newFakeClient(t)
	client.queryFn = func(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		assert.Contains(t, *in.KeyConditionExpression, "begins_with")
		assert.Nil(t, in.IndexName)
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			{"pk": s("ALBUM#alb-1"), "sk": s("PROJECT#prj-1"), "projectId": s("prj-1"), "albumId": s("alb-1"), "name": s("Track One")},
		}}, nil
	}

	projects, err := NewProjectRepository(client, testTable, testLogger()).ListByAlbum(context.Background(), "alb-1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Track One", projects[0].Name)
	assert.Equal(t, []valueobjects.ContentFile{}, projects[0].Hooks)
}

func TestProjectRepository_Delete(t *testing.T) {
	client := newFakeClient(t)
	var del *dynamodb.DeleteItemInput
	client.deleteFn = func(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
		del = in
		return &dynamodb.DeleteItemOutput{}, nil
	}

	require.NoError(t, NewProjectRepository(client, testTable, testLogger()).Delete(context.Background(), "alb-1", "prj-1"))
	assert.Equal(t, primaryKey("ALBUM#alb-1", "PROJECT#prj-1"), del.Key)
}
