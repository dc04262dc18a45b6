package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/letmevibethatforyou/tripsearch/recent"
)

// mockDynamoDBClient is an in-memory table keyed by pk/sk.
type mockDynamoDBClient struct {
	items     map[string]map[string]types.AttributeValue
	err       error
	tableSeen string
}

func newMockClient() *mockDynamoDBClient {
	return &mockDynamoDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	pk := key["pk"].(*types.AttributeValueMemberS).Value
	sk := key["sk"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (m *mockDynamoDBClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tableSeen = aws.ToString(params.TableName)
	return &dynamodb.GetItemOutput{Item: m.items[itemKey(params.Key)]}, nil
}

func (m *mockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tableSeen = aws.ToString(params.TableName)
	m.items[itemKey(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoDBClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tableSeen = aws.ToString(params.TableName)
	delete(m.items, itemKey(params.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestStorage_GetMissing(t *testing.T) {
	client := newMockClient()
	storage := New(client, "travel")

	_, ok, err := storage.Get(context.Background(), "recent")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected missing key")
	}
	if client.tableSeen != "travel" {
		t.Errorf("Expected table 'travel', got '%s'", client.tableSeen)
	}
}

func TestStorage_SetGetRemove(t *testing.T) {
	client := newMockClient()
	storage := New(client, "travel")
	ctx := context.Background()

	if err := storage.Set(ctx, "recent", `["cusco"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	item := client.items["recent|kv"]
	if item == nil {
		t.Fatal("Expected item to be stored under pk=recent, sk=kv")
	}
	if v := item["value"].(*types.AttributeValueMemberS).Value; v != `["cusco"]` {
		t.Errorf("Unexpected stored value %q", v)
	}

	value, ok, err := storage.Get(ctx, "recent")
	if err != nil || !ok || value != `["cusco"]` {
		t.Errorf("Get = %q, %v, %v", value, ok, err)
	}

	if err := storage.Remove(ctx, "recent"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := storage.Get(ctx, "recent"); ok {
		t.Error("Expected key to be removed")
	}
}

func TestStorage_Errors(t *testing.T) {
	client := newMockClient()
	client.err = errors.New("throttled")
	storage := New(client, "travel")
	ctx := context.Background()

	if _, _, err := storage.Get(ctx, "recent"); err == nil {
		t.Error("Expected Get error")
	}
	if err := storage.Set(ctx, "recent", "[]"); err == nil {
		t.Error("Expected Set error")
	}
	if err := storage.Remove(ctx, "recent"); err == nil {
		t.Error("Expected Remove error")
	}
}

func TestStorage_RecentStore(t *testing.T) {
	client := newMockClient()
	storage := New(client, "travel")
	ctx := context.Background()

	store := recent.New(ctx, storage)
	store.Push(ctx, "lima")
	store.Push(ctx, "arequipa")

	reloaded := recent.New(ctx, storage).List()
	if len(reloaded) != 2 || reloaded[0] != "arequipa" || reloaded[1] != "lima" {
		t.Errorf("Unexpected reloaded list %v", reloaded)
	}

	client.err = errors.New("unavailable")
	if got := recent.New(ctx, storage).List(); len(got) != 0 {
		t.Errorf("Expected empty list on read failure, got %v", got)
	}
}
