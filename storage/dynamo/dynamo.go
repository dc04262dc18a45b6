// Package dynamo persists recent queries in a DynamoDB table keyed by
// pk (string) and sk (string).
package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch/internal/ddb"
	"github.com/letmevibethatforyou/tripsearch/recent"
)

// DynamoDBClient defines the DynamoDB operations used by Storage.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Storage is a recent.Storage backed by DynamoDB.
type Storage struct {
	client    DynamoDBClient
	tableName string
}

var _ recent.Storage = (*Storage)(nil)

// New returns a Storage writing to tableName.
func New(client DynamoDBClient, tableName string) *Storage {
	return &Storage{client: client, tableName: tableName}
}

// Get implements recent.Storage.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            ddb.Key(key, ddb.ValuesSortKey),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, errors.Wrapf(err, "get %q from table %s", key, s.tableName)
	}
	if out == nil || len(out.Item) == 0 {
		return "", false, nil
	}

	var record ddb.ValueRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return "", false, errors.Wrapf(err, "unmarshal %q", key)
	}
	return record.Value, true, nil
}

// Set implements recent.Storage.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	item, err := attributevalue.MarshalMap(ddb.ValueRecord{Key: key, Kind: ddb.ValuesSortKey, Value: value})
	if err != nil {
		return errors.Wrapf(err, "marshal %q", key)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return errors.Wrapf(err, "put %q into table %s", key, s.tableName)
	}
	return nil
}

// Remove implements recent.Storage.
func (s *Storage) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       ddb.Key(key, ddb.ValuesSortKey),
	})
	if err != nil {
		return errors.Wrapf(err, "delete %q from table %s", key, s.tableName)
	}
	return nil
}
