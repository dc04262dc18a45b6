// Package ddb holds the DynamoDB item shapes shared by the catalog loader,
// the generator and the recent-query storage.
package ddb

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/letmevibethatforyou/tripsearch"
)

// Sort keys partitioning a single table between item kinds.
const (
	PackagesSortKey = "packages"
	ValuesSortKey   = "kv"
)

// PackageRecord is a tour package stored as pk=<id>, sk="packages".
type PackageRecord struct {
	ID     string             `dynamodbav:"pk"`
	Kind   string             `dynamodbav:"sk"`
	Object tripsearch.Package `dynamodbav:"object"`
}

// ValueRecord is a string value stored as pk=<key>, sk="kv".
type ValueRecord struct {
	Key   string `dynamodbav:"pk"`
	Kind  string `dynamodbav:"sk"`
	Value string `dynamodbav:"value"`
}

// Key returns the primary key attributes for pk under sortKey.
func Key(pk, sortKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: pk},
		"sk": &types.AttributeValueMemberS{Value: sortKey},
	}
}

// MarshalPackage converts p into a DynamoDB item.
func MarshalPackage(p tripsearch.Package) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(PackageRecord{ID: p.ID, Kind: PackagesSortKey, Object: p})
}

// UnmarshalPackage converts a DynamoDB item into a Package. The pk
// attribute wins over an ID embedded in the object.
func UnmarshalPackage(item map[string]types.AttributeValue) (tripsearch.Package, error) {
	var record PackageRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return tripsearch.Package{}, err
	}
	p := record.Object
	if record.ID != "" {
		p.ID = record.ID
	}
	return p, nil
}
