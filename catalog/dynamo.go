package catalog

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/internal/ddb"
)

// DynamoDBClient defines the DynamoDB operations used to read and write
// package records.
type DynamoDBClient interface {
	dynamodb.ScanAPIClient
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// LoadDynamo scans tableName for package records (sk = "packages").
func LoadDynamo(ctx context.Context, client dynamodb.ScanAPIClient, tableName string) ([]tripsearch.Package, error) {
	paginator := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{
		TableName:                aws.String(tableName),
		FilterExpression:         aws.String("#sk = :sk"),
		ExpressionAttributeNames: map[string]string{"#sk": "sk"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sk": &types.AttributeValueMemberS{Value: ddb.PackagesSortKey},
		},
	})

	var pkgs []tripsearch.Package
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			if ctxErr := tripsearch.ContextError(ctx.Err()); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, errors.WithSecondaryError(
				tripsearch.ErrBackendUnavailable,
				errors.Wrapf(err, "scan table %s", tableName),
			)
		}
		for _, item := range page.Items {
			p, err := ddb.UnmarshalPackage(item)
			if err != nil {
				return nil, errors.WithSecondaryError(tripsearch.ErrInvalidCatalog, err)
			}
			pkgs = append(pkgs, p)
		}
	}

	if err := validatePackages(pkgs); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Loaded packages from DynamoDB", "table", tableName, "count", len(pkgs))
	return pkgs, nil
}

// PutDynamo writes each package as its own record.
func PutDynamo(ctx context.Context, client DynamoDBClient, tableName string, pkgs []tripsearch.Package) error {
	for _, p := range pkgs {
		item, err := ddb.MarshalPackage(p)
		if err != nil {
			return errors.Wrapf(err, "marshal package %s", p.ID)
		}

		_, err = client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(tableName),
			Item:      item,
		})
		if err != nil {
			return errors.Wrapf(err, "put package %s", p.ID)
		}

		slog.InfoContext(ctx, "Successfully inserted package",
			"id", p.ID,
			"name", p.Name,
			"city", p.City,
		)
	}
	return nil
}
