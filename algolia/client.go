// Package algolia provides a lazy-loading Algolia client and a package
// Finder backed by an Algolia index.
package algolia

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/algolia/algoliasearch-client-go/v3/algolia/search"
	"github.com/letmevibethatforyou/tripsearch"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Secrets holds the Algolia application credentials.
type Secrets struct {
	// AppID is the Algolia application ID.
	AppID string `json:"app_id"`
	// WriteApiKey is the Algolia write API key.
	WriteApiKey string `json:"write_api_key"`
}

// FetchSecrets is a function type that retrieves Algolia credentials.
type FetchSecrets func() (Secrets, error)

// StaticSecrets returns a FetchSecrets function that provides static credentials.
func StaticSecrets(appID, writeApiKey string) FetchSecrets {
	return func() (Secrets, error) {
		return Secrets{
			AppID:       appID,
			WriteApiKey: writeApiKey,
		}, nil
	}
}

// EnvSecrets reads ALGOLIA_APP_ID and ALGOLIA_API_KEY.
func EnvSecrets() FetchSecrets {
	return func() (Secrets, error) {
		appID := os.Getenv("ALGOLIA_APP_ID")
		if appID == "" {
			return Secrets{}, fmt.Errorf("ALGOLIA_APP_ID environment variable is not set")
		}

		apiKey := os.Getenv("ALGOLIA_API_KEY")
		if apiKey == "" {
			return Secrets{}, fmt.Errorf("ALGOLIA_API_KEY environment variable is not set")
		}

		return Secrets{
			AppID:       appID,
			WriteApiKey: apiKey,
		}, nil
	}
}

// objectIterator is satisfied by *search.ObjectIterator. Next decodes the
// record into its first argument and returns io.EOF after the last one.
type objectIterator interface {
	Next(opts ...interface{}) (interface{}, error)
}

// packageIndex is the read side of an index used by Finder.
type packageIndex interface {
	Browse(opts ...interface{}) (objectIterator, error)
}

// browsableIndex adapts *search.Index to packageIndex.
type browsableIndex struct {
	index *search.Index
}

// Browse walks every record matching opts with the browse API, which
// is not bound by the index's paginationLimitedTo setting.
func (b browsableIndex) Browse(opts ...interface{}) (objectIterator, error) {
	it, err := b.index.BrowseObjects(opts...)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Client resolves credentials on first use and traces every call.
type Client struct {
	getClient func() (*search.Client, error)
	tracer    trace.Tracer
}

// NewClient returns a Client that fetches credentials lazily.
func NewClient(fetchSecrets FetchSecrets) *Client {
	getClient := sync.OnceValues(func() (*search.Client, error) {
		secrets, err := fetchSecrets()
		if err != nil {
			return nil, fmt.Errorf("failed to fetch secrets: %w", err)
		}

		if secrets.AppID == "" {
			return nil, fmt.Errorf("AppID is empty")
		}

		if secrets.WriteApiKey == "" {
			return nil, fmt.Errorf("WriteApiKey is empty")
		}

		return search.NewClient(secrets.AppID, secrets.WriteApiKey), nil
	})

	return &Client{
		getClient: getClient,
		tracer:    otel.Tracer("tripsearch-algolia"),
	}
}

func (c *Client) index(indexName string) (packageIndex, error) {
	client, err := c.getClient()
	if err != nil {
		return nil, err
	}
	return browsableIndex{index: client.InitIndex(indexName)}, nil
}

// record is the indexed shape of a package. Algolia requires objectID.
type record struct {
	ObjectID string `json:"objectID"`
	tripsearch.Package
}

func toRecords(pkgs []tripsearch.Package) []record {
	records := make([]record, len(pkgs))
	for i, p := range pkgs {
		records[i] = record{ObjectID: p.ID, Package: p}
	}
	return records
}

// ConfigureIndex declares city as a filter-only facet so that city
// filters can run server side.
func (c *Client) ConfigureIndex(ctx context.Context, indexName string) error {
	_, span := c.tracer.Start(ctx, "algolia.configure_index",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
		),
	)
	defer span.End()

	client, err := c.getClient()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return err
	}

	res, err := client.InitIndex(indexName).SetSettings(search.Settings{
		AttributesForFaceting: opt.AttributesForFaceting("filterOnly(" + tripsearch.FieldCity + ")"),
	})
	if err == nil {
		err = res.Wait()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to configure index %s", indexName))
		return fmt.Errorf("failed to configure Algolia index %s: %w", indexName, err)
	}

	span.SetStatus(codes.Ok, "index configured")
	return nil
}

// SavePackages indexes pkgs, replacing records with the same ID.
func (c *Client) SavePackages(ctx context.Context, indexName string, pkgs []tripsearch.Package) error {
	if len(pkgs) == 0 {
		return nil
	}

	_, span := c.tracer.Start(ctx, "algolia.save_packages",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
			attribute.Int("algolia.object_count", len(pkgs)),
		),
	)
	defer span.End()

	client, err := c.getClient()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return err
	}

	_, err = client.InitIndex(indexName).SaveObjects(toRecords(pkgs))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to batch save %d packages to index %s", len(pkgs), indexName))
		return fmt.Errorf("failed to batch save packages to Algolia index %s: %w", indexName, err)
	}

	span.SetStatus(codes.Ok, fmt.Sprintf("batch saved %d packages successfully", len(pkgs)))
	return nil
}

// DeletePackages removes the records with the given IDs.
func (c *Client) DeletePackages(ctx context.Context, indexName string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, span := c.tracer.Start(ctx, "algolia.delete_packages",
		trace.WithAttributes(
			attribute.String("algolia.index_name", indexName),
			attribute.Int("algolia.object_count", len(ids)),
		),
	)
	defer span.End()

	client, err := c.getClient()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return err
	}

	_, err = client.InitIndex(indexName).DeleteObjects(ids)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("failed to batch delete %d packages from index %s", len(ids), indexName))
		return fmt.Errorf("failed to batch delete packages from Algolia index %s: %w", indexName, err)
	}

	span.SetStatus(codes.Ok, fmt.Sprintf("batch deleted %d packages successfully", len(ids)))
	return nil
}
