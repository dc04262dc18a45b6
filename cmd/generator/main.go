package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/algolia"
	"github.com/letmevibethatforyou/tripsearch/catalog"
	"github.com/segmentio/ksuid"
	"github.com/urfave/cli/v2"
)

var (
	tours = map[string][]string{
		"Cusco":       {"Machu Picchu Clásico", "Valle Sagrado", "Montaña de Colores", "City Tour Cusco", "Laguna Humantay"},
		"Lima":        {"Lima Gourmet", "Centro Histórico", "Islas Palomino", "Pachacámac", "Barranco de Noche"},
		"Arequipa":    {"Cañón del Colca", "Ciudad Blanca", "Reserva Salinas", "Ruta del Sillar"},
		"Puno":        {"Islas de los Uros", "Isla Taquile", "Sillustani"},
		"Ica":         {"Huacachina y Tubulares", "Ruta del Pisco", "Islas Ballestas"},
		"Iquitos":     {"Amazonía Esencial", "Reserva Pacaya Samiria", "Río Nanay"},
		"Trujillo":    {"Chan Chan", "Huacas del Sol y la Luna", "Huanchaco"},
		"Huaraz":      {"Laguna 69", "Pastoruri", "Chavín de Huántar"},
		"Mancora":     {"Playas del Norte", "Nado con Tortugas"},
		"Chachapoyas": {"Kuélap", "Catarata de Gocta"},
	}

	// missingRate is the share of generated packages without a price or
	// duration.
	missingRate = 0.1
)

func generatePackage(r *rand.Rand) tripsearch.Package {
	cities := slices.Sorted(maps.Keys(tours))
	city := cities[r.IntN(len(cities))]
	names := tours[city]

	p := tripsearch.Package{
		ID:   ksuid.New().String(),
		Name: names[r.IntN(len(names))],
		City: city,
	}
	if r.Float64() >= missingRate {
		p.Price = tripsearch.Price(math.Round((80+r.Float64()*1920)*100) / 100) // 80-2000
	}
	if r.Float64() >= missingRate {
		p.Duration = tripsearch.Days(r.IntN(7) + 1) // 1-7 days
	}
	return p
}

func generatePackages(r *rand.Rand, count int) []tripsearch.Package {
	pkgs := make([]tripsearch.Package, count)
	for i := range pkgs {
		pkgs[i] = generatePackage(r)
	}
	return pkgs
}

func runAction(c *cli.Context) error {
	ctx := c.Context
	env := c.String("env")
	tableName := strings.TrimSpace(c.String("table-name"))
	indexName := strings.TrimSpace(c.String("index"))
	count := c.Int("count")
	prune := c.Bool("prune")

	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	if prune && (tableName == "" || indexName == "") {
		return fmt.Errorf("--prune requires both --table-name and --index")
	}

	slog.InfoContext(ctx, "Starting package generator",
		"environment", env,
		"table", tableName,
		"index", indexName,
		"count", count,
		"prune", prune,
	)

	pkgs := generatePackages(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), count)

	if tableName == "" && indexName == "" {
		data, err := json.MarshalIndent(pkgs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal packages: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	var table *dynamodb.Client
	if tableName != "" {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}
		table = dynamodb.NewFromConfig(cfg)
		if err := catalog.PutDynamo(ctx, table, tableName, pkgs); err != nil {
			return fmt.Errorf("failed to insert packages: %w", err)
		}
	}

	if indexName != "" {
		client, err := newAlgoliaClient(ctx, c.String("algolia-secret-arn"), env)
		if err != nil {
			return err
		}
		if err := client.ConfigureIndex(ctx, indexName); err != nil {
			return err
		}
		if err := client.SavePackages(ctx, indexName, pkgs); err != nil {
			return err
		}

		if prune {
			keep, err := catalog.LoadDynamo(ctx, table, tableName)
			if err != nil {
				return fmt.Errorf("failed to load packages from table %s: %w", tableName, err)
			}
			if err := pruneIndex(ctx, algolia.NewFinder(client, indexName), client, indexName, keep); err != nil {
				return err
			}
		}
	}

	slog.InfoContext(ctx, "Successfully generated and stored all packages", "count", count)
	return nil
}

func newAlgoliaClient(ctx context.Context, secretArn, env string) (*algolia.Client, error) {
	var fetchSecrets algolia.FetchSecrets
	switch {
	case secretArn != "":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		fetchSecrets = algolia.AWSSecretsFromARN(ctx, secretsmanager.NewFromConfig(cfg), secretArn)
	case env != "":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		fetchSecrets = algolia.AWSSecrets(ctx, secretsmanager.NewFromConfig(cfg), env)
	default:
		fetchSecrets = algolia.EnvSecrets()
	}
	return algolia.NewClient(fetchSecrets), nil
}

// packageDeleter removes records from a search index.
type packageDeleter interface {
	DeletePackages(ctx context.Context, indexName string, ids []string) error
}

// pruneIndex deletes indexed packages that are no longer in keep.
func pruneIndex(ctx context.Context, indexed tripsearch.Finder, deleter packageDeleter, indexName string, keep []tripsearch.Package) error {
	current, err := indexed.Find(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexed packages: %w", err)
	}

	ids := staleIDs(current, keep)
	if len(ids) == 0 {
		slog.InfoContext(ctx, "Index has no stale packages", "index", indexName)
		return nil
	}
	if err := deleter.DeletePackages(ctx, indexName, ids); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Pruned stale packages", "index", indexName, "count", len(ids))
	return nil
}

// staleIDs returns the IDs in indexed that keep does not contain, in
// index order.
func staleIDs(indexed, keep []tripsearch.Package) []string {
	present := make(map[string]struct{}, len(keep))
	for _, p := range keep {
		present[p.ID] = struct{}{}
	}
	var ids []string
	for _, p := range indexed {
		if _, ok := present[p.ID]; !ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func main() {
	// Configure JSON logging for AWS environments
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_REGION") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	app := &cli.App{
		Name:  "generator",
		Usage: "Generate random tour packages and store them in DynamoDB and/or Algolia",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Environment name; selects the {env}/tripsearch/algolia secret",
				EnvVars: []string{"ENVIRONMENT"},
			},
			&cli.StringFlag{
				Name:    "table-name",
				Aliases: []string{"t"},
				Usage:   "DynamoDB table name",
				EnvVars: []string{"TABLE_NAME"},
			},
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Algolia index name",
				EnvVars: []string{"ALGOLIA_INDEX"},
			},
			&cli.StringFlag{
				Name:    "algolia-secret-arn",
				Usage:   "ARN of AWS Secrets Manager secret containing Algolia credentials",
				EnvVars: []string{"ALGOLIA_SECRET_ARN"},
			},
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"c"},
				Usage:   "Number of packages to generate",
				Value:   1,
			},
			&cli.BoolFlag{
				Name:  "prune",
				Usage: "Delete index records whose IDs are no longer in the DynamoDB table",
			},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
