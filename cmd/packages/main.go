package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/algolia"
	"github.com/letmevibethatforyou/tripsearch/catalog"
	"github.com/letmevibethatforyou/tripsearch/inmemory"
	"github.com/urfave/cli/v2"
)

const defaultTimeout = 10 * time.Second

func main() {
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_REGION") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	app := &cli.App{
		Name:  "packages",
		Usage: "Filter tour packages by city, price and duration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "YAML or JSON package catalog",
				EnvVars: []string{"PACKAGES_FILE"},
			},
			&cli.StringFlag{
				Name:    "table-name",
				Aliases: []string{"t"},
				Usage:   "DynamoDB table holding package records",
				EnvVars: []string{"TABLE_NAME"},
			},
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Algolia index holding package records",
				EnvVars: []string{"ALGOLIA_INDEX"},
			},
			&cli.StringFlag{
				Name:    "algolia-secret-arn",
				Usage:   "ARN of AWS Secrets Manager secret containing Algolia credentials",
				EnvVars: []string{"ALGOLIA_SECRET_ARN"},
			},
			&cli.StringSliceFlag{
				Name:    "city",
				Aliases: []string{"c"},
				Usage:   "Allowed city; repeatable",
			},
			&cli.Float64Flag{
				Name:  "max-price",
				Usage: "Inclusive price ceiling; unset means no limit",
			},
			&cli.Float64Flag{
				Name:  "max-duration",
				Usage: "Inclusive duration ceiling in days; unset means no limit",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of packages to print; 0 prints all",
			},
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "Number of packages to skip",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for loading and filtering",
				Value: defaultTimeout,
			},
		},
		Action: runAction,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	ctx := c.Context

	timeout := c.Duration("timeout")
	if timeout <= 0 {
		slog.WarnContext(ctx, "timeout must be positive; using default", "timeout", timeout, "default", defaultTimeout)
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	criteria := buildCriteria(c.StringSlice("city"), optionalFloat(c, "max-price"), optionalFloat(c, "max-duration"))

	offset := c.Int("offset")
	if offset < 0 {
		slog.WarnContext(ctx, "offset cannot be negative; resetting to 0", "offset", offset)
		offset = 0
	}

	finder, err := newFinder(ctx, source{
		file:      strings.TrimSpace(c.String("file")),
		table:     strings.TrimSpace(c.String("table-name")),
		index:     strings.TrimSpace(c.String("index")),
		secretArn: strings.TrimSpace(c.String("algolia-secret-arn")),
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "filtering packages",
		"cities", criteria.AllowedCities,
		"max_price", criteria.MaxPrice,
		"max_duration", criteria.MaxDuration,
		"limit", c.Int("limit"),
		"offset", offset,
	)

	pkgs, err := finder.Find(ctx, criteria, tripsearch.WithLimit(c.Int("limit")), tripsearch.WithOffset(offset))
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}

	return printPackages(pkgs)
}

// source names where packages come from. Exactly one field besides
// secretArn must be set.
type source struct {
	file      string
	table     string
	index     string
	secretArn string
}

func (s source) validate() error {
	set := 0
	for _, v := range []string{s.file, s.table, s.index} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of --file, --table-name or --index is required")
	}
	return nil
}

func newFinder(ctx context.Context, s source) (tripsearch.Finder, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	switch {
	case s.file != "":
		pkgs, err := catalog.LoadPackagesFile(s.file)
		if err != nil {
			return nil, err
		}
		return inmemory.NewCatalog(pkgs...), nil

	case s.table != "":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		pkgs, err := catalog.LoadDynamo(ctx, dynamodb.NewFromConfig(cfg), s.table)
		if err != nil {
			return nil, err
		}
		return inmemory.NewCatalog(pkgs...), nil

	default:
		var fetchSecrets algolia.FetchSecrets
		if s.secretArn != "" {
			slog.InfoContext(ctx, "using AWS Secrets Manager for Algolia credentials", "secret_arn", s.secretArn)
			cfg, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to load AWS config: %w", err)
			}
			fetchSecrets = algolia.AWSSecretsFromARN(ctx, secretsmanager.NewFromConfig(cfg), s.secretArn)
		} else {
			fetchSecrets = algolia.EnvSecrets()
		}
		return algolia.NewFinder(algolia.NewClient(fetchSecrets), s.index), nil
	}
}

func optionalFloat(c *cli.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float64(name)
	return &v
}

// buildCriteria turns flag values into Criteria. Blank cities are
// dropped and unset bounds become NoLimit.
func buildCriteria(cities []string, maxPrice, maxDuration *float64) tripsearch.Criteria {
	criteria := tripsearch.Unrestricted()
	for _, city := range cities {
		if city = strings.TrimSpace(city); city != "" {
			criteria.AllowedCities = append(criteria.AllowedCities, city)
		}
	}
	if maxPrice != nil {
		criteria.MaxPrice = *maxPrice
	}
	if maxDuration != nil {
		criteria.MaxDuration = *maxDuration
	}
	return criteria
}

func printPackages(pkgs []tripsearch.Package) error {
	if pkgs == nil {
		pkgs = []tripsearch.Package{}
	}

	payload := struct {
		Count    int                  `json:"count"`
		Packages []tripsearch.Package `json:"packages"`
	}{
		Count:    len(pkgs),
		Packages: pkgs,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal packages: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
