package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/letmevibethatforyou/tripsearch/recent"
	"github.com/letmevibethatforyou/tripsearch/storage/badger"
	"github.com/letmevibethatforyou/tripsearch/storage/dynamo"
	"github.com/letmevibethatforyou/tripsearch/storage/redis"
)

// storageConfig selects the recent-query backend. At most one field may
// be set; none selects process memory.
type storageConfig struct {
	badgerDir string
	redisURL  string
	tableName string
}

func noClose() error { return nil }

func openStorage(ctx context.Context, cfg storageConfig) (recent.Storage, func() error, error) {
	set := 0
	for _, v := range []string{cfg.badgerDir, cfg.redisURL, cfg.tableName} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return nil, nil, fmt.Errorf("at most one of --recent-dir, --redis-url or --table-name may be set")
	}

	switch {
	case cfg.badgerDir != "":
		slog.InfoContext(ctx, "storing recent queries in badger", "dir", cfg.badgerDir)
		s, err := badger.Open(cfg.badgerDir)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case cfg.redisURL != "":
		slog.InfoContext(ctx, "storing recent queries in redis")
		s, err := redis.New(ctx, cfg.redisURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case cfg.tableName != "":
		slog.InfoContext(ctx, "storing recent queries in DynamoDB", "table", cfg.tableName)
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return dynamo.New(dynamodb.NewFromConfig(awsCfg), cfg.tableName), noClose, nil

	default:
		return recent.NewMemoryStorage(), noClose, nil
	}
}
