package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/letmevibethatforyou/tripsearch/catalog"
	"github.com/letmevibethatforyou/tripsearch/inmemory"
	"github.com/letmevibethatforyou/tripsearch/recent"
	"github.com/letmevibethatforyou/tripsearch/selection"
	"github.com/urfave/cli/v2"
)

func main() {
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" || os.Getenv("AWS_REGION") != "" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	app := &cli.App{
		Name:  "helpsearch",
		Usage: "Search the help center with keyboard-style navigation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Help catalog YAML; the built-in FAQ is used when empty",
				EnvVars: []string{"HELP_CATALOG"},
			},
			&cli.StringFlag{
				Name:    "recent-dir",
				Usage:   "Badger directory for recent queries",
				EnvVars: []string{"RECENT_DIR"},
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for recent queries",
				EnvVars: []string{"REDIS_URL"},
			},
			&cli.StringFlag{
				Name:    "table-name",
				Usage:   "DynamoDB table for recent queries",
				EnvVars: []string{"TABLE_NAME"},
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Run one query and print JSON instead of reading stdin",
			},
			&cli.StringSliceFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "Key to press after --query (ArrowDown, ArrowUp, Enter, Escape); repeatable",
			},
			&cli.BoolFlag{
				Name:  "list-recent",
				Usage: "Print recent queries and exit",
			},
			&cli.BoolFlag{
				Name:  "clear-recent",
				Usage: "Forget recent queries and exit",
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

	help := catalog.DefaultHelp()
	if path := strings.TrimSpace(c.String("catalog")); path != "" {
		var err error
		if help, err = catalog.LoadHelpFile(path); err != nil {
			return err
		}
	}

	searcher, err := inmemory.New(help.Items, inmemory.WithSynonyms(help.Synonyms))
	if err != nil {
		return fmt.Errorf("failed to build searcher: %w", err)
	}

	storage, closeStorage, err := openStorage(ctx, storageConfig{
		badgerDir: strings.TrimSpace(c.String("recent-dir")),
		redisURL:  strings.TrimSpace(c.String("redis-url")),
		tableName: strings.TrimSpace(c.String("table-name")),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			slog.WarnContext(ctx, "failed to close recent-query storage", "error", err)
		}
	}()

	store := recent.New(ctx, storage)

	switch {
	case c.Bool("clear-recent"):
		store.Clear(ctx)
		slog.InfoContext(ctx, "cleared recent queries")
		return nil
	case c.Bool("list-recent"):
		return printJSON(store.List())
	}

	slog.DebugContext(ctx, "help catalog loaded", "items", searcher.Size())

	s := newSession(selection.New(searcher, selection.WithRecent(store)), store, os.Stdout)

	if c.IsSet("query") {
		keys, err := parseKeys(c.StringSlice("key"))
		if err != nil {
			return err
		}
		return printJSON(s.run(ctx, c.String("query"), keys))
	}

	s.render()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if s.exec(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

func parseKeys(names []string) ([]selection.Key, error) {
	keys := make([]selection.Key, 0, len(names))
	for _, name := range names {
		key, err := selection.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", name, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
