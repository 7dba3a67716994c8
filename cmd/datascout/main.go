// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/datascout"
	"github.com/poiesic/datascout/ai"
	"github.com/poiesic/datascout/core"
	"github.com/poiesic/datascout/loader"
	"github.com/poiesic/datascout/search"
)

func main() {
	app := &cli.App{
		Name:  "datascout",
		Usage: "Search and explore database table metadata",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Parse a metadata directory tree into the catalog database",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "data",
						Usage:    "Path to the metadata directory tree",
						Required: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the catalog by keywords",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					sourceFlag(),
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"m"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "suggest",
						Usage: "Print next-step guidance after the results",
					},
				},
			},
			{
				Name:      "columns",
				Usage:     "Find tables containing a column",
				ArgsUsage: "<column-name>",
				Action:    columnsCommand,
				Flags: []cli.Flag{
					dbFlag(),
					sourceFlag(),
				},
			},
			{
				Name:   "tables",
				Usage:  "List every table in the catalog",
				Action: tablesCommand,
				Flags: []cli.Flag{
					dbFlag(),
					sourceFlag(),
				},
			},
			{
				Name:      "sql",
				Usage:     "Generate SQL answering a question about the cataloged tables",
				ArgsUsage: "<question>",
				Action:    sqlCommand,
				Flags: []cli.Flag{
					dbFlag(),
					sourceFlag(),
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"m"},
						Usage:   "Maximum number of tables fed to the generator",
						Value:   5,
					},
					&cli.StringFlag{
						Name:  "chat-host",
						Usage: "Chat service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "chat-model",
						Usage:    "Chat model name",
						Required: true,
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "Re-import the metadata tree whenever it changes",
				Action: watchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "data",
						Usage:    "Path to the metadata directory tree",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "debounce",
						Usage: "Quiet period before a change triggers a reload",
						Value: 500 * time.Millisecond,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func sourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "Restrict to a data source (avs or dlvs)",
	}
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	catalog, err := datascout.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	engine, err := catalog.ImportDir(ctx, c.String("data"))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d tables and %d descriptions from %s\n",
		engine.TableCount(), engine.DescriptionCount(), c.String("data"))
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	filter, err := parseSourceFlag(c)
	if err != nil {
		return err
	}

	catalog, engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	results, err := engine.Search(query, filter, c.Int("max"))
	if err != nil {
		return err
	}

	printResults(results)
	if c.Bool("suggest") {
		fmt.Println()
		fmt.Println(ai.SuggestNextSteps(len(results)))
	}
	return nil
}

func columnsCommand(c *cli.Context) error {
	columnName := c.Args().First()
	if columnName == "" {
		return fmt.Errorf("a column name is required")
	}

	filter, err := parseSourceFlag(c)
	if err != nil {
		return err
	}

	catalog, engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	results, err := engine.SearchByColumn(columnName, filter)
	if err != nil {
		return err
	}

	printResults(results)
	return nil
}

func tablesCommand(c *cli.Context) error {
	filter, err := parseSourceFlag(c)
	if err != nil {
		return err
	}

	catalog, engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	results, err := engine.AllTables(filter)
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Printf("%s (%s)\n", result.TableTitle(), result.SourceType())
	}
	fmt.Printf("\n%d tables\n", len(results))
	return nil
}

func sqlCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	filter, err := parseSourceFlag(c)
	if err != nil {
		return err
	}

	aiConfig := ai.NewConfig(
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	catalog, err := datascout.Open(c.String("db"), datascout.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	engine, err := catalog.Engine(ctx)
	if err != nil {
		return err
	}

	results, err := engine.Search(question, filter, c.Int("max"))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no tables matched %q; nothing to generate SQL against", question)
	}

	generated, err := catalog.SQLGenerator().GenerateSQL(ctx, question, results, nil, nil)
	if err != nil {
		return fmt.Errorf("SQL generation failed: %w", err)
	}

	fmt.Println(generated.Query)
	if generated.Explanation != "" {
		fmt.Printf("\n-- %s\n", generated.Explanation)
	}
	for _, assumption := range generated.Assumptions {
		fmt.Printf("-- Assumes: %s\n", assumption)
	}
	return nil
}

func watchCommand(c *cli.Context) error {
	ctx := context.Background()
	dataDir := c.String("data")

	catalog, err := datascout.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	// Initial import so the snapshot reflects the tree before watching.
	if _, err := catalog.ImportDir(ctx, dataDir); err != nil {
		return fmt.Errorf("initial import failed: %w", err)
	}

	if err := catalog.Watch(dataDir, loader.WithDebounce(c.Duration("debounce"))); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s, press Ctrl-C to stop\n", dataDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	return nil
}

// openEngine opens the catalog and builds the engine from the stored snapshot.
// The caller owns closing the returned catalog.
func openEngine(c *cli.Context) (*datascout.Catalog, *search.Engine, error) {
	catalog, err := datascout.Open(c.String("db"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	engine, err := catalog.Engine(context.Background())
	if err != nil {
		catalog.Close()
		return nil, nil, err
	}
	return catalog, engine, nil
}

func parseSourceFlag(c *cli.Context) (core.SourceType, error) {
	value := c.String("source")
	if value == "" {
		return core.SourceTypeUnknown, nil
	}
	return core.ParseSourceType(value)
}

func printResults(results []*core.SearchResult) {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return
	}

	for i, result := range results {
		fmt.Printf("%d. %s (from %s, score: %.1f)\n", i+1, result.TableTitle(), result.SourceType(), result.Score)
		if result.Table != nil && result.Table.Location != "" {
			fmt.Printf("   Location: %s\n", result.Table.Location)
		}
		for _, reason := range result.MatchReasons {
			fmt.Printf("   - %s\n", reason)
		}
	}
	fmt.Printf("\n%d results\n", len(results))
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
