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


package datascout

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/poiesic/datascout/ai"
	"github.com/poiesic/datascout/ai/openai"
	"github.com/poiesic/datascout/loader"
	"github.com/poiesic/datascout/search"
	"github.com/poiesic/datascout/storage"
	"github.com/poiesic/datascout/storage/badger"
)

// Catalog is the top-level handle on a datascout installation: the persisted
// record snapshot, the in-memory search engine built from it, and the AI
// services.
//
// The engine is an immutable snapshot swapped wholesale on reload, so reads
// never block behind an import.
type Catalog struct {
	backend  *badger.Backend
	repo     storage.CatalogRepository
	provider ai.Provider
	engine   atomic.Pointer[search.Engine]
	watcher  *loader.Watcher
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the configuration used to build the default AI provider.
func WithAIConfig(cfg *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider supplies a ready-made AI provider instead of building one from
// config. Used by tests to inject mocks.
func WithProvider(provider ai.Provider) CatalogOption {
	return func(o *catalogOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps the record snapshot in memory instead of on disk.
func WithInMemoryStorage() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// Open opens (or creates) a catalog database at filePath.
func Open(filePath string, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Catalog{
		backend:  backend,
		repo:     repo,
		provider: provider,
		logger:   slog.Default().With("component", "catalog"),
	}, nil
}

// Close stops the watcher if running and releases every resource.
func (c *Catalog) Close() error {
	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Error("error stopping watcher", "err", err)
		}
	}
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}
	if err := c.repo.Close(); err != nil {
		c.logger.Error("error closing catalog repository", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Repository returns the persisted snapshot store.
func (c *Catalog) Repository() storage.CatalogRepository {
	return c.repo
}

// QueryRefiner returns the query refinement service.
func (c *Catalog) QueryRefiner() ai.QueryRefiner {
	return c.provider.QueryRefiner()
}

// SQLGenerator returns the SQL generation service.
func (c *Catalog) SQLGenerator() ai.SQLGenerator {
	return c.provider.SQLGenerator()
}

// ImportDir parses the metadata tree rooted at dataDir, replaces the stored
// snapshot with the result, and rebuilds the engine.
func (c *Catalog) ImportDir(ctx context.Context, dataDir string, opts ...loader.Option) (*search.Engine, error) {
	l, err := loader.New(dataDir, opts...)
	if err != nil {
		return nil, err
	}
	defer l.Release()

	tables, descriptions, err := l.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.repo.ReplaceAll(ctx, tables, descriptions); err != nil {
		return nil, err
	}

	engine, err := search.NewEngine(tables, descriptions)
	if err != nil {
		return nil, err
	}
	c.engine.Store(engine)
	return engine, nil
}

// Engine returns the current search engine, building it from the stored
// snapshot on first use.
func (c *Catalog) Engine(ctx context.Context) (*search.Engine, error) {
	if engine := c.engine.Load(); engine != nil {
		return engine, nil
	}
	return c.RebuildEngine(ctx)
}

// RebuildEngine constructs a fresh engine from the stored snapshot and swaps
// it in. Searches running against the previous engine finish undisturbed.
func (c *Catalog) RebuildEngine(ctx context.Context) (*search.Engine, error) {
	tables, err := c.repo.TableRecords(ctx)
	if err != nil {
		return nil, err
	}
	descriptions, err := c.repo.DescriptionRecords(ctx)
	if err != nil {
		return nil, err
	}

	engine, err := search.NewEngine(tables, descriptions)
	if err != nil {
		return nil, err
	}
	c.engine.Store(engine)
	return engine, nil
}

// Watch re-imports dataDir whenever its metadata tree changes. Only one
// watcher per catalog; calling Watch again replaces the previous one.
func (c *Catalog) Watch(dataDir string, opts ...loader.WatcherOption) error {
	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			return err
		}
	}

	watcher, err := loader.NewWatcher(dataDir, func() {
		if _, err := c.ImportDir(context.Background(), dataDir); err != nil {
			c.logger.Error("reload failed", "dir", dataDir, "err", err)
			return
		}
		c.logger.Info("catalog reloaded", "dir", dataDir)
	}, opts...)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	c.watcher = watcher
	return nil
}
