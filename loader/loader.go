package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/datascout/core"
)

// Directory layout under the data root, one subtree per source type:
//
//	<root>/avs/extracted_metadata/*.yaml
//	<root>/avs/extracted_metadata_desc/*.txt
//	<root>/dlvs/extracted_metadata/*.yaml
//	<root>/dlvs/extracted_metadata_desc/*.txt
const (
	metadataDir    = "extracted_metadata"
	descriptionDir = "extracted_metadata_desc"
)

var sourceTypes = []core.SourceType{core.SourceTypeAVS, core.SourceTypeDLVS}

// Loader reads table metadata and description records from a data directory
// tree. Malformed files are logged and skipped; they never surface to callers
// as records.
type Loader struct {
	dataDir string
	pool    *ants.Pool
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader) error

// WithPoolSize sets the worker pool size for concurrent file parsing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		if l.pool != nil {
			l.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// New creates a loader rooted at dataDir.
func New(dataDir string, opts ...Option) (*Loader, error) {
	if dataDir == "" {
		return nil, ErrDataDirRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		dataDir: dataDir,
		pool:    pool,
		logger:  slog.Default().With("component", "loader"),
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}

	return l, nil
}

// Release releases the worker pool.
// The loader should not be used after calling Release.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

// LoadAll reads every metadata and description file under the data root.
// Files parse concurrently; record order follows the sorted file listing so
// repeated loads of the same tree produce the same sequence.
func (l *Loader) LoadAll(ctx context.Context) ([]*core.TableRecord, []*core.DescriptionRecord, error) {
	var tables []*core.TableRecord
	var descriptions []*core.DescriptionRecord

	for _, sourceType := range sourceTypes {
		sourceRoot := filepath.Join(l.dataDir, sourceType.String())

		loaded, err := loadFiles(ctx, l, filepath.Join(sourceRoot, metadataDir), ".yaml",
			func(path string) (*core.TableRecord, error) {
				return l.parseTableFile(path, sourceType)
			})
		if err != nil {
			return nil, nil, err
		}
		tables = append(tables, loaded...)

		descs, err := loadFiles(ctx, l, filepath.Join(sourceRoot, descriptionDir), ".txt",
			func(path string) (*core.DescriptionRecord, error) {
				return l.parseDescriptionFile(path, sourceType)
			})
		if err != nil {
			return nil, nil, err
		}
		descriptions = append(descriptions, descs...)
	}

	l.logger.Info("loaded catalog records",
		"tables", len(tables), "descriptions", len(descriptions))
	return tables, descriptions, nil
}

// loadFiles parses every file with the given extension in dir using the pool.
// A missing directory is not an error; a file that fails to parse is logged
// and skipped. Results keep the sorted listing order of their source files.
func loadFiles[T any](ctx context.Context, l *Loader, dir, ext string, parse func(path string) (*T, error)) ([]*T, error) {
	paths, err := listFiles(dir, ext)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed := make([]*T, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		submitErr := l.pool.Submit(func() {
			defer wg.Done()
			record, err := parse(path)
			if err != nil {
				l.logger.Warn("skipping malformed file", "path", path, "err", err)
				return
			}
			parsed[i] = record
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, submitErr
		}
	}
	wg.Wait()

	records := make([]*T, 0, len(parsed))
	for _, record := range parsed {
		if record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

// listFiles returns the sorted paths of dir's entries with the extension.
func listFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
