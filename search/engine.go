package search

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/datascout/core"
)

// Score contributions. Exact vocabulary hits outrank partial substring hits;
// both accumulate additively across query tokens.
const (
	exactMatchScore   = 1.0
	partialMatchScore = 0.5
	columnMatchScore  = 1.0
)

// Engine answers free-text queries over a static snapshot of catalog records.
// It is immutable after construction, so a single instance may serve
// concurrent readers without locking. Loading a new snapshot means building a
// new Engine and swapping the reference.
type Engine struct {
	tables      []*core.TableRecord // insertion order, for AllTables and column scans
	tablesByKey map[core.CorrelationKey]*core.TableRecord
	descsByKey  map[core.CorrelationKey]*core.DescriptionRecord
	index       *invertedIndex
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine builds an engine over the given records. The records are expected
// to have passed loader validation; the engine never sees malformed shapes.
// An empty record set is valid and yields an engine whose every query returns
// an empty result list.
func NewEngine(tables []*core.TableRecord, descriptions []*core.DescriptionRecord, opts ...Option) (*Engine, error) {
	e := &Engine{
		tables:      tables,
		tablesByKey: make(map[core.CorrelationKey]*core.TableRecord, len(tables)),
		descsByKey:  make(map[core.CorrelationKey]*core.DescriptionRecord, len(descriptions)),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	for _, table := range tables {
		e.tablesByKey[table.Key()] = table
	}
	for _, desc := range descriptions {
		e.descsByKey[desc.Key()] = desc
	}
	e.index = buildIndex(tables, descriptions)

	return e, nil
}

// TableCount returns the number of table metadata records in the snapshot.
func (e *Engine) TableCount() int {
	return len(e.tables)
}

// DescriptionCount returns the number of description records in the snapshot.
func (e *Engine) DescriptionCount() int {
	return len(e.descsByKey)
}

// Search scores every record against the query and returns up to maxResults
// results ranked by relevance. A filter of core.SourceTypeUnknown keeps all
// provenances; maxResults <= 0 yields an empty list.
func (e *Engine) Search(query string, filter core.SourceType, maxResults int) ([]*core.SearchResult, error) {
	return e.SearchWithMonitor(query, filter, maxResults, nil)
}

// SearchWithMonitor is Search with observation hooks. The monitor receives
// callbacks at each stage of the query.
func (e *Engine) SearchWithMonitor(query string, filter core.SourceType, maxResults int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if err := checkFilter(filter); err != nil {
		return nil, err
	}

	monitor.Start(query)

	if maxResults <= 0 {
		monitor.Finish(nil)
		return []*core.SearchResult{}, nil
	}

	tokens := tokenize(query)
	monitor.AfterTokenize(tokens)

	candidates := e.score(tokens, monitor)
	monitor.AfterScoring(len(candidates))

	results := e.assemble(candidates, filter)
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	monitor.Finish(results)
	return results, nil
}

// candidate accumulates a record's score and match reasons during a query.
type candidate struct {
	score   float64
	reasons []string
	seen    map[string]struct{}
}

func (c *candidate) bump(points float64, reason string) {
	c.score += points
	if _, dup := c.seen[reason]; dup {
		return
	}
	c.seen[reason] = struct{}{}
	c.reasons = append(c.reasons, reason)
}

// score runs the exact and partial match rules for every query token.
// The partial rule is a scan over the full vocabulary per token, which is
// fine at catalog scale; a trie or n-gram index could replace it without
// changing the scoring contract.
func (e *Engine) score(tokens []string, monitor SearchMonitor) map[core.CorrelationKey]*candidate {
	candidates := make(map[core.CorrelationKey]*candidate)

	bump := func(key core.CorrelationKey, points float64, reason string) {
		cand, ok := candidates[key]
		if !ok {
			cand = &candidate{seen: make(map[string]struct{})}
			candidates[key] = cand
		}
		cand.bump(points, reason)
	}

	for _, token := range tokens {
		if keys := e.index.keysFor(token); keys != nil {
			monitor.ExactHit(token, keys)
			reason := fmt.Sprintf("Matched keyword: '%s'", token)
			for _, key := range keys {
				bump(key, exactMatchScore, reason)
			}
		}

		for _, indexed := range e.index.vocabulary {
			if indexed == token {
				continue // already credited as an exact match
			}
			if !strings.Contains(indexed, token) && !strings.Contains(token, indexed) {
				continue
			}
			keys := e.index.keysFor(indexed)
			monitor.PartialHit(token, indexed, keys)
			reason := fmt.Sprintf("Partial match: '%s' ~ '%s'", token, indexed)
			for _, key := range keys {
				bump(key, partialMatchScore, reason)
			}
		}
	}

	return candidates
}

// assemble joins candidates back to their records, applies the source filter,
// and orders by score descending. Equal scores break ties by ascending
// correlation key so rankings are deterministic.
func (e *Engine) assemble(candidates map[core.CorrelationKey]*candidate, filter core.SourceType) []*core.SearchResult {
	results := make([]*core.SearchResult, 0, len(candidates))

	for key, cand := range candidates {
		table := e.tablesByKey[key]
		desc := e.descsByKey[key]
		if table == nil && desc == nil {
			// Structurally impossible when the index was built from this
			// snapshot; skip rather than crash.
			e.logger.Warn("indexed identifier missing from record store", "key", key)
			continue
		}

		result := &core.SearchResult{
			Table:        table,
			Description:  desc,
			Score:        cand.score,
			MatchReasons: cand.reasons,
		}
		if filter != core.SourceTypeUnknown && result.SourceType() != filter {
			continue
		}
		results = append(results, result)
	}

	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Key(), b.Key())
	})

	return results
}

// SearchByColumn returns the tables having a column whose name or title
// contains the given substring, case-insensitively. Each matching table
// contributes exactly one result with a fixed score; the first matching
// column per table names the reason.
func (e *Engine) SearchByColumn(columnName string, filter core.SourceType) ([]*core.SearchResult, error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}

	needle := strings.ToLower(columnName)
	results := make([]*core.SearchResult, 0)

	for _, table := range e.tables {
		if filter != core.SourceTypeUnknown && table.SourceType != filter {
			continue
		}
		for _, column := range table.Columns {
			if !strings.Contains(strings.ToLower(column.Name), needle) &&
				!strings.Contains(strings.ToLower(column.Title), needle) {
				continue
			}
			results = append(results, &core.SearchResult{
				Table:        table,
				Description:  e.descsByKey[table.Key()],
				Score:        columnMatchScore,
				MatchReasons: []string{fmt.Sprintf("Contains column: %s", column.Name)},
			})
			break // one result per table even when several columns match
		}
	}

	return results, nil
}

// AllTables returns every table record joined with its description, in
// insertion order, with no ranking applied.
func (e *Engine) AllTables(filter core.SourceType) ([]*core.SearchResult, error) {
	if err := checkFilter(filter); err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, 0, len(e.tables))
	for _, table := range e.tables {
		if filter != core.SourceTypeUnknown && table.SourceType != filter {
			continue
		}
		results = append(results, &core.SearchResult{
			Table:        table,
			Description:  e.descsByKey[table.Key()],
			Score:        0.0,
			MatchReasons: []string{"All tables"},
		})
	}

	return results, nil
}

// checkFilter rejects filter values outside the closed enumeration.
// SourceTypeUnknown is allowed and means "no filter".
func checkFilter(filter core.SourceType) error {
	if filter == core.SourceTypeUnknown || filter.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %d", core.ErrInvalidSourceType, filter)
}
