package ai

import (
	"context"

	"github.com/poiesic/datascout/core"
)

// QueryRefiner analyzes user queries against their search results and
// suggests how to sharpen them.
// Implementations must be thread-safe for concurrent use.
type QueryRefiner interface {
	// AnalyzeQuery inspects a query and the results it produced, and returns
	// refinement suggestions: a rewritten query, clarifying questions, and
	// filters worth applying. history carries prior conversation turns for
	// context; only the most recent turns are forwarded to the model.
	// Returns an error if the analysis fails.
	AnalyzeQuery(ctx context.Context, query string, results []*core.SearchResult, history []Message) (*Refinement, error)
}

// SQLGenerator writes SQL against the tables a search surfaced.
// Implementations must be thread-safe for concurrent use.
type SQLGenerator interface {
	// GenerateSQL produces a SQL query answering the user's need, using the
	// selected results as the available schema. selected holds indices into
	// results; nil selects the top three.
	// Returns an error if generation fails.
	GenerateSQL(ctx context.Context, query string, results []*core.SearchResult, history []Message, selected []int) (*GeneratedSQL, error)

	// RefineSQL rewrites an existing SQL query per the user's request, with
	// the given results as schema context.
	RefineSQL(ctx context.Context, originalSQL, request string, results []*core.SearchResult) (*RefinedSQL, error)

	// ExplainSQL returns a plain-English explanation of a SQL query.
	ExplainSQL(ctx context.Context, sql string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages QueryRefiner and SQLGenerator
// instances, ensuring they share configuration and resources appropriately.
type Provider interface {
	// QueryRefiner returns the query refinement service.
	// The returned QueryRefiner is safe for concurrent use.
	QueryRefiner() QueryRefiner

	// SQLGenerator returns the SQL generation service.
	// The returned SQLGenerator is safe for concurrent use.
	SQLGenerator() SQLGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
