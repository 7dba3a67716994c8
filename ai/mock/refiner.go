package mock

import (
	"context"

	"github.com/poiesic/datascout/ai"
	"github.com/poiesic/datascout/core"
)

// MockQueryRefiner is a test double for ai.QueryRefiner.
// It allows custom behavior injection via function fields.
type MockQueryRefiner struct {
	// AnalyzeQueryFunc is called by AnalyzeQuery if set.
	// If nil, uses a simple canned refinement.
	AnalyzeQueryFunc func(ctx context.Context, query string, results []*core.SearchResult, history []ai.Message) (*ai.Refinement, error)

	callCount int
}

// NewMockQueryRefiner creates a mock query refiner with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockRefiner().
func NewMockQueryRefiner() *MockQueryRefiner {
	return &MockQueryRefiner{}
}

// AnalyzeQuery returns a canned refinement echoing the query, or delegates to
// AnalyzeQueryFunc when set.
func (m *MockQueryRefiner) AnalyzeQuery(ctx context.Context, query string, results []*core.SearchResult, history []ai.Message) (*ai.Refinement, error) {
	m.callCount++

	if m.AnalyzeQueryFunc != nil {
		return m.AnalyzeQueryFunc(ctx, query, results, history)
	}

	refinement := &ai.Refinement{
		OriginalQuery:    query,
		SuggestedFilters: map[string]string{},
		Reasoning:        "mock refinement",
	}
	if len(results) == 0 {
		refinement.ClarifyingQuestions = []string{"What data source should be searched?"}
	}
	return refinement, nil
}

// CallCount returns the number of times AnalyzeQuery was called.
func (m *MockQueryRefiner) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockQueryRefiner) Reset() {
	m.callCount = 0
	m.AnalyzeQueryFunc = nil
}
