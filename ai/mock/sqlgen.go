package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/datascout/ai"
	"github.com/poiesic/datascout/core"
)

// MockSQLGenerator is a test double for ai.SQLGenerator.
// It allows custom behavior injection via function fields.
type MockSQLGenerator struct {
	// GenerateSQLFunc is called by GenerateSQL if set.
	GenerateSQLFunc func(ctx context.Context, query string, results []*core.SearchResult, history []ai.Message, selected []int) (*ai.GeneratedSQL, error)

	// RefineSQLFunc is called by RefineSQL if set.
	RefineSQLFunc func(ctx context.Context, originalSQL, request string, results []*core.SearchResult) (*ai.RefinedSQL, error)

	// ExplainSQLFunc is called by ExplainSQL if set.
	ExplainSQLFunc func(ctx context.Context, sql string) (string, error)

	callCount int
}

// NewMockSQLGenerator creates a mock SQL generator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockSQLGenerator() *MockSQLGenerator {
	return &MockSQLGenerator{}
}

// GenerateSQL returns a trivial SELECT over the first result's table, or
// delegates to GenerateSQLFunc when set.
func (m *MockSQLGenerator) GenerateSQL(ctx context.Context, query string, results []*core.SearchResult, history []ai.Message, selected []int) (*ai.GeneratedSQL, error) {
	m.callCount++

	if m.GenerateSQLFunc != nil {
		return m.GenerateSQLFunc(ctx, query, results, history, selected)
	}

	generated := &ai.GeneratedSQL{
		Query:       "SELECT 1",
		Explanation: "mock query",
	}
	if len(results) > 0 && results[0].Table != nil {
		table := results[0].Table.Location
		generated.Query = fmt.Sprintf("SELECT * FROM %s", table)
		generated.TablesUsed = []string{table}
	}
	return generated, nil
}

// RefineSQL echoes the original SQL back, or delegates to RefineSQLFunc.
func (m *MockSQLGenerator) RefineSQL(ctx context.Context, originalSQL, request string, results []*core.SearchResult) (*ai.RefinedSQL, error) {
	m.callCount++

	if m.RefineSQLFunc != nil {
		return m.RefineSQLFunc(ctx, originalSQL, request, results)
	}

	return &ai.RefinedSQL{
		Query:       originalSQL,
		Explanation: "mock refinement: no changes",
	}, nil
}

// ExplainSQL returns a canned explanation, or delegates to ExplainSQLFunc.
func (m *MockSQLGenerator) ExplainSQL(ctx context.Context, sql string) (string, error) {
	m.callCount++

	if m.ExplainSQLFunc != nil {
		return m.ExplainSQLFunc(ctx, sql)
	}
	return "mock explanation", nil
}

// CallCount returns the total number of calls across all methods.
func (m *MockSQLGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockSQLGenerator) Reset() {
	m.callCount = 0
	m.GenerateSQLFunc = nil
	m.RefineSQLFunc = nil
	m.ExplainSQLFunc = nil
}
