// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.QueryRefiner,
// ai.SQLGenerator, and ai.Provider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	refinement, err := mockProvider.QueryRefiner().AnalyzeQuery(ctx, "orders", results, nil)
//
//	// Custom behavior injection
//	mockGen := mock.NewMockSQLGenerator()
//	mockGen.ExplainSQLFunc = func(ctx context.Context, sql string) (string, error) {
//	    return "selects everything", nil
//	}
//
//	// Check call counts
//	count := mockGen.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockQueryRefiner: Echoes the query with a canned refinement
//   - MockSQLGenerator: Emits a trivial SELECT over the first result's table
//   - MockProvider: Aggregates mock refiner and generator
package mock
