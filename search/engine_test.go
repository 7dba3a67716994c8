package search

import (
	"fmt"
	"testing"

	"github.com/poiesic/datascout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(testTables(), testDescriptions())
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(testTables(), testDescriptions())
		require.NoError(t, err)
		assert.Equal(t, 2, engine.TableCount())
		assert.Equal(t, 1, engine.DescriptionCount())
	})

	t.Run("empty record set", func(t *testing.T) {
		engine, err := NewEngine(nil, nil)
		require.NoError(t, err)

		results, err := engine.Search("anything", core.SourceTypeUnknown, 10)
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = engine.AllTables(core.SourceTypeUnknown)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		engine, err := NewEngine(testTables(), nil, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})
}

func TestSearch_ExactMatch(t *testing.T) {
	engine := newTestEngine(t)

	// "ssn" appears verbatim in exactly one record and relates to no other
	// indexed token by substring, so the score is exactly the exact-match unit.
	results, err := engine.Search("ssn", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "Customer Orders", results[0].TableTitle())
	assert.Equal(t, 1.0, results[0].Score)
	assert.Contains(t, results[0].MatchReasons, "Matched keyword: 'ssn'")
}

func TestSearch_NoMatch(t *testing.T) {
	engine := newTestEngine(t)

	// No token overlap, not even partially.
	results, err := engine.Search("xyzqq123", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_PartialMatch(t *testing.T) {
	tables := []*core.TableRecord{
		{
			Title:      "Customer Orders",
			Columns:    []core.Column{{Name: "ssn", Datatype: "CHAR"}},
			SourceFile: "orders.yaml",
			SourceType: core.SourceTypeAVS,
		},
	}
	engine, err := NewEngine(tables, nil)
	require.NoError(t, err)

	// "order" is not indexed, but "orders" contains it.
	results, err := engine.Search("order", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 0.5, results[0].Score)
	assert.Equal(t, []string{"Partial match: 'order' ~ 'orders'"}, results[0].MatchReasons)
}

func TestSearch_ScoresAccumulateAcrossTokens(t *testing.T) {
	engine := newTestEngine(t)

	// "customer" and "orders" both hit the orders record exactly, plus
	// partial contributions from related vocabulary (e.g. customer_id).
	results, err := engine.Search("customer orders", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	top := results[0]
	assert.Equal(t, "Customer Orders", top.TableTitle())
	assert.GreaterOrEqual(t, top.Score, 2.0)
	assert.Contains(t, top.MatchReasons, "Matched keyword: 'customer'")
	assert.Contains(t, top.MatchReasons, "Matched keyword: 'orders'")
}

func TestSearch_RepeatedTokenAccumulatesButReasonDeduplicated(t *testing.T) {
	engine := newTestEngine(t)

	results, err := engine.Search("ssn ssn", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, 2.0, results[0].Score)
	assert.Equal(t, []string{"Matched keyword: 'ssn'"}, results[0].MatchReasons)
}

func TestSearch_SourceTypeFilter(t *testing.T) {
	engine := newTestEngine(t)

	// "warehouse" appears in both records' locations.
	unfiltered, err := engine.Search("warehouse", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.Len(t, unfiltered, 2)

	for _, filter := range []core.SourceType{core.SourceTypeAVS, core.SourceTypeDLVS} {
		results, err := engine.Search("warehouse", filter, 10)
		require.NoError(t, err)
		require.Len(t, results, 1, "filter %s", filter)
		assert.Equal(t, filter, results[0].SourceType())
	}
}

func TestSearch_InvalidFilter(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Search("warehouse", core.SourceType(42), 10)
	assert.ErrorIs(t, err, core.ErrInvalidSourceType)

	_, err = engine.SearchByColumn("ssn", core.SourceType(42))
	assert.ErrorIs(t, err, core.ErrInvalidSourceType)

	_, err = engine.AllTables(core.SourceType(42))
	assert.ErrorIs(t, err, core.ErrInvalidSourceType)
}

func TestSearch_ResultCap(t *testing.T) {
	engine := newTestEngine(t)

	for _, max := range []int{1, 2, 5} {
		results, err := engine.Search("warehouse", core.SourceTypeUnknown, max)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), max)
	}
}

func TestSearch_NonPositiveMaxResults(t *testing.T) {
	engine := newTestEngine(t)

	for _, max := range []int{0, -1} {
		results, err := engine.Search("warehouse", core.SourceTypeUnknown, max)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestSearch_DeterministicTieBreak(t *testing.T) {
	engine := newTestEngine(t)

	// Both records score identically on "warehouse"; equal scores order by
	// ascending correlation key, so "employees" precedes "orders".
	for i := 0; i < 5; i++ {
		results, err := engine.Search("warehouse", core.SourceTypeUnknown, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, core.CorrelationKey("employees"), results[0].Key())
		assert.Equal(t, core.CorrelationKey("orders"), results[1].Key())
	}
}

func TestSearch_RankedByScoreDescending(t *testing.T) {
	engine := newTestEngine(t)

	// "customer orders" strongly matches the orders record and only weakly
	// (if at all) the employees record.
	results, err := engine.Search("customer orders storefront", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	assert.Equal(t, "Customer Orders", results[0].TableTitle())
}

func TestSearch_DescriptionOnlyRecord(t *testing.T) {
	descs := []*core.DescriptionRecord{
		{
			TableName:  "legacy_billing",
			Purpose:    "Historical invoicing snapshots",
			SourceFile: "legacy_billing.txt",
			SourceType: core.SourceTypeDLVS,
		},
	}
	engine, err := NewEngine(nil, descs)
	require.NoError(t, err)

	results, err := engine.Search("invoicing", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Nil(t, results[0].Table)
	require.NotNil(t, results[0].Description)
	assert.Equal(t, "legacy_billing", results[0].TableTitle())

	// With no metadata record, the description's provenance governs filtering.
	results, err = engine.Search("invoicing", core.SourceTypeAVS, 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = engine.Search("invoicing", core.SourceTypeDLVS, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_JoinsDescriptionRecord(t *testing.T) {
	engine := newTestEngine(t)

	results, err := engine.Search("ssn", core.SourceTypeUnknown, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NotNil(t, results[0].Table)
	require.NotNil(t, results[0].Description)
	assert.Equal(t, "Tracks storefront purchases", results[0].Description.Purpose)
}

func TestSearchByColumn(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("case-insensitive substring on name", func(t *testing.T) {
		results, err := engine.SearchByColumn("SSN", core.SourceTypeUnknown)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 1.0, results[0].Score)
		assert.Equal(t, []string{"Contains column: ssn"}, results[0].MatchReasons)
	})

	t.Run("matches column title", func(t *testing.T) {
		results, err := engine.SearchByColumn("social security", core.SourceTypeUnknown)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Customer Orders", results[0].TableTitle())
	})

	t.Run("source type filter", func(t *testing.T) {
		results, err := engine.SearchByColumn("id", core.SourceTypeDLVS)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, core.SourceTypeDLVS, results[0].SourceType())
	})

	t.Run("no match", func(t *testing.T) {
		results, err := engine.SearchByColumn("nonexistent", core.SourceTypeUnknown)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchByColumn_OneResultPerTable(t *testing.T) {
	tables := []*core.TableRecord{
		{
			Title: "Payments",
			Columns: []core.Column{
				{Name: "payment_id", Datatype: "BIGINT"},
				{Name: "payment_method", Datatype: "VARCHAR"},
				{Name: "payment_status", Datatype: "VARCHAR"},
			},
			SourceFile: "payments.yaml",
			SourceType: core.SourceTypeAVS,
		},
	}
	engine, err := NewEngine(tables, nil)
	require.NoError(t, err)

	// All three columns match; the table still contributes exactly one
	// result, naming the first matching column.
	results, err := engine.SearchByColumn("payment", core.SourceTypeUnknown)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"Contains column: payment_id"}, results[0].MatchReasons)
}

func TestAllTables(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("insertion order, zero score", func(t *testing.T) {
		results, err := engine.AllTables(core.SourceTypeUnknown)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "Customer Orders", results[0].TableTitle())
		assert.Equal(t, "Employees", results[1].TableTitle())
		for _, result := range results {
			assert.Equal(t, 0.0, result.Score)
			assert.Equal(t, []string{"All tables"}, result.MatchReasons)
		}
	})

	t.Run("filtered", func(t *testing.T) {
		results, err := engine.AllTables(core.SourceTypeAVS)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, core.SourceTypeAVS, results[0].SourceType())
	})
}

// recordingMonitor captures callback activity for assertions.
type recordingMonitor struct {
	started    string
	tokens     []string
	exactHits  int
	partialHit int
	candidates int
	finished   []*core.SearchResult
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(query string)    { m.started = query }
func (m *recordingMonitor) AfterTokenize(tokens []string) { m.tokens = tokens }
func (m *recordingMonitor) ExactHit(_ string, _ []core.CorrelationKey) { m.exactHits++ }
func (m *recordingMonitor) PartialHit(_, _ string, _ []core.CorrelationKey) { m.partialHit++ }
func (m *recordingMonitor) AfterScoring(candidates int) { m.candidates = candidates }
func (m *recordingMonitor) Finish(results []*core.SearchResult) { m.finished = results }

func TestSearchWithMonitor(t *testing.T) {
	engine := newTestEngine(t)

	monitor := &recordingMonitor{}
	results, err := engine.SearchWithMonitor("customer ssn", core.SourceTypeUnknown, 10, monitor)
	require.NoError(t, err)

	assert.Equal(t, "customer ssn", monitor.started)
	assert.Equal(t, []string{"customer", "ssn"}, monitor.tokens)
	assert.Equal(t, 2, monitor.exactHits)
	assert.Positive(t, monitor.candidates)
	assert.Equal(t, results, monitor.finished)
}

func TestSearch_StableUnderRepetition(t *testing.T) {
	engine := newTestEngine(t)

	first, err := engine.Search("customer orders warehouse", core.SourceTypeUnknown, 10)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := engine.Search("customer orders warehouse", core.SourceTypeUnknown, 10)
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Key(), again[j].Key(), "iteration %d position %d", i, j)
			assert.Equal(t, first[j].Score, again[j].Score)
			assert.Equal(t, first[j].MatchReasons, again[j].MatchReasons)
		}
	}
}

func ExampleEngine_Search() {
	tables := []*core.TableRecord{
		{
			Title:      "Customer Orders",
			Columns:    []core.Column{{Name: "ssn", Datatype: "CHAR"}},
			SourceFile: "orders.yaml",
			SourceType: core.SourceTypeAVS,
		},
	}
	engine, _ := NewEngine(tables, nil)

	results, _ := engine.Search("ssn", core.SourceTypeUnknown, 10)
	for _, result := range results {
		fmt.Printf("%s (%.1f): %s\n", result.TableTitle(), result.Score, result.MatchReasons[0])
	}
	// Output: Customer Orders (1.0): Matched keyword: 'ssn'
}
