package search

import (
	"testing"

	"github.com/poiesic/datascout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple words",
			text: "Customer Orders",
			want: []string{"customer", "orders"},
		},
		{
			name: "short tokens dropped",
			text: "id of the ssn db",
			want: []string{"the", "ssn"},
		},
		{
			name: "underscores are word characters",
			text: "order_id customer_ssn",
			want: []string{"order_id", "customer_ssn"},
		},
		{
			name: "punctuation splits runs",
			text: "warehouse.sales.orders",
			want: []string{"warehouse", "sales", "orders"},
		},
		{
			name: "digits kept",
			text: "xyz123 q4",
			want: []string{"xyz123"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "only short runs",
			text: "a b cd",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.text))
		})
	}
}

func testTables() []*core.TableRecord {
	return []*core.TableRecord{
		{
			DatasetID:   "sales",
			Location:    "warehouse.sales.orders",
			Title:       "Customer Orders",
			Description: "All customer orders placed through the storefront",
			Keywords:    []string{"commerce", "retail"},
			Columns: []core.Column{
				{Name: "ssn", Title: "Social Security Number", Datatype: "CHAR"},
				{Name: "order_total", Title: "Order Total", Description: "Total in cents", Datatype: "BIGINT"},
			},
			SourceFile: "orders.yaml",
			SourceType: core.SourceTypeAVS,
		},
		{
			DatasetID:  "hr",
			Location:   "warehouse.hr.employees",
			Title:      "Employees",
			Columns: []core.Column{
				{Name: "employee_id", Title: "Employee ID", Datatype: "BIGINT"},
			},
			SourceFile: "employees.yaml",
			SourceType: core.SourceTypeDLVS,
		},
	}
}

func testDescriptions() []*core.DescriptionRecord {
	return []*core.DescriptionRecord{
		{
			TableName:        "orders",
			Purpose:          "Tracks storefront purchases",
			KeyFeatures:      []string{"order lifecycle", "payment status"},
			JoinableFeatures: []string{"customer_id"},
			SourceFile:       "orders.txt",
			SourceType:       core.SourceTypeAVS,
		},
	}
}

func TestBuildIndex_FieldCoverage(t *testing.T) {
	idx := buildIndex(testTables(), testDescriptions())

	ordersKey := core.CorrelationKey("orders")

	// Every designated field of the table record feeds the index.
	for _, token := range []string{
		"customer",  // title
		"storefront", // description
		"warehouse", // location
		"commerce",  // keyword
		"ssn",       // column name
		"social",    // column title
		"cents",     // column description
	} {
		keys := idx.keysFor(token)
		require.NotNil(t, keys, "token %q missing from index", token)
		assert.Contains(t, keys, ordersKey, "token %q", token)
	}

	// Description record fields as well.
	for _, token := range []string{
		"purchases",   // purpose
		"lifecycle",   // key feature
		"customer_id", // joinable feature
	} {
		keys := idx.keysFor(token)
		require.NotNil(t, keys, "token %q missing from index", token)
		assert.Contains(t, keys, ordersKey, "token %q", token)
	}

	// Both record kinds land under the same correlation key.
	assert.Contains(t, idx.keysFor("orders"), ordersKey)
}

func TestBuildIndex_Idempotent(t *testing.T) {
	idx1 := buildIndex(testTables(), testDescriptions())
	idx2 := buildIndex(testTables(), testDescriptions())

	require.Equal(t, idx1.vocabulary, idx2.vocabulary)
	for _, token := range idx1.vocabulary {
		assert.Equal(t, idx1.keysFor(token), idx2.keysFor(token), "token %q", token)
	}
}

func TestBuildIndex_EmptyRecordSet(t *testing.T) {
	idx := buildIndex(nil, nil)
	assert.Empty(t, idx.vocabulary)
	assert.Nil(t, idx.keysFor("anything"))
}

func TestBuildIndex_EmptyFieldsSkipped(t *testing.T) {
	tables := []*core.TableRecord{
		{
			SourceFile: "bare.yaml",
			SourceType: core.SourceTypeAVS,
		},
	}
	idx := buildIndex(tables, nil)
	assert.Empty(t, idx.vocabulary)
}

func TestBuildIndex_VocabularySorted(t *testing.T) {
	idx := buildIndex(testTables(), testDescriptions())
	for i := 1; i < len(idx.vocabulary); i++ {
		assert.Less(t, idx.vocabulary[i-1], idx.vocabulary[i])
	}
}
