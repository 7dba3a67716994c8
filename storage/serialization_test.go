package storage

import (
	"testing"

	"github.com/poiesic/datascout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRecordRoundTrip(t *testing.T) {
	record := &core.TableRecord{
		SealID:      7731,
		DatasetID:   "sales",
		Location:    "warehouse.sales.orders",
		Title:       "Customer Orders",
		Description: "All customer orders placed through the storefront",
		Keywords:    []string{"commerce", "retail"},
		Columns: []core.Column{
			{Name: "ssn", Title: "Social Security Number", Datatype: "CHAR", Required: true},
			{Name: "order_total", Datatype: "DECIMAL"},
		},
		SourceFile: "orders.yaml",
		SourceType: core.SourceTypeAVS,
	}

	decoded, err := UnmarshalTableRecord(MarshalTableRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestDescriptionRecordRoundTrip(t *testing.T) {
	record := &core.DescriptionRecord{
		TableName:        "orders",
		Purpose:          "Tracks storefront purchases",
		KeyFeatures:      []string{"order lifecycle", "payment status"},
		JoinableFeatures: []string{"customer_id"},
		SourceFile:       "orders.txt",
		SourceType:       core.SourceTypeDLVS,
	}

	decoded, err := UnmarshalDescriptionRecord(MarshalDescriptionRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
}

func TestIDRoundTrip(t *testing.T) {
	id := core.IDFromContent("table:avs:orders.yaml")
	decoded, err := UnmarshalID(MarshalID(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)
}

func TestUnmarshalTruncated(t *testing.T) {
	record := &core.TableRecord{SourceFile: "orders.yaml", SourceType: core.SourceTypeAVS}
	data := MarshalTableRecord(record)

	_, err := UnmarshalTableRecord(data[:len(data)/2])
	assert.Error(t, err)
}
