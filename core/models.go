package core

import (
	"encoding/binary"
	"path/filepath"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored catalog entities.
// It is generated using content-based hashing of the record's source file.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceType identifies the provenance of a catalog record.
type SourceType int

const (
	// SourceTypeUnknown is the zero value. As a filter argument it means "no filter";
	// on a SearchResult it means neither record resolved a provenance.
	SourceTypeUnknown SourceType = iota
	// SourceTypeAVS marks records loaded from the AVS source tree.
	SourceTypeAVS
	// SourceTypeDLVS marks records loaded from the DLVS source tree.
	SourceTypeDLVS
)

// String returns the lowercase name used in source directories and filters.
func (s SourceType) String() string {
	switch s {
	case SourceTypeAVS:
		return "avs"
	case SourceTypeDLVS:
		return "dlvs"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the two closed enumeration values.
func (s SourceType) Valid() bool {
	return s == SourceTypeAVS || s == SourceTypeDLVS
}

// ParseSourceType converts a string into a SourceType.
// The empty string parses to SourceTypeUnknown (no filter).
func ParseSourceType(value string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return SourceTypeUnknown, nil
	case "avs":
		return SourceTypeAVS, nil
	case "dlvs":
		return SourceTypeDLVS, nil
	default:
		return SourceTypeUnknown, ErrInvalidSourceType
	}
}

// CorrelationKey links a TableRecord to its DescriptionRecord. Both record kinds
// describe the same physical table when their source file names match after the
// file-type suffix is stripped ("orders.yaml" and "orders.txt" both key to "orders").
type CorrelationKey string

// KeyForFile derives the correlation key from a source file name.
func KeyForFile(sourceFile string) CorrelationKey {
	return CorrelationKey(strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile)))
}

// Column describes a single column of a catalog table.
// A Column has no lifecycle of its own; it is owned by its parent TableRecord.
type Column struct {
	Name        string
	Title       string
	Description string
	Datatype    string // free-form, "Unknown" when the source file carries none
	Required    bool
}

// TableRecord holds the rich metadata parsed from a YAML catalog file.
// Records are immutable once constructed.
type TableRecord struct {
	SealID      int64 // opaque upstream identifier, 0 when the source file carries none
	DatasetID   string
	Location    string // physical path or table name
	Title       string
	Description string
	Keywords    []string
	Columns     []Column
	SourceFile  string // file name, correlates with a DescriptionRecord
	SourceType  SourceType
}

// Key returns the correlation key for this record.
func (t *TableRecord) Key() CorrelationKey {
	return KeyForFile(t.SourceFile)
}

// DescriptionRecord holds the free-text summary parsed from a TXT description file.
// Records are immutable once constructed.
type DescriptionRecord struct {
	TableName        string
	Purpose          string
	KeyFeatures      []string
	JoinableFeatures []string
	SourceFile       string
	SourceType       SourceType
}

// Key returns the correlation key for this record.
func (d *DescriptionRecord) Key() CorrelationKey {
	return KeyForFile(d.SourceFile)
}

// SearchResult pairs a table's metadata and description records with the
// relevance score and the reasons the table matched. At least one of Table
// or Description is non-nil. Results are views created per query and owned
// by the caller.
type SearchResult struct {
	Table        *TableRecord
	Description  *DescriptionRecord
	Score        float64
	MatchReasons []string
}

// TableTitle returns the best available display title.
func (r *SearchResult) TableTitle() string {
	if r.Table != nil {
		return r.Table.Title
	}
	if r.Description != nil {
		return r.Description.TableName
	}
	return "Unknown"
}

// SourceType returns the provenance of the result, preferring the metadata record.
func (r *SearchResult) SourceType() SourceType {
	if r.Table != nil {
		return r.Table.SourceType
	}
	if r.Description != nil {
		return r.Description.SourceType
	}
	return SourceTypeUnknown
}

// Key returns the correlation key of whichever record is present.
func (r *SearchResult) Key() CorrelationKey {
	if r.Table != nil {
		return r.Table.Key()
	}
	if r.Description != nil {
		return r.Description.Key()
	}
	return ""
}
