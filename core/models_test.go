package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "orders.yaml",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "a much longer correlation identifier that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("orders")
	id2 := IDFromContent("customers")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestKeyForFile(t *testing.T) {
	tests := []struct {
		name string
		file string
		want CorrelationKey
	}{
		{name: "yaml suffix", file: "orders.yaml", want: "orders"},
		{name: "txt suffix", file: "orders.txt", want: "orders"},
		{name: "no suffix", file: "orders", want: "orders"},
		{name: "dotted name keeps earlier dots", file: "sales.daily.yaml", want: "sales.daily"},
		{name: "empty", file: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyForFile(tt.file); got != tt.want {
				t.Errorf("KeyForFile(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestCorrelation_TableAndDescriptionShareKey(t *testing.T) {
	table := &TableRecord{SourceFile: "orders.yaml", SourceType: SourceTypeAVS}
	desc := &DescriptionRecord{SourceFile: "orders.txt", SourceType: SourceTypeAVS}

	if table.Key() != desc.Key() {
		t.Errorf("correlation keys differ: %q vs %q", table.Key(), desc.Key())
	}
}

func TestSourceType_String(t *testing.T) {
	tests := []struct {
		st   SourceType
		want string
	}{
		{SourceTypeAVS, "avs"},
		{SourceTypeDLVS, "dlvs"},
		{SourceTypeUnknown, "unknown"},
		{SourceType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("SourceType(%d).String() = %q, want %q", tt.st, got, tt.want)
		}
	}
}

func TestParseSourceType(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    SourceType
		wantErr bool
	}{
		{name: "avs", value: "avs", want: SourceTypeAVS},
		{name: "dlvs", value: "dlvs", want: SourceTypeDLVS},
		{name: "mixed case", value: "AVS", want: SourceTypeAVS},
		{name: "padded", value: " dlvs ", want: SourceTypeDLVS},
		{name: "empty means no filter", value: "", want: SourceTypeUnknown},
		{name: "unrecognized", value: "warehouse", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSourceType(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSourceType(%q) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSourceType(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("ParseSourceType(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSearchResult_TableTitle(t *testing.T) {
	tests := []struct {
		name   string
		result SearchResult
		want   string
	}{
		{
			name: "metadata title wins",
			result: SearchResult{
				Table:       &TableRecord{Title: "Customer Orders"},
				Description: &DescriptionRecord{TableName: "orders"},
			},
			want: "Customer Orders",
		},
		{
			name: "description name when no metadata",
			result: SearchResult{
				Description: &DescriptionRecord{TableName: "orders"},
			},
			want: "orders",
		},
		{
			name:   "unknown when neither resolves",
			result: SearchResult{},
			want:   "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.TableTitle(); got != tt.want {
				t.Errorf("TableTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchResult_SourceType(t *testing.T) {
	tests := []struct {
		name   string
		result SearchResult
		want   SourceType
	}{
		{
			name: "metadata governs",
			result: SearchResult{
				Table:       &TableRecord{SourceType: SourceTypeAVS},
				Description: &DescriptionRecord{SourceType: SourceTypeDLVS},
			},
			want: SourceTypeAVS,
		},
		{
			name: "description when no metadata",
			result: SearchResult{
				Description: &DescriptionRecord{SourceType: SourceTypeDLVS},
			},
			want: SourceTypeDLVS,
		},
		{
			name:   "unknown when neither resolves",
			result: SearchResult{},
			want:   SourceTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.SourceType(); got != tt.want {
				t.Errorf("SourceType() = %v, want %v", got, tt.want)
			}
		})
	}
}
