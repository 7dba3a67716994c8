package ai

import (
	"strings"

	"github.com/poiesic/datascout/core"
)

// IntentKind classifies what kind of catalog operation a query asks for.
type IntentKind int

const (
	// IntentSearch is a keyword search over the catalog.
	IntentSearch IntentKind = iota
	// IntentBrowse asks to list tables rather than search them.
	IntentBrowse
)

// String returns the intent kind name.
func (k IntentKind) String() string {
	switch k {
	case IntentBrowse:
		return "browse"
	default:
		return "search"
	}
}

// Intent is the structured reading of a natural-language query. It is
// produced by cheap local heuristics, not by the model, so it is available
// even when no AI backend is configured.
type Intent struct {
	// Keywords are the meaningful search terms left after stop words are
	// stripped.
	Keywords []string

	// ColumnName is set when the query asks for a specific column.
	ColumnName string

	// SourceType is set when the query names a data source.
	SourceType core.SourceType

	// Kind says whether the user wants to search or browse.
	Kind IntentKind
}

// stopWords are dropped during keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {},
	"for": {}, "with": {}, "about": {}, "show": {}, "me": {},
	"find": {}, "search": {}, "list": {}, "all": {},
}

var browseWords = []string{"all", "list", "show", "browse"}

// ExtractIntent derives structured search intent from a natural-language
// query using keyword heuristics.
func ExtractIntent(query string) Intent {
	lower := strings.ToLower(query)
	words := strings.Fields(lower)

	intent := Intent{Kind: IntentSearch}

	if strings.Contains(lower, "avs") {
		intent.SourceType = core.SourceTypeAVS
	} else if strings.Contains(lower, "dlvs") {
		intent.SourceType = core.SourceTypeDLVS
	}

	// "column X" or "field X" asks for a specific column
	if strings.Contains(lower, "column") || strings.Contains(lower, "field") {
		original := strings.Fields(query)
		for i, word := range original {
			w := strings.ToLower(word)
			if (w == "column" || w == "field") && i+1 < len(original) {
				intent.ColumnName = strings.Trim(original[i+1], "\":,.")
				break
			}
		}
	}

	for _, w := range browseWords {
		if containsWord(words, w) {
			intent.Kind = IntentBrowse
			break
		}
	}

	for _, word := range words {
		cleaned := strings.Trim(word, ".,!?\":;")
		if cleaned == "" || len(cleaned) <= 2 {
			continue
		}
		if _, stop := stopWords[cleaned]; stop {
			continue
		}
		intent.Keywords = append(intent.Keywords, cleaned)
	}

	return intent
}

func containsWord(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}
