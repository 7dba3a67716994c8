package search

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/poiesic/datascout/core"
)

// Tokens shorter than this are too generic to index or query.
const minTokenLen = 3

// tokenize extracts maximal runs of word characters (letters, digits,
// underscore) from text, lowercased, discarding runs of length < minTokenLen.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	var run strings.Builder

	flush := func() {
		if run.Len() >= minTokenLen {
			tokens = append(tokens, run.String())
		}
		run.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			run.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// invertedIndex maps each indexed token to the set of correlation keys whose
// indexed text contains it. It is built once per record snapshot and never
// mutated afterward; a new snapshot requires building a new index.
type invertedIndex struct {
	postings map[string]map[core.CorrelationKey]struct{}

	// vocabulary holds the indexed tokens in sorted order. The partial-match
	// scan walks it instead of the postings map so that scan order, match
	// reasons, and monitor callbacks are reproducible run-to-run.
	vocabulary []string
}

// buildIndex tokenizes the designated text fields of every record and builds
// the token to identifier-set index. Empty field values emit no tokens.
func buildIndex(tables []*core.TableRecord, descriptions []*core.DescriptionRecord) *invertedIndex {
	idx := &invertedIndex{
		postings: make(map[string]map[core.CorrelationKey]struct{}),
	}

	for _, table := range tables {
		key := table.Key()
		idx.add(table.Title, key)
		idx.add(table.Description, key)
		idx.add(table.Location, key)
		for _, keyword := range table.Keywords {
			idx.add(keyword, key)
		}
		for _, column := range table.Columns {
			idx.add(column.Name, key)
			idx.add(column.Title, key)
			idx.add(column.Description, key)
		}
	}

	for _, desc := range descriptions {
		key := desc.Key()
		idx.add(desc.TableName, key)
		idx.add(desc.Purpose, key)
		for _, feature := range desc.KeyFeatures {
			idx.add(feature, key)
		}
		for _, feature := range desc.JoinableFeatures {
			idx.add(feature, key)
		}
	}

	idx.vocabulary = slices.Sorted(maps.Keys(idx.postings))
	return idx
}

func (idx *invertedIndex) add(text string, key core.CorrelationKey) {
	for _, token := range tokenize(text) {
		set, ok := idx.postings[token]
		if !ok {
			set = make(map[core.CorrelationKey]struct{})
			idx.postings[token] = set
		}
		set[key] = struct{}{}
	}
}

// keysFor returns the correlation keys indexed under token in sorted order,
// or nil if the token is not in the vocabulary.
func (idx *invertedIndex) keysFor(token string) []core.CorrelationKey {
	set, ok := idx.postings[token]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(set))
}
