package search

import (
	"github.com/poiesic/datascout/core"
)

// SearchMonitor provides hooks to observe the query process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterTokenize(tokens []string)
	ExactHit(token string, keys []core.CorrelationKey)
	PartialHit(queryToken, indexedToken string, keys []core.CorrelationKey)
	AfterScoring(candidates int)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                         {}
func (n *noopMonitor) AfterTokenize(_ []string)                               {}
func (n *noopMonitor) ExactHit(_ string, _ []core.CorrelationKey)             {}
func (n *noopMonitor) PartialHit(_ string, _ string, _ []core.CorrelationKey) {}
func (n *noopMonitor) AfterScoring(_ int)                                     {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                          {}
