package view

import (
	"strings"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

// MatchField names which field matched a search query first, in priority
// order label > symbol > summary > path.
type MatchField string

const (
	MatchLabel   MatchField = "label"
	MatchSymbol  MatchField = "symbol"
	MatchSummary MatchField = "summary"
	MatchPath    MatchField = "path"
)

// SearchResult is one ranked search hit.
type SearchResult struct {
	NodeID string     `json:"nodeId"`
	Field  MatchField `json:"field"`
}

// Search runs a case-insensitive substring match across every non-sticky
// node's label, symbol names, summary text and path. Matching nodes become
// highlighted and undimmed, non-matching nodes dimmed. An empty query
// clears both flags on every node. Results come back in graph order,
// matches first by field priority.
func (s *State) Search(query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	if query == "" {
		for _, vs := range s.states {
			vs.Dimmed = false
			vs.Highlighted = false
		}
		return nil
	}

	var results []SearchResult
	for _, n := range s.g.Nodes {
		if n.Kind == graph.KindSticky {
			continue
		}
		vs := s.NodeState(n.ID)
		field, ok := matchNode(n, query)
		vs.Highlighted = ok
		vs.Dimmed = !ok
		if ok {
			results = append(results, SearchResult{NodeID: n.ID, Field: field})
		}
	}
	return results
}

// matchNode checks fields in priority order and reports the first hit.
func matchNode(n *graph.Node, query string) (MatchField, bool) {
	if strings.Contains(strings.ToLower(n.Label), query) {
		return MatchLabel, true
	}
	for _, sym := range n.Symbols {
		if strings.Contains(strings.ToLower(sym), query) {
			return MatchSymbol, true
		}
	}
	if strings.Contains(strings.ToLower(n.Summary), query) ||
		strings.Contains(strings.ToLower(n.DetailedSummary), query) {
		return MatchSummary, true
	}
	if strings.Contains(strings.ToLower(n.Path), query) {
		return MatchPath, true
	}
	return "", false
}
