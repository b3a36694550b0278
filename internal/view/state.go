// Package view owns the transient per-node UI state of the graph: expand
// and tab selection, search highlight/dim, tag filters, sticky annotations
// and manual connections. All of it lives outside the dataset: a rescan
// replaces the graph but leaves this state untouched where ids survive.
package view

import (
	"sort"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

// Tab identifies a detail-panel tab.
type Tab string

const (
	TabSummary   Tab = "summary"
	TabStructure Tab = "structure"
)

// Synthetic filter tags alongside the discovered language tags.
const (
	TagDirectory = "directory"
	TagSticky    = "sticky"
)

// ViewState is the per-node UI state, keyed by node id and serializable for
// inspection. It is never persisted.
type ViewState struct {
	Dimmed      bool   `json:"dimmed,omitempty"`
	Highlighted bool   `json:"highlighted,omitempty"`
	Expanded    bool   `json:"expanded,omitempty"`
	ActiveTab   Tab    `json:"activeTab,omitempty"`
	Err         string `json:"err,omitempty"`
}

// State is the interaction state manager. All methods are pure state
// transitions on the single dispatcher thread; none of them moves nodes or
// re-runs layout.
type State struct {
	g      *graph.Graph
	states map[string]*ViewState

	stickies    []*graph.Node
	manual      []*graph.Edge
	stickyByID  map[string]*graph.Node
	connectFrom string // sticky id anchoring connect mode, "" when off

	hiddenTags    map[string]bool
	showStructure bool
}

// New creates a State bound to g.
func New(g *graph.Graph) *State {
	return &State{
		g:             g,
		states:        make(map[string]*ViewState),
		stickyByID:    make(map[string]*graph.Node),
		hiddenTags:    make(map[string]bool),
		showStructure: true,
	}
}

// Rebind points the state at a freshly rebuilt graph, e.g. after a rescan.
// Sticky nodes, manual connections and filters survive; per-node view state
// is kept so ids present in both graphs stay expanded/highlighted.
func (s *State) Rebind(g *graph.Graph) {
	s.g = g
}

// Graph returns the bound dataset graph.
func (s *State) Graph() *graph.Graph { return s.g }

// NodeState returns the view state for id, creating it on first access.
func (s *State) NodeState(id string) *ViewState {
	vs, ok := s.states[id]
	if !ok {
		vs = &ViewState{ActiveTab: TabSummary}
		s.states[id] = vs
	}
	return vs
}

// States returns the full id → view-state map.
func (s *State) States() map[string]*ViewState { return s.states }

// ToggleExpand flips the expanded flag for id. On a collapsed→expanded
// transition of a file node that has no fetched block structure, it reports
// that exactly one deep-analysis request should be issued and marks the
// node analyzing. An already-analyzing node re-requests on a fresh expand:
// responses may be arbitrarily delayed or lost, so a stuck flag must never
// block re-triggering.
func (s *State) ToggleExpand(id string) (requestDeepAnalysis bool) {
	vs := s.NodeState(id)
	vs.Expanded = !vs.Expanded
	if !vs.Expanded {
		return false
	}
	n := s.node(id)
	if n == nil || n.Kind != graph.KindFile {
		return false
	}
	if len(n.Blocks) > 0 {
		return false
	}
	n.Analyzing = true
	return true
}

// SetTab selects the active detail tab for id; selections are independent
// across nodes.
func (s *State) SetTab(id string, tab Tab) {
	s.NodeState(id).ActiveTab = tab
}

// ToggleTag flips visibility of one language tag or synthetic tag.
func (s *State) ToggleTag(tag string) {
	s.hiddenTags[tag] = !s.hiddenTags[tag]
}

// SetShowStructure toggles rendering of containment edges. It is
// independent of the tag filters and affects edges only.
func (s *State) SetShowStructure(show bool) { s.showStructure = show }

// ShowStructure reports whether containment edges are rendered.
func (s *State) ShowStructure() bool { return s.showStructure }

// HiddenTags returns the currently hidden tags, sorted.
func (s *State) HiddenTags() []string {
	var out []string
	for tag, hidden := range s.hiddenTags {
		if hidden {
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// Hidden reports whether a node is hidden by the tag filters. The root is
// never hidden.
func (s *State) Hidden(n *graph.Node) bool {
	switch n.Kind {
	case graph.KindRoot:
		return false
	case graph.KindDirectory:
		return s.hiddenTags[TagDirectory]
	case graph.KindSticky:
		return s.hiddenTags[TagSticky]
	default:
		return s.hiddenTags[n.Lang]
	}
}

// node resolves an id against the dataset graph first, then the stickies.
func (s *State) node(id string) *graph.Node {
	if s.g != nil {
		if n := s.g.Node(id); n != nil {
			return n
		}
	}
	return s.stickyByID[id]
}
