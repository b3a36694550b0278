package host

import (
	"github.com/codeatlas-dev/codeatlas/internal/graph"
	"github.com/codeatlas-dev/codeatlas/internal/view"
)

// Snapshot is the full renderable state of a session: positioned dataset
// nodes merged with sticky nodes, all edges including manual connections,
// and the per-node view state.
type Snapshot struct {
	Phase         Phase                      `json:"phase"`
	LoadError     string                     `json:"loadError,omitempty"`
	Nodes         []*graph.Node              `json:"nodes"`
	Edges         []*graph.Edge              `json:"edges"`
	ViewState     map[string]*view.ViewState `json:"viewState"`
	HiddenTags    []string                   `json:"hiddenTags,omitempty"`
	ShowStructure bool                       `json:"showStructure"`
}

// Snapshot assembles the current renderable state under the session lock.
// Everything is copied: the dispatcher keeps patching nodes and view state
// after the lock is released, and callers encode the snapshot outside it.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Phase:         s.phase,
		LoadError:     s.loadErr,
		Nodes:         []*graph.Node{},
		Edges:         []*graph.Edge{},
		ViewState:     make(map[string]*view.ViewState, len(s.state.States())),
		HiddenTags:    s.state.HiddenTags(),
		ShowStructure: s.state.ShowStructure(),
	}
	for id, vs := range s.state.States() {
		c := *vs
		snap.ViewState[id] = &c
	}
	if s.graph != nil {
		snap.Nodes = appendNodeCopies(snap.Nodes, s.graph.Nodes)
		snap.Edges = appendEdgeCopies(snap.Edges, s.graph.Edges)
	}
	snap.Nodes = appendNodeCopies(snap.Nodes, s.state.Stickies())
	snap.Edges = appendEdgeCopies(snap.Edges, s.state.ManualEdges())
	return snap
}

func appendNodeCopies(dst, src []*graph.Node) []*graph.Node {
	for _, n := range src {
		c := *n
		dst = append(dst, &c)
	}
	return dst
}

func appendEdgeCopies(dst, src []*graph.Edge) []*graph.Edge {
	for _, e := range src {
		c := *e
		dst = append(dst, &c)
	}
	return dst
}
