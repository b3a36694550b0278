package view

import (
	"sort"

	"github.com/google/uuid"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

// AddSticky creates a sticky annotation with a creation-time-unique id. The
// node is unrelated to the dataset and survives rescans.
func (s *State) AddSticky(text, color string) *graph.Node {
	n := &graph.Node{
		ID:    "sticky:" + uuid.NewString(),
		Kind:  graph.KindSticky,
		Label: "note",
		Text:  text,
		Color: color,
		// New stickies fan out from the center so they never stack.
		X: 40 * float64(len(s.stickies)+1),
		Y: -40 * float64(len(s.stickies)+1),
	}
	s.stickies = append(s.stickies, n)
	s.stickyByID[n.ID] = n
	return n
}

// RestoreSticky re-registers a persisted sticky with its stored id and
// position.
func (s *State) RestoreSticky(n *graph.Node) {
	if n.Kind != graph.KindSticky || s.stickyByID[n.ID] != nil {
		return
	}
	s.stickies = append(s.stickies, n)
	s.stickyByID[n.ID] = n
}

// UpdateSticky rewrites a sticky's text and color. Unknown ids are no-ops.
func (s *State) UpdateSticky(id, text, color string) {
	if n := s.stickyByID[id]; n != nil {
		n.Text = text
		n.Color = color
	}
}

// MoveSticky repositions a sticky.
func (s *State) MoveSticky(id string, x, y float64) {
	if n := s.stickyByID[id]; n != nil {
		n.X = x
		n.Y = y
	}
}

// RemoveSticky deletes a sticky and every manual connection attached to it.
func (s *State) RemoveSticky(id string) {
	n := s.stickyByID[id]
	if n == nil {
		return
	}
	delete(s.stickyByID, id)
	for i, st := range s.stickies {
		if st.ID == id {
			s.stickies = append(s.stickies[:i], s.stickies[i+1:]...)
			break
		}
	}
	kept := s.manual[:0]
	for _, e := range s.manual {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	s.manual = kept
	if s.connectFrom == id {
		s.connectFrom = ""
	}
	delete(s.states, id)
}

// Stickies returns the sticky nodes sorted by id.
func (s *State) Stickies() []*graph.Node {
	out := append([]*graph.Node(nil), s.stickies...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ToggleConnectMode enters global connect mode anchored at the given
// sticky. Re-invoking with the same sticky exits the mode; a different
// sticky re-anchors it.
func (s *State) ToggleConnectMode(stickyID string) {
	if s.stickyByID[stickyID] == nil {
		return
	}
	if prev := s.stickyByID[s.connectFrom]; prev != nil {
		prev.Connecting = false
	}
	if s.connectFrom == stickyID {
		s.connectFrom = ""
		return
	}
	s.connectFrom = stickyID
	s.stickyByID[stickyID].Connecting = true
}

// ConnectAnchor returns the sticky anchoring connect mode, or "".
func (s *State) ConnectAnchor() string { return s.connectFrom }

// ClickNode handles a node click while connect mode is active: it toggles
// the manual edge between the anchor sticky and the clicked node. The edge
// id derives from the unordered endpoint pair, so a second toggle removes
// the connection instead of duplicating it. Clicks outside connect mode,
// or on the anchor itself, do nothing and report changed=false.
func (s *State) ClickNode(id string) (changed, added bool) {
	if s.connectFrom == "" || id == s.connectFrom {
		return false, false
	}
	if s.node(id) == nil {
		return false, false
	}
	return true, s.ToggleManualEdge(s.connectFrom, id)
}

// ToggleManualEdge adds the manual edge between a and b, or removes it when
// it already exists.
func (s *State) ToggleManualEdge(a, b string) (added bool) {
	edgeID := graph.ManualEdgeID(a, b)
	for i, e := range s.manual {
		if e.ID == edgeID {
			s.manual = append(s.manual[:i], s.manual[i+1:]...)
			return false
		}
	}
	s.manual = append(s.manual, &graph.Edge{
		ID:     edgeID,
		Kind:   graph.EdgeManual,
		Source: a,
		Target: b,
		Weight: 1,
	})
	return true
}

// ManualEdges returns the manual connections sorted by id.
func (s *State) ManualEdges() []*graph.Edge {
	out := append([]*graph.Edge(nil), s.manual...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
