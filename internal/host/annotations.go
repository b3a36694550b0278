package host

import (
	"log"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

// NotesStore is the persistence surface for annotations. Writes are
// best-effort: a failed save is logged and the in-memory state stands.
type NotesStore interface {
	SaveSticky(n *graph.Node) error
	DeleteSticky(id string) error
	ListStickies() ([]*graph.Node, error)
	SaveConnection(e *graph.Edge) error
	DeleteConnection(id string) error
	ListConnections() ([]*graph.Edge, error)
}

// WithNotes attaches a persistence store and restores saved annotations
// into the session.
func WithNotes(store NotesStore) Option {
	return func(s *Session) { s.notes = store }
}

// RestoreAnnotations loads persisted stickies and connections into the view
// state. Called once after session construction.
func (s *Session) RestoreAnnotations() error {
	if s.notes == nil {
		return nil
	}
	stickies, err := s.notes.ListStickies()
	if err != nil {
		return err
	}
	conns, err := s.notes.ListConnections()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range stickies {
		s.state.RestoreSticky(n)
	}
	for _, e := range conns {
		s.state.ToggleManualEdge(e.Source, e.Target)
	}
	return nil
}

// AddSticky creates a sticky annotation and persists it.
func (s *Session) AddSticky(text, color string) *graph.Node {
	s.mu.Lock()
	n := s.state.AddSticky(text, color)
	s.mu.Unlock()
	s.persistSticky(n)
	return n
}

// UpdateSticky rewrites a sticky's content and persists the change.
func (s *Session) UpdateSticky(id, text, color string) {
	s.mu.Lock()
	s.state.UpdateSticky(id, text, color)
	n := s.stickyByID(id)
	s.mu.Unlock()
	if n != nil {
		s.persistSticky(n)
	}
}

// MoveSticky repositions a sticky and persists the new position.
func (s *Session) MoveSticky(id string, x, y float64) {
	s.mu.Lock()
	s.state.MoveSticky(id, x, y)
	n := s.stickyByID(id)
	s.mu.Unlock()
	if n != nil {
		s.persistSticky(n)
	}
}

// RemoveSticky deletes a sticky, its connections, and their persisted rows.
func (s *Session) RemoveSticky(id string) {
	s.mu.Lock()
	s.state.RemoveSticky(id)
	s.mu.Unlock()
	if s.notes != nil {
		if err := s.notes.DeleteSticky(id); err != nil {
			log.Printf("host: delete sticky %s: %v", id, err)
		}
	}
}

// ToggleConnectMode anchors or exits global connect mode.
func (s *Session) ToggleConnectMode(stickyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ToggleConnectMode(stickyID)
}

// ClickNode routes a node click: in connect mode it toggles the manual
// connection to the anchor and persists the result.
func (s *Session) ClickNode(id string) {
	s.mu.Lock()
	anchor := s.state.ConnectAnchor()
	changed, added := s.state.ClickNode(id)
	s.mu.Unlock()
	if !changed || s.notes == nil {
		return
	}

	edgeID := graph.ManualEdgeID(anchor, id)
	var err error
	if added {
		err = s.notes.SaveConnection(&graph.Edge{ID: edgeID, Kind: graph.EdgeManual, Source: anchor, Target: id})
	} else {
		err = s.notes.DeleteConnection(edgeID)
	}
	if err != nil {
		log.Printf("host: persist connection %s: %v", edgeID, err)
	}
}

func (s *Session) persistSticky(n *graph.Node) {
	if s.notes == nil {
		return
	}
	if err := s.notes.SaveSticky(n); err != nil {
		log.Printf("host: save sticky %s: %v", n.ID, err)
	}
}

// stickyByID finds a sticky in the view state; callers hold the lock.
func (s *Session) stickyByID(id string) *graph.Node {
	for _, n := range s.state.Stickies() {
		if n.ID == id {
			return n
		}
	}
	return nil
}
