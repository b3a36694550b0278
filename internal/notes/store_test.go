package notes

import (
	"testing"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStickyRoundTrip(t *testing.T) {
	s := openStore(t)

	n := &graph.Node{ID: "sticky:1", Kind: graph.KindSticky, Text: "todo", Color: "#f00", X: 12, Y: -7}
	if err := s.SaveSticky(n); err != nil {
		t.Fatalf("SaveSticky: %v", err)
	}

	// Upsert keeps a single row.
	n.Text = "done"
	if err := s.SaveSticky(n); err != nil {
		t.Fatalf("SaveSticky update: %v", err)
	}

	got, err := s.ListStickies()
	if err != nil {
		t.Fatalf("ListStickies: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 sticky, got %d", len(got))
	}
	if got[0].Text != "done" || got[0].X != 12 || got[0].Y != -7 {
		t.Errorf("round trip mismatch: %+v", got[0])
	}
}

func TestDeleteStickyCascadesConnections(t *testing.T) {
	s := openStore(t)

	n := &graph.Node{ID: "sticky:1", Kind: graph.KindSticky}
	if err := s.SaveSticky(n); err != nil {
		t.Fatalf("SaveSticky: %v", err)
	}
	e := &graph.Edge{ID: graph.ManualEdgeID("sticky:1", "a.ts"), Kind: graph.EdgeManual,
		Source: "sticky:1", Target: "a.ts"}
	if err := s.SaveConnection(e); err != nil {
		t.Fatalf("SaveConnection: %v", err)
	}

	if err := s.DeleteSticky("sticky:1"); err != nil {
		t.Fatalf("DeleteSticky: %v", err)
	}

	stickies, _ := s.ListStickies()
	conns, _ := s.ListConnections()
	if len(stickies) != 0 || len(conns) != 0 {
		t.Errorf("delete left %d stickies, %d connections", len(stickies), len(conns))
	}
}

func TestConnectionRoundTrip(t *testing.T) {
	s := openStore(t)

	e := &graph.Edge{ID: graph.ManualEdgeID("sticky:1", "x.go"), Kind: graph.EdgeManual,
		Source: "sticky:1", Target: "x.go"}
	if err := s.SaveConnection(e); err != nil {
		t.Fatalf("SaveConnection: %v", err)
	}
	// Saving the same unordered pair again is a no-op.
	if err := s.SaveConnection(e); err != nil {
		t.Fatalf("SaveConnection dup: %v", err)
	}

	conns, err := s.ListConnections()
	if err != nil {
		t.Fatalf("ListConnections: %v", err)
	}
	if len(conns) != 1 {
		t.Fatalf("expected 1 connection, got %d", len(conns))
	}
	if conns[0].Source != "sticky:1" || conns[0].Target != "x.go" {
		t.Errorf("round trip mismatch: %+v", conns[0])
	}

	if err := s.DeleteConnection(e.ID); err != nil {
		t.Fatalf("DeleteConnection: %v", err)
	}
	conns, _ = s.ListConnections()
	if len(conns) != 0 {
		t.Error("connection not deleted")
	}
}
