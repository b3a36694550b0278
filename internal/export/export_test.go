package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/codeatlas-dev/codeatlas/internal/dataset"
	"github.com/codeatlas-dev/codeatlas/internal/graph"
	"github.com/codeatlas-dev/codeatlas/internal/host"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("uses `http.Client` for **requests**")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<code>http.Client</code>") || !strings.Contains(s, "<strong>requests</strong>") {
		t.Errorf("unexpected rendering: %s", s)
	}
}

func TestWriteContainsEveryNode(t *testing.T) {
	g := graph.Build(&dataset.Dataset{
		Files: map[string]*dataset.FileRecord{
			"a.ts":     {Path: "a.ts", Name: "a.ts", Lang: "ts", Summary: "entry `point`"},
			"src/b.ts": {Path: "src/b.ts", Name: "b.ts", Lang: "ts", UsedBy: []string{"a.ts"}},
		},
	})
	snap := host.Snapshot{Phase: host.PhaseReady, Nodes: g.Nodes, Edges: g.Edges}

	var buf bytes.Buffer
	if err := (&Exporter{Title: "demo"}).Write(&buf, snap); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>demo</title>") {
		t.Error("missing title")
	}
	for _, n := range g.Nodes {
		if !strings.Contains(out, n.ID) {
			t.Errorf("export missing node id %s", n.ID)
		}
	}

	// The embedded payload is valid JSON with all edges.
	start := strings.Index(out, `type="application/json">`) + len(`type="application/json">`)
	end := strings.Index(out[start:], "</script>")
	var payload struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal([]byte(out[start:start+end]), &payload); err != nil {
		t.Fatalf("embedded payload not valid JSON: %v", err)
	}
	if len(payload.Nodes) != len(g.Nodes) || len(payload.Edges) != len(g.Edges) {
		t.Errorf("payload has %d nodes / %d edges, want %d / %d",
			len(payload.Nodes), len(payload.Edges), len(g.Nodes), len(g.Edges))
	}
}
