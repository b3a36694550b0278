package view

import (
	"reflect"
	"testing"

	"github.com/codeatlas-dev/codeatlas/internal/dataset"
	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

func viewGraph() *graph.Graph {
	return graph.Build(&dataset.Dataset{
		Files: map[string]*dataset.FileRecord{
			"x.ts": {
				Path: "x.ts", Name: "x.ts", Lang: "ts",
				Symbols: []string{"parseConfig"},
			},
			"src/y.ts": {
				Path: "src/y.ts", Name: "y.ts", Lang: "ts",
				Summary: "renders the sidebar",
			},
			"main.go": {Path: "main.go", Name: "main.go", Lang: "go"},
		},
	})
}

func TestToggleExpandRequestsDeepAnalysisPerTransition(t *testing.T) {
	s := New(viewGraph())

	if !s.ToggleExpand("x.ts") {
		t.Fatal("first expand should request deep analysis")
	}
	if !s.Graph().Node("x.ts").Analyzing {
		t.Error("expand did not set the analyzing flag")
	}

	// Collapsing requests nothing.
	if s.ToggleExpand("x.ts") {
		t.Error("collapse issued a request")
	}

	// A node stuck analyzing with no completion event is staleness, not
	// failure: a fresh expand re-requests rather than blocking on the
	// lost response.
	if !s.ToggleExpand("x.ts") {
		t.Error("re-expand of a stuck analyzing node did not re-request")
	}
	if !s.Graph().Node("x.ts").Analyzing {
		t.Error("re-request cleared the analyzing flag")
	}

	// Once blocks arrived, expanding never requests again.
	n := s.Graph().Node("x.ts")
	n.Analyzing = false
	n.Blocks = []dataset.Block{{Name: "init", Kind: "function"}}
	s.ToggleExpand("x.ts")
	if s.ToggleExpand("x.ts") {
		t.Error("expand with fetched blocks issued a request")
	}
}

func TestToggleExpandNonFile(t *testing.T) {
	s := New(viewGraph())
	if s.ToggleExpand("dir:src") {
		t.Error("directory expand must not request deep analysis")
	}
	if !s.NodeState("dir:src").Expanded {
		t.Error("directory did not expand")
	}
}

func TestSetTabIndependentAcrossNodes(t *testing.T) {
	s := New(viewGraph())
	s.SetTab("x.ts", TabStructure)
	if s.NodeState("x.ts").ActiveTab != TabStructure {
		t.Error("tab not set")
	}
	if s.NodeState("src/y.ts").ActiveTab != TabSummary {
		t.Error("tab selection leaked across nodes")
	}
}

func TestSearchSymbolPriorityAndDimming(t *testing.T) {
	s := New(viewGraph())

	results := s.Search("parseconfig")
	if len(results) != 1 || results[0].NodeID != "x.ts" || results[0].Field != MatchSymbol {
		t.Fatalf("results = %+v, want one symbol match on x.ts", results)
	}
	if vs := s.NodeState("x.ts"); !vs.Highlighted || vs.Dimmed {
		t.Error("matching node not highlighted/undimmed")
	}
	for _, n := range s.Graph().Nodes {
		if n.ID == "x.ts" {
			continue
		}
		if vs := s.NodeState(n.ID); !vs.Dimmed || vs.Highlighted {
			t.Errorf("non-matching node %s not dimmed", n.ID)
		}
	}

	s.Search("")
	for id, vs := range s.States() {
		if vs.Dimmed || vs.Highlighted {
			t.Errorf("clearing the query left flags set on %s", id)
		}
	}
}

func TestSearchFieldPriority(t *testing.T) {
	s := New(viewGraph())

	cases := []struct {
		query string
		node  string
		field MatchField
	}{
		{"y.ts", "src/y.ts", MatchLabel},
		{"sidebar", "src/y.ts", MatchSummary},
		{"src/", "src/y.ts", MatchPath},
	}
	for _, c := range cases {
		results := s.Search(c.query)
		found := false
		for _, r := range results {
			if r.NodeID == c.node {
				found = true
				if r.Field != c.field {
					t.Errorf("query %q: field %s, want %s", c.query, r.Field, c.field)
				}
			}
		}
		if !found {
			t.Errorf("query %q did not match %s", c.query, c.node)
		}
	}
}

func TestSearchSkipsStickies(t *testing.T) {
	s := New(viewGraph())
	s.AddSticky("remember the sidebar", "#ff0")
	s.Search("zzz-no-match")
	for _, st := range s.Stickies() {
		if vs, ok := s.States()[st.ID]; ok && vs.Dimmed {
			t.Error("sticky was dimmed by search")
		}
	}
}

func TestFiltersHideByTagButNeverRoot(t *testing.T) {
	s := New(viewGraph())
	s.ToggleTag("ts")

	for _, n := range s.Graph().Nodes {
		hidden := s.Hidden(n)
		switch {
		case n.Kind == graph.KindRoot && hidden:
			t.Error("root must never be hidden")
		case n.Lang == "ts" && !hidden:
			t.Errorf("ts file %s not hidden", n.ID)
		case n.Lang == "go" && hidden:
			t.Errorf("go file %s hidden by ts filter", n.ID)
		}
	}

	s.ToggleTag("ts")
	for _, n := range s.Graph().Nodes {
		if s.Hidden(n) {
			t.Errorf("node %s still hidden after untoggle", n.ID)
		}
	}
}

func TestFilterSyntheticTags(t *testing.T) {
	s := New(viewGraph())
	sticky := s.AddSticky("n", "#fff")
	s.ToggleTag(TagDirectory)
	s.ToggleTag(TagSticky)

	if !s.Hidden(s.Graph().Node("dir:src")) {
		t.Error("directory tag filter did not hide directories")
	}
	if !s.Hidden(sticky) {
		t.Error("sticky tag filter did not hide stickies")
	}
	if s.Hidden(s.Graph().Node(graph.RootID)) {
		t.Error("root hidden by synthetic filters")
	}
}

func TestManualConnectionToggleLaw(t *testing.T) {
	s := New(viewGraph())
	a := s.AddSticky("a", "#fff")

	s.ToggleConnectMode(a.ID)
	before := edgeIDs(s.ManualEdges())

	changed, added := s.ClickNode("x.ts")
	if !changed || !added {
		t.Fatal("first click did not add a connection")
	}
	if _, added = s.ClickNode("x.ts"); added {
		t.Fatal("second click should remove, not add")
	}

	if !reflect.DeepEqual(edgeIDs(s.ManualEdges()), before) {
		t.Error("toggling the same connection twice did not restore the edge set")
	}
}

func TestConnectModeAnchorSwitching(t *testing.T) {
	s := New(viewGraph())
	a := s.AddSticky("a", "#fff")
	b := s.AddSticky("b", "#fff")

	s.ToggleConnectMode(a.ID)
	if s.ConnectAnchor() != a.ID || !a.Connecting {
		t.Fatal("connect mode not anchored at a")
	}

	// A second sticky's connect control switches the anchor.
	s.ToggleConnectMode(b.ID)
	if s.ConnectAnchor() != b.ID {
		t.Error("anchor did not switch to b")
	}
	if a.Connecting {
		t.Error("previous anchor still flagged connecting")
	}

	// Re-clicking the active control exits connect mode.
	s.ToggleConnectMode(b.ID)
	if s.ConnectAnchor() != "" || b.Connecting {
		t.Error("connect mode did not exit")
	}

	// Clicks outside connect mode do nothing.
	if changed, _ := s.ClickNode("x.ts"); changed {
		t.Error("click outside connect mode changed connections")
	}
}

func TestRemoveStickyDropsItsConnections(t *testing.T) {
	s := New(viewGraph())
	a := s.AddSticky("a", "#fff")
	s.ToggleConnectMode(a.ID)
	s.ClickNode("x.ts")

	s.RemoveSticky(a.ID)
	if len(s.ManualEdges()) != 0 {
		t.Error("removing a sticky left dangling manual edges")
	}
	if len(s.Stickies()) != 0 {
		t.Error("sticky not removed")
	}
	if s.ConnectAnchor() != "" {
		t.Error("connect mode survived anchor removal")
	}
}

func TestRebindKeepsStickiesAndState(t *testing.T) {
	s := New(viewGraph())
	st := s.AddSticky("keep me", "#0f0")
	s.ToggleManualEdge(st.ID, "x.ts")
	s.NodeState("x.ts").Expanded = true

	s.Rebind(viewGraph())

	if len(s.Stickies()) != 1 || len(s.ManualEdges()) != 1 {
		t.Error("rescan dropped stickies or manual edges")
	}
	if !s.NodeState("x.ts").Expanded {
		t.Error("rescan dropped surviving node state")
	}
}

func edgeIDs(edges []*graph.Edge) []string {
	out := []string{}
	for _, e := range edges {
		out = append(out, e.ID)
	}
	return out
}
