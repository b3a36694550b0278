package graph

import (
	"reflect"
	"testing"

	"github.com/codeatlas-dev/codeatlas/internal/dataset"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Files: map[string]*dataset.FileRecord{
			"a.ts": {Path: "a.ts", Name: "a.ts", Lang: "ts"},
			"src/b.ts": {
				Path: "src/b.ts", Name: "b.ts", Lang: "ts",
				UsedBy: []string{"a.ts"},
			},
			"src/deep/c.py": {Path: "src/deep/c.py", Name: "c.py", Lang: "py"},
		},
		Dirs: map[string]*dataset.DirectoryRecord{
			"src": {Path: "src", Files: []string{"src/b.ts"}},
		},
	}
}

func TestBuildNodeIDs(t *testing.T) {
	g := Build(testDataset())

	for _, id := range []string{RootID, "dir:src", "dir:src/deep", "a.ts", "src/b.ts", "src/deep/c.py"} {
		if g.Node(id) == nil {
			t.Errorf("missing node %s", id)
		}
	}
	// src/deep is implied only by a file path prefix, never listed in
	// dataset.directories.
	if n := g.Node("dir:src/deep"); n == nil || n.Kind != KindDirectory {
		t.Error("implied ancestor directory not materialized")
	}
}

func TestBuildContainment(t *testing.T) {
	g := Build(testDataset())

	want := map[string]string{
		"dir:src":       RootID,
		"dir:src/deep":  "dir:src",
		"a.ts":          RootID,
		"src/b.ts":      "dir:src",
		"src/deep/c.py": "dir:src/deep",
	}
	parents := make(map[string]string)
	for _, e := range g.Edges {
		if e.Kind == EdgeContainment {
			if _, dup := parents[e.Target]; dup {
				t.Errorf("node %s has two parents", e.Target)
			}
			parents[e.Target] = e.Source
		}
	}
	if !reflect.DeepEqual(parents, want) {
		t.Errorf("containment = %v, want %v", parents, want)
	}
}

func TestBuildDependencyDirection(t *testing.T) {
	// b.ts lists a.ts in usedBy: a.ts uses b.ts, so the edge runs
	// a.ts → src/b.ts and never the reverse.
	g := Build(testDataset())

	var deps []*Edge
	for _, e := range g.Edges {
		if e.Kind == EdgeDependency {
			deps = append(deps, e)
		}
	}
	if len(deps) != 1 {
		t.Fatalf("expected exactly 1 dependency edge, got %d", len(deps))
	}
	if deps[0].Source != "a.ts" || deps[0].Target != "src/b.ts" {
		t.Errorf("dependency direction %s -> %s, want a.ts -> src/b.ts", deps[0].Source, deps[0].Target)
	}
}

func TestBuildSkipsUnresolvedUsedBy(t *testing.T) {
	ds := testDataset()
	ds.Files["src/b.ts"].UsedBy = append(ds.Files["src/b.ts"].UsedBy, "gone/away.ts")
	g := Build(ds)

	for _, e := range g.Edges {
		if e.Kind == EdgeDependency && e.Source == "gone/away.ts" {
			t.Error("unresolved usedBy entry produced an edge")
		}
	}
}

func TestBuildRemovedUsedByRemovesEdge(t *testing.T) {
	ds := testDataset()
	ds.Files["src/b.ts"].UsedBy = nil
	g := Build(ds)

	for _, e := range g.Edges {
		if e.Kind == EdgeDependency {
			t.Errorf("expected no dependency edges, found %s", e.ID)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	g1 := Build(testDataset())
	g2 := Build(testDataset())

	ids := func(g *Graph) []string {
		var out []string
		for _, n := range g.Nodes {
			out = append(out, n.ID)
		}
		for _, e := range g.Edges {
			out = append(out, e.ID)
		}
		return out
	}
	if !reflect.DeepEqual(ids(g1), ids(g2)) {
		t.Error("rebuilding from an identical dataset changed node/edge sets")
	}
}

func TestBuildTrafficAndWeights(t *testing.T) {
	ds := testDataset()
	ds.Files["src/b.ts"].Imports = []dataset.Import{{Target: "./x"}, {Target: "./y"}}
	g := Build(ds)

	if got := g.Node("src/b.ts").Traffic; got != 3 {
		t.Errorf("traffic = %d, want 3 (2 imports + 1 usedBy)", got)
	}
	for _, e := range g.Edges {
		if e.Weight < minEdgeWeight || e.Weight > maxEdgeWeight {
			t.Errorf("edge %s weight %d outside [%d,%d]", e.ID, e.Weight, minEdgeWeight, maxEdgeWeight)
		}
	}
}

func TestManualEdgeIDUnordered(t *testing.T) {
	if ManualEdgeID("x", "y") != ManualEdgeID("y", "x") {
		t.Error("manual edge id must not depend on endpoint order")
	}
}

func TestEnsureDirectoryCreatesChain(t *testing.T) {
	g := Build(testDataset())
	n := g.EnsureDirectory("lib/util")
	if n == nil || n.ID != "dir:lib/util" {
		t.Fatalf("EnsureDirectory returned %+v", n)
	}
	if g.Node("dir:lib") == nil {
		t.Error("intermediate ancestor not created")
	}
	// Idempotent: a second call returns the same node.
	if g.EnsureDirectory("lib/util") != n {
		t.Error("EnsureDirectory created a duplicate")
	}
}

func TestDependencyInDegree(t *testing.T) {
	g := Build(testDataset())
	in := g.DependencyInDegree()
	if in["src/b.ts"] != 1 {
		t.Errorf("in-degree of src/b.ts = %d, want 1", in["src/b.ts"])
	}
	if in["a.ts"] != 0 {
		t.Errorf("in-degree of a.ts = %d, want 0", in["a.ts"])
	}
}
