package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/codeatlas-dev/codeatlas/internal/dataset"
	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

func layoutDataset() *dataset.Dataset {
	ds := &dataset.Dataset{Files: map[string]*dataset.FileRecord{}}
	for i := 0; i < 4; i++ {
		p := fmt.Sprintf("alpha/a%d.ts", i)
		ds.Files[p] = &dataset.FileRecord{Path: p, Name: fmt.Sprintf("a%d.ts", i), Lang: "ts"}
	}
	for i := 0; i < 4; i++ {
		p := fmt.Sprintf("beta/b%d.ts", i)
		ds.Files[p] = &dataset.FileRecord{Path: p, Name: fmt.Sprintf("b%d.ts", i), Lang: "ts"}
	}
	// hub.ts is used by everything, exceeding the hub threshold.
	hub := &dataset.FileRecord{Path: "alpha/hub.ts", Name: "hub.ts", Lang: "ts"}
	for p := range ds.Files {
		hub.UsedBy = append(hub.UsedBy, p)
	}
	ds.Files["alpha/hub.ts"] = hub
	return ds
}

func run(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.Build(layoutDataset())
	New(DefaultConfig()).Run(g)
	return g
}

func TestRunDeterministic(t *testing.T) {
	g1 := run(t)
	g2 := run(t)

	for i, n := range g1.Nodes {
		m := g2.Nodes[i]
		if n.ID != m.ID {
			t.Fatalf("node order changed: %s vs %s", n.ID, m.ID)
		}
		if n.X != m.X || n.Y != m.Y {
			t.Errorf("node %s position differs between identical runs: (%v,%v) vs (%v,%v)",
				n.ID, n.X, n.Y, m.X, m.Y)
		}
	}
}

func TestRunKeepsEveryNodeAndID(t *testing.T) {
	g := graph.Build(layoutDataset())
	before := len(g.Nodes)
	ids := make(map[string]bool)
	for _, n := range g.Nodes {
		ids[n.ID] = true
	}

	New(DefaultConfig()).Run(g)

	if len(g.Nodes) != before {
		t.Fatalf("layout changed node count: %d -> %d", before, len(g.Nodes))
	}
	for _, n := range g.Nodes {
		if !ids[n.ID] {
			t.Errorf("layout produced unknown id %s", n.ID)
		}
	}
}

func TestRootStaysAtOrigin(t *testing.T) {
	g := run(t)
	root := g.Node(graph.RootID)
	if root.X != 0 || root.Y != 0 {
		t.Errorf("root moved to (%v,%v)", root.X, root.Y)
	}
}

func TestHubPulledInward(t *testing.T) {
	g := run(t)
	cfg := DefaultConfig()

	hubR := math.Hypot(g.Node("alpha/hub.ts").X, g.Node("alpha/hub.ts").Y)
	plainR := math.Hypot(g.Node("beta/b0.ts").X, g.Node("beta/b0.ts").Y)

	if hubR >= plainR {
		t.Errorf("hub radius %.1f not inside plain file radius %.1f", hubR, plainR)
	}
	if hubR > cfg.DirectoryRadius {
		t.Errorf("hub radius %.1f beyond the directory ring %.1f", hubR, cfg.DirectoryRadius)
	}
}

func TestSectorGrouping(t *testing.T) {
	g := run(t)

	spread := func(prefix string) (min, max float64) {
		min, max = math.Pi, -math.Pi
		for _, n := range g.Nodes {
			if n.Kind != graph.KindFile || n.ID == "alpha/hub.ts" {
				continue
			}
			if len(n.ID) < len(prefix) || n.ID[:len(prefix)] != prefix {
				continue
			}
			a := math.Atan2(n.Y, n.X)
			if a < min {
				min = a
			}
			if a > max {
				max = a
			}
		}
		return min, max
	}

	aMin, aMax := spread("alpha/")
	bMin, bMax := spread("beta/")
	// The two directory clusters must occupy disjoint angular ranges.
	if aMax > bMin && bMax > aMin {
		t.Errorf("sectors interleave: alpha [%.2f,%.2f] beta [%.2f,%.2f]", aMin, aMax, bMin, bMax)
	}
}

func TestEdgelessNodesSettle(t *testing.T) {
	ds := &dataset.Dataset{Files: map[string]*dataset.FileRecord{
		"x.go": {Path: "x.go", Name: "x.go", Lang: "go"},
		"y.go": {Path: "y.go", Name: "y.go", Lang: "go"},
	}}
	built := graph.Build(ds)
	built.Edges = nil // strip all edges

	New(DefaultConfig()).Run(built)

	x, y := built.Node("x.go"), built.Node("y.go")
	if x.X == 0 && x.Y == 0 {
		t.Error("edgeless node never moved off the origin")
	}
	if math.Hypot(x.X-y.X, x.Y-y.Y) < 1 {
		t.Error("edgeless nodes did not separate")
	}
}

func TestRunEmptyGraph(t *testing.T) {
	New(DefaultConfig()).Run(&graph.Graph{})
}

func TestNewKeepsCustomConstantsWhenStepsUnset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 0
	cfg.DirectoryRadius = 500

	e := New(cfg)
	var total int
	e.OnStep = func(step, tot int) { total = tot }

	g := graph.Build(layoutDataset())
	e.Run(g)

	if total != DefaultConfig().Steps {
		t.Errorf("step count = %d, want default %d", total, DefaultConfig().Steps)
	}
	// The custom directory ring must survive the Steps fallback: with the
	// default 220 the directories settle well inside 360.
	dirR := math.Hypot(g.Node("dir:alpha").X, g.Node("dir:alpha").Y)
	if dirR < 360 {
		t.Errorf("directory radius %.1f, want near the custom 500 ring", dirR)
	}
}

func TestOnStepCallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Steps = 10
	e := New(cfg)
	var calls int
	e.OnStep = func(step, total int) {
		calls++
		if total != 10 {
			t.Fatalf("total = %d, want 10", total)
		}
	}
	e.Run(graph.Build(layoutDataset()))
	if calls != 10 {
		t.Errorf("OnStep called %d times, want 10", calls)
	}
}
