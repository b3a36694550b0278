package graph

import (
	"sort"

	"github.com/codeatlas-dev/codeatlas/internal/dataset"
)

// Edge weights scale with file traffic but stay inside a fixed band; they
// are display-only.
const (
	minEdgeWeight = 1
	maxEdgeWeight = 6
)

// Build converts a normalized dataset into a graph. It is pure and
// deterministic: equal datasets produce equal node and edge sets, sorted by
// id. Used-by entries that do not resolve to a known file are skipped
// silently — analysis data may be partial or stale relative to the live
// file set.
func Build(ds *dataset.Dataset) *Graph {
	g := &Graph{byID: make(map[string]*Node, len(ds.Files)+len(ds.Dirs)+1)}

	filePaths := make([]string, 0, len(ds.Files))
	for p := range ds.Files {
		filePaths = append(filePaths, p)
	}
	sort.Strings(filePaths)

	// Collect every directory path: explicit records plus every ancestor
	// implied by a file path. Directories only ever mentioned as a prefix
	// still get a node.
	dirSet := make(map[string]bool)
	for p := range ds.Dirs {
		if p != "." {
			addAncestors(dirSet, p)
		}
	}
	for _, p := range filePaths {
		if parent := dataset.ParentDir(p); parent != "." {
			addAncestors(dirSet, parent)
		}
	}
	dirPaths := make([]string, 0, len(dirSet))
	for p := range dirSet {
		dirPaths = append(dirPaths, p)
	}
	sort.Strings(dirPaths)

	g.add(&Node{ID: RootID, Kind: KindRoot, Label: "/", Path: "."})
	for _, p := range dirPaths {
		n := &Node{ID: DirID(p), Kind: KindDirectory, Label: lastSegment(p), Path: p}
		if rec := ds.Dirs[p]; rec != nil {
			n.Summary = rec.Summary
		}
		g.add(n)
	}
	for _, p := range filePaths {
		g.add(fileNode(ds.Files[p]))
	}

	// Containment: every directory and file hangs off its parent directory.
	for _, p := range dirPaths {
		g.containIn(dataset.ParentDir(p), DirID(p), 1)
	}
	for _, p := range filePaths {
		rec := ds.Files[p]
		g.containIn(dataset.ParentDir(p), p, edgeWeight(traffic(rec)))
	}

	// Dependencies: a used-by entry on T naming S means S uses T, so the
	// edge runs S → T (dependent → dependency). Unresolved sources are
	// dropped, never raised.
	for _, p := range filePaths {
		rec := ds.Files[p]
		users := append([]string(nil), rec.UsedBy...)
		sort.Strings(users)
		for _, user := range users {
			if g.Node(user) == nil || user == p {
				continue
			}
			g.Edges = append(g.Edges, &Edge{
				ID:     "dep:" + user + "->" + p,
				Kind:   EdgeDependency,
				Source: user,
				Target: p,
				Weight: edgeWeight(traffic(rec)),
			})
		}
	}

	sortEdges(g.Edges)
	return g
}

// fileNode mirrors the display-relevant fields of a FileRecord.
func fileNode(rec *dataset.FileRecord) *Node {
	return &Node{
		ID:              rec.Path,
		Kind:            KindFile,
		Label:           rec.Name,
		Path:            rec.Path,
		Lang:            rec.Lang,
		Summary:         rec.Summary,
		DetailedSummary: rec.DetailedSummary,
		Exports:         rec.Exports,
		Imports:         rec.Imports,
		Symbols:         rec.Symbols,
		Blocks:          rec.Blocks,
		UsedBy:          rec.UsedBy,
		Traffic:         traffic(rec),
		Analyzing:       rec.Analyzing,
	}
}

// containIn emits a containment edge from the parent directory to child.
func (g *Graph) containIn(parentPath, childID string, weight int) {
	parentID := DirID(parentPath)
	g.Edges = append(g.Edges, &Edge{
		ID:     "contain:" + parentID + "->" + childID,
		Kind:   EdgeContainment,
		Source: parentID,
		Target: childID,
		Weight: weight,
	})
}

// addAncestors records p and every directory prefix of p into set.
func addAncestors(set map[string]bool, p string) {
	for p != "." && !set[p] {
		set[p] = true
		p = dataset.ParentDir(p)
	}
}

func traffic(rec *dataset.FileRecord) int {
	return len(rec.Imports) + len(rec.UsedBy)
}

func edgeWeight(traffic int) int {
	w := minEdgeWeight + traffic
	if w > maxEdgeWeight {
		return maxEdgeWeight
	}
	return w
}
