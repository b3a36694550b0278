// Package graph converts an analysis dataset into the typed node/edge set
// rendered by the layout and view layers.
package graph

import (
	"sort"
	"strings"

	"github.com/codeatlas-dev/codeatlas/internal/dataset"
)

// NodeKind discriminates the node variants.
type NodeKind string

const (
	KindRoot      NodeKind = "root"
	KindDirectory NodeKind = "directory"
	KindFile      NodeKind = "file"
	KindSticky    NodeKind = "sticky"
)

// RootID is the id of the single root node.
const RootID = "dir:."

// DirID derives a directory node id from its path. Ids are computed, never
// looked up, so a child can be created before its parent exists.
func DirID(path string) string {
	return "dir:" + path
}

// Node is one renderable graph node. File nodes mirror the display-relevant
// fields of their FileRecord; Sticky nodes carry free annotation state and
// have no dataset counterpart.
type Node struct {
	ID    string   `json:"id"`
	Kind  NodeKind `json:"kind"`
	Label string   `json:"label"`
	Path  string   `json:"path,omitempty"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`

	// File fields.
	Lang            string           `json:"lang,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	DetailedSummary string           `json:"detailedSummary,omitempty"`
	Exports         []dataset.Export `json:"exports,omitempty"`
	Imports         []dataset.Import `json:"imports,omitempty"`
	Symbols         []string         `json:"symbols,omitempty"`
	Blocks          []dataset.Block  `json:"blocks,omitempty"`
	UsedBy          []string         `json:"usedBy,omitempty"`
	// Traffic is the import count plus used-by count; it drives cosmetic
	// edge weights and node sizing only.
	Traffic   int  `json:"traffic,omitempty"`
	Analyzing bool `json:"analyzing,omitempty"`

	// Sticky fields.
	Text       string `json:"text,omitempty"`
	Color      string `json:"color,omitempty"`
	Connecting bool   `json:"connecting,omitempty"`
}

// EdgeKind discriminates the edge variants.
type EdgeKind string

const (
	// EdgeContainment expresses filesystem nesting, directory → child.
	EdgeContainment EdgeKind = "containment"
	// EdgeDependency expresses a use relationship. Direction is fixed as
	// dependent → dependency: the source uses the target. All weight and
	// animation consumers hold this convention.
	EdgeDependency EdgeKind = "dependency"
	// EdgeManual is a user-created sticky connection.
	EdgeManual EdgeKind = "manual"
)

// Edge connects two nodes by id. Weight is cosmetic, derived from traffic.
type Edge struct {
	ID     string   `json:"id"`
	Kind   EdgeKind `json:"kind"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Weight int      `json:"weight"`
}

// ManualEdgeID derives a manual edge id from the unordered endpoint pair,
// so creating the same connection twice resolves to the same id.
func ManualEdgeID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "manual:" + a + "|" + b
}

// Graph is the dataset-derived node/edge set. Sticky nodes and manual edges
// live in the view layer; they are merged into snapshots, not stored here.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`

	byID map[string]*Node
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.byID[id]
}

// add registers a node in both the slice and the id index.
func (g *Graph) add(n *Node) {
	if g.byID == nil {
		g.byID = make(map[string]*Node)
	}
	g.Nodes = append(g.Nodes, n)
	g.byID[n.ID] = n
}

// EnsureDirectory returns the directory node for path, creating it and any
// missing ancestors (with containment edges) when absent. Used by the
// update channel for directories the initial dataset never mentioned.
func (g *Graph) EnsureDirectory(path string) *Node {
	path = dataset.CleanPath(path)
	if n := g.Node(DirID(path)); n != nil {
		return n
	}
	if path == "." {
		root := &Node{ID: RootID, Kind: KindRoot, Label: "/", Path: "."}
		g.add(root)
		return root
	}
	parent := g.EnsureDirectory(dataset.ParentDir(path))
	n := &Node{
		ID:    DirID(path),
		Kind:  KindDirectory,
		Label: lastSegment(path),
		Path:  path,
	}
	g.add(n)
	g.Edges = append(g.Edges, &Edge{
		ID:     "contain:" + parent.ID + "->" + n.ID,
		Kind:   EdgeContainment,
		Source: parent.ID,
		Target: n.ID,
		Weight: 1,
	})
	return n
}

// DependencyInDegree counts incoming dependency edges per node id. The
// layout engine uses it to pull heavily-depended-on files toward the
// center.
func (g *Graph) DependencyInDegree() map[string]int {
	in := make(map[string]int)
	for _, e := range g.Edges {
		if e.Kind == EdgeDependency {
			in[e.Target]++
		}
	}
	return in
}

// sortNodes orders nodes by id for deterministic output.
func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}

// sortEdges orders edges by id for deterministic output.
func sortEdges(edges []*Edge) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
