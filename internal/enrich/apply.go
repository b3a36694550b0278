package enrich

import (
	"github.com/codeatlas-dev/codeatlas/internal/dataset"
	"github.com/codeatlas-dev/codeatlas/internal/graph"
	"github.com/codeatlas-dev/codeatlas/internal/view"
)

// Apply patches the node named by ev in place. Events naming an unknown
// path are no-ops, never errors: enrichment is best-effort and may race a
// rescan. Events for the same path apply in arrival order, last write wins;
// a late completion for a since-collapsed node still applies.
func Apply(g *graph.Graph, st *view.State, ev Event) {
	switch ev.Type {
	case FileSummaryUpdated:
		if n := fileNode(g, ev.Path); n != nil {
			n.Summary = ev.Text
		}

	case DeepAnalysisStarted:
		if n := fileNode(g, ev.Path); n != nil {
			n.Analyzing = true
		}

	case DeepAnalysisCompleted:
		n := fileNode(g, ev.Path)
		if n == nil {
			return
		}
		n.Analyzing = false
		if ev.Payload != nil {
			n.DetailedSummary = ev.Payload.DetailedSummary
			n.Blocks = ev.Payload.Blocks
		}
		if st != nil {
			st.NodeState(n.ID).Err = ""
		}

	case DeepAnalysisFailed:
		n := fileNode(g, ev.Path)
		if n == nil {
			return
		}
		// Node-local failure: clear the in-flight flag, keep prior
		// content, surface the error on this node only.
		n.Analyzing = false
		if st != nil {
			st.NodeState(n.ID).Err = ev.Error
		}

	case DirectorySummaryUpdated:
		// A directory holding only nested directories may be missing from
		// the initial dataset; create it on the fly.
		n := g.EnsureDirectory(ev.Path)
		n.Summary = ev.Text
	}
}

// fileNode resolves a path to its file node, or nil.
func fileNode(g *graph.Graph, path string) *graph.Node {
	n := g.Node(dataset.CleanPath(path))
	if n == nil || n.Kind != graph.KindFile {
		return nil
	}
	return n
}
