// Package enrich applies incremental enrichment events from the analysis
// collaborator to an already-built graph. Events patch node data in place;
// they never re-derive graph structure and never re-run layout.
package enrich

import (
	"github.com/codeatlas-dev/codeatlas/internal/dataset"
)

// EventType enumerates the closed set of enrichment events.
type EventType string

const (
	FileSummaryUpdated      EventType = "file-summary-updated"
	DeepAnalysisStarted     EventType = "deep-analysis-started"
	DeepAnalysisCompleted   EventType = "deep-analysis-completed"
	DeepAnalysisFailed      EventType = "deep-analysis-failed"
	DirectorySummaryUpdated EventType = "directory-summary-updated"
)

// DeepAnalysis is the payload of a completed deep analysis: a detailed
// summary plus the file's ordered block structure.
type DeepAnalysis struct {
	DetailedSummary string          `json:"detailedSummary"`
	Blocks          []dataset.Block `json:"blocks"`
}

// Event is one enrichment message naming a target path.
type Event struct {
	Type    EventType     `json:"type"`
	Path    string        `json:"path"`
	Text    string        `json:"text,omitempty"`
	Error   string        `json:"error,omitempty"`
	Payload *DeepAnalysis `json:"payload,omitempty"`
}
