// Package host bridges the graph core to whatever surface embeds it. The
// core stays transport-agnostic: inbound messages arrive on a queue
// processed one at a time by a single dispatcher, and outbound commands sit
// on a queue consumed by the transport (websocket in this build). Delivery
// is fire-and-forget, at most once.
package host

import "encoding/json"

// Inbound message types delivered by the hosting surface.
const (
	MsgLoading      = "loading"
	MsgError        = "error"
	MsgDatasetReady = "dataset-ready"
)

// Outbound command types.
const (
	CmdGetDataset          = "get-dataset"
	CmdOpenFile            = "open-file"
	CmdRefresh             = "refresh"
	CmdRequestDeepAnalysis = "request-deep-analysis"
	CmdOpenSettings        = "open-settings"
)

// Inbound is the envelope for messages from the hosting surface. Fields
// beyond Type are populated per message type; enrichment types reuse the
// same envelope. Unrecognized types are ignored, not errors.
type Inbound struct {
	Type    string          `json:"type"`
	Path    string          `json:"path,omitempty"`
	Text    string          `json:"text,omitempty"`
	Error   string          `json:"error,omitempty"`
	Dataset json.RawMessage `json:"dataset,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Outbound is a command for the hosting surface.
type Outbound struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
}

// Phase describes the view lifecycle.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)
