package host

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/codeatlas-dev/codeatlas/internal/dataset"
	"github.com/codeatlas-dev/codeatlas/internal/enrich"
	"github.com/codeatlas-dev/codeatlas/internal/graph"
	"github.com/codeatlas-dev/codeatlas/internal/layout"
	"github.com/codeatlas-dev/codeatlas/internal/view"
)

// Session holds one live view of one codebase: the dataset-derived graph,
// its layout, and the interaction state. Inbound messages and user actions
// are serialized through a single lock, so the core packages never see
// concurrent mutation.
type Session struct {
	mu sync.Mutex

	layoutCfg config
	graph     *graph.Graph
	state     *view.State

	phase   Phase
	loadErr string

	notes NotesStore

	inbound  chan Inbound
	outbound chan Outbound
}

type config struct {
	layout           layout.Config
	include, exclude []string
}

// Option configures a Session.
type Option func(*Session)

// WithLayout overrides the layout force constants.
func WithLayout(cfg layout.Config) Option {
	return func(s *Session) { s.layoutCfg.layout = cfg }
}

// WithDatasetFilters sets include/exclude globs applied on dataset load.
func WithDatasetFilters(include, exclude []string) Option {
	return func(s *Session) {
		s.layoutCfg.include = include
		s.layoutCfg.exclude = exclude
	}
}

// NewSession creates an empty session in the loading phase.
func NewSession(opts ...Option) *Session {
	s := &Session{
		layoutCfg: config{layout: layout.DefaultConfig()},
		phase:     PhaseLoading,
		inbound:   make(chan Inbound, 64),
		outbound:  make(chan Outbound, 64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = view.New(nil)
	return s
}

// Inbound returns the queue the transport feeds.
func (s *Session) Inbound() chan<- Inbound { return s.inbound }

// Outbound returns the command queue the transport drains.
func (s *Session) Outbound() <-chan Outbound { return s.outbound }

// Run is the single dispatcher: it consumes inbound messages one at a time
// until ctx is done. It requests the dataset once on startup.
func (s *Session) Run(ctx context.Context) {
	s.send(Outbound{Type: CmdGetDataset})
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.inbound:
			s.Handle(msg)
		}
	}
}

// Handle processes one inbound message. Unrecognized types are ignored.
func (s *Session) Handle(msg Inbound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case MsgLoading:
		s.phase = PhaseLoading
		s.loadErr = ""

	case MsgError:
		// Dataset load failure is the only fatal error: full-screen state
		// with manual retry, no partial render.
		s.phase = PhaseError
		s.loadErr = msg.Error

	case MsgDatasetReady:
		s.loadDataset(msg.Dataset)

	case string(enrich.FileSummaryUpdated),
		string(enrich.DeepAnalysisStarted),
		string(enrich.DeepAnalysisCompleted),
		string(enrich.DeepAnalysisFailed),
		string(enrich.DirectorySummaryUpdated):
		if s.graph == nil {
			return
		}
		ev := enrich.Event{
			Type:  enrich.EventType(msg.Type),
			Path:  msg.Path,
			Text:  msg.Text,
			Error: msg.Error,
		}
		if len(msg.Payload) > 0 {
			var payload enrich.DeepAnalysis
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				log.Printf("host: %s payload for %s: %v", msg.Type, msg.Path, err)
				return
			}
			ev.Payload = &payload
		}
		enrich.Apply(s.graph, s.state, ev)

	default:
		// Not ours; the hosting surface may speak a wider protocol.
	}
}

// loadDataset rebuilds graph and layout from a full dataset delivery.
// Stickies, manual connections and surviving per-node state carry over.
func (s *Session) loadDataset(raw json.RawMessage) {
	ds, err := dataset.Decode(bytes.NewReader(raw))
	if err != nil {
		s.phase = PhaseError
		s.loadErr = err.Error()
		return
	}
	ds.Normalize(s.layoutCfg.include, s.layoutCfg.exclude)

	g := graph.Build(ds)
	layout.New(s.layoutCfg.layout).Run(g)

	s.graph = g
	s.state.Rebind(g)
	s.phase = PhaseReady
	s.loadErr = ""
}

// Retry re-requests the dataset after a fatal load error.
func (s *Session) Retry() {
	s.mu.Lock()
	s.phase = PhaseLoading
	s.loadErr = ""
	s.mu.Unlock()
	s.send(Outbound{Type: CmdGetDataset})
}

// Refresh asks the collaborator for a full rescan.
func (s *Session) Refresh() {
	s.send(Outbound{Type: CmdRefresh})
}

// OpenFile asks the host to open a file in its editor.
func (s *Session) OpenFile(path string) {
	s.send(Outbound{Type: CmdOpenFile, Path: path})
}

// OpenSettings asks the host to show its settings surface.
func (s *Session) OpenSettings() {
	s.send(Outbound{Type: CmdOpenSettings})
}

// ToggleExpand flips a node's detail panel and fires at most one
// deep-analysis request per collapsed→expanded transition. Requests are
// fire-and-forget: a node stuck analyzing is staleness, not failure, and a
// fresh expand re-requests without blocking on the stale one.
func (s *Session) ToggleExpand(id string) {
	s.mu.Lock()
	request := s.state.ToggleExpand(id)
	s.mu.Unlock()
	if request {
		s.send(Outbound{Type: CmdRequestDeepAnalysis, Path: id})
	}
}

// SetTab selects the active tab on a node's detail panel.
func (s *Session) SetTab(id string, tab view.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetTab(id, tab)
}

// ToggleTag flips visibility of a synthetic tag filter.
func (s *Session) ToggleTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ToggleTag(tag)
}

// SetShowStructure switches between summary and structure rendering.
func (s *Session) SetShowStructure(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetShowStructure(show)
}

// Search runs a query through the view state.
func (s *Session) Search(query string) []view.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.graph == nil {
		return nil
	}
	return s.state.Search(query)
}

// State exposes the interaction state for callers already on the session
// thread (transport handlers must use the exported methods instead).
func (s *Session) State() *view.State { return s.state }

// send enqueues an outbound command, dropping it when the transport has
// fallen behind. Delivery is at-most-once by contract.
func (s *Session) send(cmd Outbound) {
	select {
	case s.outbound <- cmd:
	default:
		log.Printf("host: outbound queue full, dropping %s", cmd.Type)
	}
}
