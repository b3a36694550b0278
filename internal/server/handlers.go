package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeatlas-dev/codeatlas/internal/view"
)

// nodeRequest is the shared body for node operations; ids are relative
// paths and may contain slashes, so they travel in the body, not the URL.
type nodeRequest struct {
	ID  string   `json:"id"`
	Tab view.Tab `json:"tab,omitempty"`
}

func decodeNode(w http.ResponseWriter, r *http.Request) (nodeRequest, bool) {
	var body nodeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return body, false
	}
	return body, true
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results := s.session.Search(r.URL.Query().Get("q"))
	if results == nil {
		results = []view.SearchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeNode(w, r)
	if !ok {
		return
	}
	s.session.ToggleExpand(body.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeNode(w, r)
	if !ok {
		return
	}
	if body.Tab != view.TabSummary && body.Tab != view.TabStructure {
		http.Error(w, "unknown tab", http.StatusBadRequest)
		return
	}
	s.session.SetTab(body.ID, body.Tab)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeNode(w, r)
	if !ok {
		return
	}
	s.session.ClickNode(body.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOpenFile(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeNode(w, r)
	if !ok {
		return
	}
	s.session.OpenFile(body.ID)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleToggleTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Tag == "" {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.session.ToggleTag(body.Tag)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShowStructure(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Show bool `json:"show"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.session.SetShowStructure(body.Show)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSticky(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text  string `json:"text"`
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, s.session.AddSticky(body.Text, body.Color))
}

func (s *Server) handleUpdateSticky(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text  string   `json:"text"`
		Color string   `json:"color"`
		X     *float64 `json:"x"`
		Y     *float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	s.session.UpdateSticky(id, body.Text, body.Color)
	if body.X != nil && body.Y != nil {
		s.session.MoveSticky(id, *body.X, *body.Y)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSticky(w http.ResponseWriter, r *http.Request) {
	s.session.RemoveSticky(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleConnectMode(w http.ResponseWriter, r *http.Request) {
	s.session.ToggleConnectMode(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.session.Refresh()
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	s.session.Retry()
	w.WriteHeader(http.StatusAccepted)
}
