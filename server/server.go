// Package server provides a local HTTP server for browsing sessions and
// streaming live summary updates over SSE.
package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/sonnes/drishti/broadcast"
	"github.com/sonnes/drishti/discover"
	"github.com/sonnes/drishti/reader"
	"github.com/sonnes/drishti/reader/claude"
)

//go:embed templates/*.html
var content embed.FS

var dashboardTmpl = template.Must(template.ParseFS(content, "templates/dashboard.html"))

// Server serves the session catalog and live updates over HTTP.
type Server struct {
	// Hub fans out live updates to SSE observers.
	Hub *broadcast.Hub
	// Root is the directory scanned for session logs.
	Root string
	// Reader derives one-shot summaries for the query endpoint. Defaults to
	// the Claude Code reader.
	Reader reader.Reader
	// Port is the TCP port to listen on.
	Port int
}

// Handler returns the routing mux for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleDashboard)
	mux.HandleFunc("GET /api/sessions", s.handleSessions)
	mux.HandleFunc("GET /api/session/{id}", s.handleSession)
	mux.HandleFunc("GET /api/session/{id}/events", s.handleEvents)
	return mux
}

// ListenAndServe starts the server on the configured port.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("serving", "addr", "http://localhost"+addr, "root", s.Root)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) reader() reader.Reader {
	if s.Reader != nil {
		return s.Reader
	}
	return &claude.Reader{}
}

func (s *Server) handleDashboard(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, nil); err != nil {
		slog.Error("render dashboard", "error", err)
	}
}

func (s *Server) handleSessions(w http.ResponseWriter, req *http.Request) {
	entries, err := discover.Sessions(s.Root)
	if err != nil {
		slog.Error("scan sessions", "root", s.Root, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

// handleSession derives a summary on demand, outside the hub. Reads never
// fail outright: an unreadable log yields an error-marker summary.
func (s *Server) handleSession(w http.ResponseWriter, req *http.Request) {
	entry, err := discover.Find(s.Root, req.PathValue("id"))
	if err != nil {
		http.NotFound(w, req)
		return
	}
	writeJSON(w, s.reader().ReadFile(entry.Path))
}

// handleEvents streams live updates for one session as SSE. The first event
// is the current catalog, the second the session's current summary, then one
// update per settled change until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	entry, err := discover.Find(s.Root, id)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	obs := &sseObserver{w: w, flusher: flusher}

	entries, err := discover.Sessions(s.Root)
	if err != nil {
		slog.Warn("scan sessions for catalog", "error", err)
	}
	if err := obs.Send(broadcast.Message{Kind: broadcast.KindCatalog, Catalog: entries}); err != nil {
		return
	}

	if err := s.Hub.Attach(entry.Path, obs); err != nil {
		slog.Warn("attach observer", "session_id", id, "error", err)
		return
	}
	defer s.Hub.Detach(entry.Path, obs)

	slog.Info("observer attached", "session_id", id, "remote", req.RemoteAddr)
	<-req.Context().Done()
	slog.Info("observer detached", "session_id", id, "remote", req.RemoteAddr)
}

// sseObserver adapts an HTTP response to the broadcast.Observer interface.
// Sends are serialized because the hub and the events handler both write.
type sseObserver struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

func (o *sseObserver) Send(msg broadcast.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(o.w, "event: %s\ndata: %s\n\n", msg.Kind, data); err != nil {
		return err
	}
	o.flusher.Flush()
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
