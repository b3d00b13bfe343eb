// Package web provides an HTTP status server for the bcd-clock daemon.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sweeney/bcd-clock/internal/adjust"
	"github.com/sweeney/bcd-clock/internal/bcdtime"
	"github.com/sweeney/bcd-clock/internal/logger"
	"github.com/sweeney/bcd-clock/internal/status"
)

// adjustTimeout bounds how long a request waits for the main loop.
const adjustTimeout = 2 * time.Second

// Server serves the status page over HTTP.
type Server struct {
	httpServer *http.Server
	tracker    *status.Tracker
	adjustCh   chan<- adjust.Request
}

// New creates a Server that reads state from the given tracker.
// Adjustment requests are sent on adjustCh; a nil adjustCh disables
// /api/clock. A nil metrics handler disables /metrics.
func New(addr string, tracker *status.Tracker, adjustCh chan<- adjust.Request, metrics http.Handler) *Server {
	s := &Server{tracker: tracker, adjustCh: adjustCh}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/index.html", s.handleIndex)
	mux.HandleFunc("/index.json", s.handleJSON)
	mux.HandleFunc("/api/clock", s.handleAdjust)
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's request router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderHTML(w, snap); err != nil {
		logger.Errorf("render status page: %v", err)
	}
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}

// handleAdjust applies one adjustment through the main loop and answers with
// the resulting status.
func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if s.adjustCh == nil {
		writeError(w, http.StatusNotFound, "adjustment disabled")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd, err := adjust.Parse(r.Form)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), adjustTimeout)
	defer cancel()

	req := adjust.NewRequest(cmd)
	select {
	case s.adjustCh <- req:
	case <-ctx.Done():
		writeError(w, http.StatusServiceUnavailable, "clock busy")
		return
	}

	select {
	case err := <-req.Reply:
		if err != nil {
			code := http.StatusInternalServerError
			if errors.Is(err, bcdtime.ErrOutOfRange) {
				code = http.StatusUnprocessableEntity
			}
			writeError(w, code, err.Error())
			return
		}
	case <-ctx.Done():
		writeError(w, http.StatusServiceUnavailable, "clock did not answer")
		return
	}

	logger.Infof("clock adjusted via http: %s", cmd)
	s.handleJSON(w, r)
}
