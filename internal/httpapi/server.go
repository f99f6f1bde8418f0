package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/pingwatch/internal/domain"
	"github.com/hamed0406/pingwatch/internal/notify"
	"github.com/hamed0406/pingwatch/internal/store"
)

// Server exposes the monitor's state read-only: the latest cycle as
// JSON, the color-coded HTML page, and a websocket live feed.
type Server struct {
	Logger *zap.Logger
	Store  *store.Latest
	Hub    *Hub
	Hosts  []domain.HostSpec
	Title  string
}

func NewServer(l *zap.Logger, st *store.Latest, hub *Hub, hosts []domain.HostSpec, title string) *Server {
	if title == "" {
		title = "host status"
	}
	return &Server{Logger: l, Store: st, Hub: hub, Hosts: hosts, Title: title}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/", s.handleStatusPage)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/hosts", s.handleHosts)
	if s.Hub != nil {
		r.Get("/ws", s.Hub.Handle)
	}

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report, ok := s.Store.Latest()
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"checked_at": nil, "statuses": []domain.HostStatus{}})
		return
	}
	_ = json.NewEncoder(w).Encode(report)
}

func (s *Server) handleHosts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Hosts)
}

func (s *Server) handleStatusPage(w http.ResponseWriter, r *http.Request) {
	report, ok := s.Store.Latest()
	if !ok {
		http.Error(w, "no cycle completed yet", http.StatusServiceUnavailable)
		return
	}
	html, err := notify.RenderHTML(s.Title, report)
	if err != nil {
		s.Logger.Warn("render_error", zap.Error(err))
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}
