// Package liveview serves the comment list as an HTML page and pushes
// every re-render to the browser over a websocket.
package liveview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/commentsync/internal/auth"
	"github.com/ziadkadry99/commentsync/internal/controller"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS and websocket origins (dev mode)
}

// Controller is the subset of *controller.Controller the live view drives.
type Controller interface {
	Add(ctx context.Context, text string) error
	Vote(ctx context.Context, id string, isUpvote bool) error
	Delete(ctx context.Context, id string) error
	SelectSort(ctx context.Context, sortType string) error
	SelectPageSize(ctx context.Context, pageSize string) error
	Preferences() controller.Preferences
}

// NavFunc resolves the sign-in/logout button shown in the page header.
type NavFunc func(ctx context.Context) (auth.NavButton, error)

// Server is the live view HTTP server.
type Server struct {
	cfg        Config
	ctrl       Controller
	hub        *Hub
	nav        NavFunc
	log        *zap.Logger
	upgrader   websocket.Upgrader
	page       *template.Template
	router     chi.Router
	httpServer *http.Server
}

// New creates a live view server. nav may be nil.
func New(cfg Config, ctrl Controller, hub *Hub, nav NavFunc, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:  cfg,
		ctrl: ctrl,
		hub:  hub,
		nav:  nav,
		log:  log,
		page: template.Must(template.New("page").Parse(pageTemplate)),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "clients": s.hub.Clients()})
	})
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("live view listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.cfg.AllowAll {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || sameHost(origin, r.Host)
}

type pageData struct {
	Nav      *auth.NavButton
	List     template.HTML
	Sort     string
	Quantity string
	Sorts    []string
	Sizes    []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	frag, shown := s.hub.Current()
	if frag == "" {
		shown = s.ctrl.Preferences()
	}
	data := pageData{
		List:     template.HTML(frag),
		Sort:     string(shown.Sort),
		Quantity: shown.PageSize.String(),
		Sorts:    []string{"date", "rating"},
		Sizes:    []string{"all", "5", "10", "20", "50"},
	}
	if !contains(data.Sizes, data.Quantity) {
		data.Sizes = append(data.Sizes, data.Quantity)
	}
	if s.nav != nil {
		btn, err := s.nav(r.Context())
		if err != nil {
			s.log.Warn("auth status unavailable", zap.Error(err))
		} else {
			data.Nav = &btn
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.log.Error("rendering live view page", zap.Error(err))
	}
}

// actionRequest is the incoming WebSocket message format.
type actionRequest struct {
	Type   string `json:"type"` // "add", "vote", "delete", "sort" or "quantity"
	ID     string `json:"id,omitempty"`
	Text   string `json:"text,omitempty"`
	Upvote bool   `json:"upvote,omitempty"`
	Value  string `json:"value,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("live view: websocket upgrade", zap.Error(err))
		return
	}
	c := s.hub.register(conn)
	defer s.hub.unregister(c)

	if frag, p := s.hub.Current(); frag != "" {
		s.hub.sendTo(c, event{Type: "comments", HTML: frag, Sort: string(p.Sort), Quantity: p.PageSize.String()})
	}

	// Actions outlive the message that triggered them; the result
	// reaches every client through the hub.
	ctx := context.WithoutCancel(r.Context())
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("live view: websocket read", zap.Error(err))
			}
			return
		}

		var req actionRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.hub.sendTo(c, event{Type: "error", Message: "invalid message format"})
			continue
		}

		var run func() error
		switch req.Type {
		case "add":
			run = func() error { return s.ctrl.Add(ctx, req.Text) }
		case "vote":
			run = func() error { return s.ctrl.Vote(ctx, req.ID, req.Upvote) }
		case "delete":
			run = func() error { return s.ctrl.Delete(ctx, req.ID) }
		case "sort":
			run = func() error { return s.ctrl.SelectSort(ctx, req.Value) }
		case "quantity":
			run = func() error { return s.ctrl.SelectPageSize(ctx, req.Value) }
		default:
			s.hub.sendTo(c, event{Type: "error", Message: "unknown message type: " + req.Type})
			continue
		}
		go s.dispatch(req.Type, run)
	}
}

// dispatch runs an action. Failures were already pushed to clients by
// the controller's view, so they are only logged here.
func (s *Server) dispatch(kind string, run func() error) {
	err := run()
	var syncErr *controller.SyncError
	switch {
	case err == nil, errors.Is(err, controller.ErrSuperseded):
	case errors.As(err, &syncErr):
		s.log.Debug("live view action failed", zap.String("action", kind), zap.Error(err))
	default:
		s.log.Warn("live view action failed", zap.String("action", kind), zap.Error(err))
	}
}
