// Package inspect serves URL decomposition and view resolution over HTTP
// and WebSocket, for tooling that wants to check how pages will navigate.
//
// Routes:
//
//	GET  /healthz               liveness
//	GET  /decompose?url=...     urlparts.Decompose as JSON
//	POST /resolve?url=...       resolve the posted markup (or fetch url when
//	                            the body is empty)
//	GET  /ws                    WebSocket; each Request message gets a Response
//	GET  /metrics               Prometheus metrics, when a gatherer is set
package inspect

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/navigate"
	"github.com/vango-dev/pageswap/pkg/resolve"
	"github.com/vango-dev/pageswap/pkg/urlparts"
	"github.com/vango-dev/pageswap/pkg/view"
)

const (
	// MaxBodySize bounds posted markup.
	MaxBodySize = 10 << 20

	// ResolveTimeout bounds a /resolve request, including any fetch.
	ResolveTimeout = 30 * time.Second
)

// Request asks for a navigation to be resolved. Markup, when empty, is
// fetched from URL.
type Request struct {
	URL    string `json:"url"`
	Markup string `json:"markup,omitempty"`
}

// Response describes a resolved navigation.
type Response struct {
	URL        string         `json:"url"`
	Parts      urlparts.Parts `json:"parts"`
	Slug       string         `json:"slug,omitempty"`
	Title      string         `json:"title,omitempty"`
	Renderer   string         `json:"renderer,omitempty"`
	Transition string         `json:"transition,omitempty"`
	Error      *ErrorBody     `json:"error,omitempty"`
}

// ErrorBody is the JSON form of a failed request.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Config configures a Server.
type Config struct {
	// Navigator resolves requests. Required.
	Navigator *navigate.Navigator

	// Gatherer, if set, is served on /metrics.
	Gatherer prometheus.Gatherer

	// AllowedOrigins lists browser origins (e.g. "http://localhost:3000")
	// that may call /resolve and /ws besides the server's own. Requests
	// without an Origin header are always accepted.
	AllowedOrigins []string

	// Logger for debug/error messages. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Server is the inspection server.
type Server struct {
	nav      *navigate.Navigator
	router   chi.Router
	upgrader websocket.Upgrader
	origins  map[string]bool
	logger   *slog.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		nav:     cfg.Navigator,
		logger:  logger,
		origins: make(map[string]bool, len(cfg.AllowedOrigins)),
	}
	for _, origin := range cfg.AllowedOrigins {
		s.origins[strings.ToLower(strings.TrimSuffix(origin, "/"))] = true
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/decompose", s.handleDecompose)
	r.With(s.requireOrigin, middleware.Timeout(ResolveTimeout)).Post("/resolve", s.handleResolve)
	r.Get("/ws", s.handleWebSocket)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// checkOrigin accepts requests without an Origin header, from the server's
// own host, or from an allowed origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if s.origins[strings.ToLower(origin)] {
		return true
	}
	u, err := neturl.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// requireOrigin answers 403 to requests that checkOrigin refuses.
func (s *Server) requireOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.checkOrigin(r) {
			s.logger.Debug("cross-origin request refused", "origin", r.Header.Get("Origin"))
			writeJSON(w, http.StatusForbidden, Response{Error: &ErrorBody{Message: "origin not allowed"}})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, Response{Error: &ErrorBody{Message: "missing url parameter"}})
		return
	}
	writeJSON(w, http.StatusOK, Response{URL: url, Parts: urlparts.Decompose(url)})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusBadRequest, Response{Error: &ErrorBody{Message: "missing url parameter"}})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{URL: url, Error: &ErrorBody{Message: err.Error()}})
		return
	}

	resp := s.Resolve(r.Context(), Request{URL: url, Markup: string(body)})
	status := http.StatusOK
	if resp.Error != nil {
		status = statusFor(resp.Error.Code)
	}
	writeJSON(w, status, resp)
}

// Resolve answers a single request.
func (s *Server) Resolve(ctx context.Context, req Request) Response {
	resp := Response{URL: req.URL, Parts: urlparts.Decompose(req.URL)}

	var (
		res *navigate.Result
		err error
	)
	if req.Markup != "" {
		res, err = s.nav.Resolve(ctx, req.URL, view.Markup(req.Markup))
	} else {
		res, err = s.nav.Navigate(ctx, req.URL)
	}
	if err != nil {
		resp.Error = errorBody(err)
		return resp
	}

	resp.Slug = res.View.Slug
	resp.Title = res.View.Title
	resp.Renderer = resolve.Name(res.Renderer)
	resp.Transition = resolve.Name(res.Transition)
	return resp
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(MaxBodySize)

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("websocket read error", "error", err)
			}
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), ResolveTimeout)
		resp := s.Resolve(ctx, req)
		cancel()
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Error("websocket write error", "error", err)
			return
		}
	}
}

func errorBody(err error) *ErrorBody {
	e := errors.FromError(err, "E200")
	return &ErrorBody{Code: e.Code, Message: e.Message, Detail: e.Detail}
}

func statusFor(code string) int {
	switch code {
	case "E300":
		return http.StatusUnprocessableEntity
	case "E201":
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Debug("response encode failed", "error", err)
	}
}
