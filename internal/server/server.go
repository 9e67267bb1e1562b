// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/i18ngen/internal/config"
	"github.com/jeranaias/i18ngen/internal/export"
	"github.com/jeranaias/i18ngen/internal/form"
	"github.com/jeranaias/i18ngen/internal/session"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultPort is the default port for the HTTP server.
	DefaultPort = config.DefaultPort

	// SessionCookie is the name of the cookie carrying the session ID.
	SessionCookie = "i18ngen_session"

	// PageTitle and PageSubtitle head the form page.
	PageTitle    = "New i18n File Generator"
	PageSubtitle = "Easily create localization files"

	// Version is the server version reported by /health.
	Version = "1.0.0"

	// sweepInterval is how often expired sessions are dropped.
	sweepInterval = time.Minute
)

//go:embed web
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// ============================================================================
// SERVER
// ============================================================================

// Server serves the translation form to browsers. Each browser gets its own
// form store, keyed by a session cookie.
type Server struct {
	listenAddr string

	router   *http.ServeMux
	server   *http.Server
	sessions *session.Manager
	limiter  *RateLimiter
	trust    *ProxyTrust
	maxBody  int64
	started  time.Time

	mu          sync.RWMutex
	exportCfg   config.ExportConfig
	showPreview bool

	ready chan struct{}
	addr  string
}

// NewServer creates a Server from the configuration, or from the global
// configuration when cfg is nil. If the port is 0, a free port is picked
// when the server starts.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Global()
	}

	sessionCfg := session.DefaultConfig()
	sessionCfg.Timeout = cfg.Server.SessionTimeout()
	sessionCfg.InitialRows = cfg.Form.InitialRows

	trust, err := NewProxyTrust(cfg.Server.TrustedProxies)
	if err != nil {
		// Validate rejects bad entries; a hand-built config falls back to no trust
		log.Printf("TRUSTED_PROXIES_IGNORED | error=%v", err)
		trust = nil
	}

	s := &Server{
		listenAddr:  cfg.Server.Addr(),
		router:      http.NewServeMux(),
		sessions:    session.NewManager(sessionCfg),
		limiter:     NewRateLimiter(cfg.Server.RateLimit, int(cfg.Server.RateLimit*2)),
		trust:       trust,
		maxBody:     cfg.Server.MaxBodyBytes,
		started:     time.Now(),
		exportCfg:   cfg.Export,
		showPreview: cfg.UI.ShowPreview,
		ready:       make(chan struct{}),
	}

	s.setupRoutes()
	return s
}

// Sessions returns the session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// ApplyConfig picks up export, form and session settings from a reloaded
// configuration. Listener settings need a restart.
func (s *Server) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.exportCfg = cfg.Export
	s.showPreview = cfg.UI.ShowPreview
	s.mu.Unlock()

	s.sessions.SetInitialRows(cfg.Form.InitialRows)
	s.sessions.SetTimeout(cfg.Server.SessionTimeout())
	log.Printf("SERVER_CONFIG_APPLIED | filename=%s indent=%d initial_rows=%d",
		cfg.Export.Filename, cfg.Export.Indent, cfg.Form.InitialRows)
}

func (s *Server) exportSettings() (config.ExportConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exportCfg, s.showPreview
}

// ============================================================================
// ROUTES
// ============================================================================

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	static, _ := fs.Sub(webFS, "web")

	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	// Whole-form submission for browsers without JavaScript
	s.router.HandleFunc("POST /form", s.handleForm)

	// Single actions
	s.router.HandleFunc("POST /entries", s.handleAdd)
	s.router.HandleFunc("POST /entries/{pos}/delete", s.handleRemove)
	s.router.HandleFunc("POST /entries/{pos}", s.handleUpdate)

	s.router.HandleFunc("GET /export", s.handleExport)
	s.router.HandleFunc("GET /api/entries", s.handleEntries)
	s.router.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return Chain(
		RecoveryMiddleware(),
		ClientIPMiddleware(s.trust),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(log.Default()),
		RateLimitMiddleware(s.limiter),
		BodyLimitMiddleware(s.maxBody),
	)(s.router)
}

// ============================================================================
// SESSIONS
// ============================================================================

// sessionFor returns the caller's session, creating one and setting the
// cookie when the request has none or it expired.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	sess, created := s.sessions.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// ============================================================================
// PAGE
// ============================================================================

type rowView struct {
	Index    int
	Position int
	ID       string
	Key      string
	Value    string
}

type pageData struct {
	Title       string
	Subtitle    string
	Rows        []rowView
	Filename    string
	ShowPreview bool
	Preview     string
}

// handleIndex handles GET /.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.sessionFor(w, r).Store().Snapshot()
	exportCfg, showPreview := s.exportSettings()

	data := pageData{
		Title:       PageTitle,
		Subtitle:    PageSubtitle,
		Filename:    exportCfg.Filename,
		ShowPreview: showPreview,
	}
	snap.Each(func(i int, e form.Entry) {
		data.Rows = append(data.Rows, rowView{Index: i, Position: i + 1, ID: e.ID, Key: e.Key, Value: e.Value})
	})
	if showPreview {
		// Preview is always indented for readability
		preview, err := export.NewJSONExporter(2).Export(snap)
		if err != nil {
			log.Printf("PREVIEW_FAILED | error=%v", err)
		}
		data.Preview = string(preview)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("TEMPLATE_ERROR | error=%v", err)
	}
}

// handleForm handles POST /form. All rows are applied first, then the
// button action runs against the updated form.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	store := s.sessionFor(w, r).Store()

	ids := r.PostForm["id"]
	keys := r.PostForm["key"]
	values := r.PostForm["value"]
	entries := make([]form.Entry, len(keys))
	for i := range keys {
		entries[i].Key = keys[i]
		if i < len(values) {
			entries[i].Value = values[i]
		}
		if i < len(ids) {
			entries[i].ID = ids[i]
		}
	}
	store.Replace(entries)

	action := r.PostForm.Get("action")
	switch {
	case action == "add":
		store.Add()
	case strings.HasPrefix(action, "remove:"):
		if pos, err := strconv.Atoi(strings.TrimPrefix(action, "remove:")); err == nil {
			store.Remove(pos)
		}
	case action == "export":
		s.serveExport(w, store.Snapshot())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ============================================================================
// SINGLE ACTIONS
// ============================================================================

// handleAdd handles POST /entries.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	store := s.sessionFor(w, r).Store()
	store.Add()
	s.respond(w, r, store.Snapshot())
}

// handleRemove handles POST /entries/{pos}/delete.
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	store := s.sessionFor(w, r).Store()

	pos, err := strconv.Atoi(r.PathValue("pos"))
	if err != nil || !store.Remove(pos) {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no entry at position %q", r.PathValue("pos")))
		return
	}
	s.respond(w, r, store.Snapshot())
}

// handleUpdate handles POST /entries/{pos}.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}
	store := s.sessionFor(w, r).Store()

	field, err := form.ParseField(r.PostForm.Get("field"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pos, err := strconv.Atoi(r.PathValue("pos"))
	if err != nil || !store.Update(pos, field, r.PostForm.Get("value")) {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("no entry at position %q", r.PathValue("pos")))
		return
	}
	s.respond(w, r, store.Snapshot())
}

// ============================================================================
// READS
// ============================================================================

// handleExport handles GET /export.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, s.sessionFor(w, r).Store().Snapshot())
}

func (s *Server) serveExport(w http.ResponseWriter, snap form.Snapshot) {
	exportCfg, _ := s.exportSettings()
	exporter := export.NewJSONExporter(exportCfg.Indent)
	if err := export.ServeDownload(w, snap, exporter, exportCfg.Filename); err != nil {
		log.Printf("EXPORT_FAILED | error=%v", err)
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	log.Printf("EXPORT_SERVED | entries=%d version=%d", snap.Len(), snap.Version)
}

// EntriesResponse is the body of GET /api/entries.
type EntriesResponse struct {
	Entries []form.Entry `json:"entries"`
	Version uint64       `json:"version"`
}

// handleEntries handles GET /api/entries.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	snap := s.sessionFor(w, r).Store().Snapshot()
	s.writeJSON(w, http.StatusOK, snapshotResponse(snap))
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions int    `json:"sessions"`
	Uptime   string `json:"uptime"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  Version,
		Sessions: s.sessions.Len(),
		Uptime:   session.FormatDuration(time.Since(s.started)),
	})
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.sessions.Run(ctx, sweepInterval)

	s.mu.Lock()
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.addr = formatAddr(ln.Addr())
	srv := s.server
	s.mu.Unlock()
	close(s.ready)

	log.Printf("SERVER_START | addr=%s version=%s", ln.Addr(), Version)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Ready is closed once the server is accepting connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// URL returns the browsable address once Ready is closed.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}

	log.Printf("SERVER_SHUTDOWN | sessions=%d", s.sessions.Len())
	return srv.Shutdown(ctx)
}

// ============================================================================
// HELPERS
// ============================================================================

// parseForm parses the request body and answers 413 or 400 on failure.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		if isBodyTooLarge(err) {
			s.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", s.maxBody))
			return false
		}
		s.writeError(w, http.StatusBadRequest, "invalid form body")
		return false
	}
	return true
}

// respond answers an action with the snapshot as JSON when the client asks
// for JSON, and with a redirect back to the page otherwise.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, snap form.Snapshot) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		s.writeJSON(w, http.StatusOK, snapshotResponse(snap))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func snapshotResponse(snap form.Snapshot) EntriesResponse {
	entries := snap.Entries()
	if entries == nil {
		entries = []form.Entry{}
	}
	return EntriesResponse{Entries: entries, Version: snap.Version}
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("RESPONSE_ENCODE_FAILED | error=%v", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"code":    status,
		},
	})
}
