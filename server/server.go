package server

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"

	"seo_dominator/generator"
	"seo_dominator/store"
	"seo_dominator/wordpress"
)

//go:embed docs.md
var docsMarkdown []byte

const generateTimeout = 180 * time.Second

// Server exposes the generation, audit, export, and WordPress-sync pipeline
// as a JSON API.
type Server struct {
	agent     *generator.Agent
	evaluator *wordpress.Evaluator
	settings  *store.Store
	bundles   *bundleStore
	logger    *log.Logger
}

type bundleStore struct {
	mu      sync.Mutex
	bundles map[string]generator.ContentBundle
}

func newBundleStore() *bundleStore {
	return &bundleStore{bundles: make(map[string]generator.ContentBundle)}
}

func (s *bundleStore) set(id string, b generator.ContentBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundles[id] = b
}

func (s *bundleStore) get(id string) (generator.ContentBundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bundles[id]
	return b, ok
}

// New creates a Server. evaluator may be nil; the scan endpoint then responds
// 503. settings may be nil; credentials are then never persisted or recalled.
func New(agent *generator.Agent, evaluator *wordpress.Evaluator, settings *store.Store, logger *log.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		agent:     agent,
		evaluator: evaluator,
		settings:  settings,
		bundles:   newBundleStore(),
		logger:    logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/bundles/", s.handleBundleByID)
	mux.HandleFunc("/api/wordpress/posts", s.handleWordPressPosts)
	mux.HandleFunc("/api/wordpress/posts/", s.handleWordPressUpdate)
	mux.HandleFunc("/api/wordpress/scan", s.handleWordPressScan)
	mux.HandleFunc("/api/docs", s.handleDocs)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type generateResp struct {
	BundleID string                   `json:"bundle_id"`
	Bundle   generator.ContentBundle  `json:"bundle"`
	Audit    []generator.AuditFinding `json:"audit"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var params generator.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	bundle, err := s.agent.Generate(ctx, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	id := newBundleID()
	s.bundles.set(id, bundle)
	writeJSON(w, generateResp{
		BundleID: id,
		Bundle:   bundle,
		Audit:    generator.Audit(bundle),
	})
}

// handleBundleByID serves /api/bundles/{id}, /api/bundles/{id}/audit, and
// /api/bundles/{id}/export.
func (s *Server) handleBundleByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/bundles/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	bundle, ok := s.bundles.get(id)
	if !ok {
		http.Error(w, "bundle not found", http.StatusNotFound)
		return
	}

	switch action {
	case "":
		writeJSON(w, bundle)
	case "audit":
		writeJSON(w, generator.Audit(bundle))
	case "export":
		s.writeExport(w, r, bundle)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, bundle generator.ContentBundle) {
	format := r.URL.Query().Get("format")
	var text, contentType string
	switch format {
	case "full", "":
		text, contentType = generator.ExportFullDocument(bundle), "text/html; charset=utf-8"
	case "markdown":
		text, contentType = generator.ExportMarkdown(bundle), "text/markdown; charset=utf-8"
	case "text":
		text, contentType = generator.ExportPlainText(bundle), "text/plain; charset=utf-8"
	case "widget":
		text, contentType = generator.ExportWidget(bundle), "text/html; charset=utf-8"
	default:
		http.Error(w, fmt.Sprintf("unknown export format %q", format), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write([]byte(text))
}

func (s *Server) handleWordPressPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var conn wordpress.Connection
	if err := json.NewDecoder(r.Body).Decode(&conn); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	client, resolved, err := s.wordpressClient(conn)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	posts, err := client.ListPosts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	s.persistConnection(resolved)
	writeJSON(w, posts)
}

type scanReq struct {
	Connection wordpress.Connection `json:"connection"`
	Posts      []wordpress.Post     `json:"posts,omitempty"`
}

func (s *Server) handleWordPressScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.evaluator == nil {
		http.Error(w, "evaluator not configured", http.StatusServiceUnavailable)
		return
	}
	var req scanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	posts := req.Posts
	if len(posts) == 0 {
		client, _, err := s.wordpressClient(req.Connection)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		posts, err = client.ListPosts(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}

	writeJSON(w, s.evaluator.ScanUnevaluated(r.Context(), posts))
}

type updateReq struct {
	Connection wordpress.Connection `json:"connection"`
	BundleID   string               `json:"bundleId,omitempty"`
	Title      string               `json:"title,omitempty"`
	Content    string               `json:"content,omitempty"`
}

func (s *Server) handleWordPressUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/api/wordpress/posts/")
	postID, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}
	var req updateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	title, content := req.Title, req.Content
	if req.BundleID != "" {
		bundle, ok := s.bundles.get(req.BundleID)
		if !ok {
			http.Error(w, "bundle not found", http.StatusNotFound)
			return
		}
		title, content = bundle.MetaTitle, bundle.HTMLContent
	}
	if title == "" || content == "" {
		http.Error(w, "title and content are required", http.StatusBadRequest)
		return
	}

	client, _, err := s.wordpressClient(req.Connection)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := client.UpdatePost(r.Context(), postID, title, content); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, map[string]string{"status": "updated"})
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(docsMarkdown, &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// --- Helpers ---

// wordpressClient builds a client from the request's connection, filling
// missing fields from the settings store. It returns the resolved connection
// so callers persist what was actually used, not the request's partial copy.
func (s *Server) wordpressClient(conn wordpress.Connection) (*wordpress.Client, wordpress.Connection, error) {
	if s.settings != nil {
		if conn.URL == "" {
			conn.URL = s.settings.GetString(store.KeyWPURL)
		}
		if conn.Username == "" {
			conn.Username = s.settings.GetString(store.KeyWPUsername)
		}
		if conn.AppPassword == "" {
			conn.AppPassword = s.settings.GetString(store.KeyWPPassword)
		}
	}
	client, err := wordpress.New(conn, nil, false, s.logger)
	return client, conn, err
}

// persistConnection remembers working credentials for later requests.
func (s *Server) persistConnection(conn wordpress.Connection) {
	if s.settings == nil {
		return
	}
	_ = s.settings.Set(store.KeyWPURL, conn.URL)
	_ = s.settings.Set(store.KeyWPUsername, conn.Username)
	_ = s.settings.Set(store.KeyWPPassword, conn.AppPassword)
}

func newBundleID() string {
	return strings.ReplaceAll(time.Now().Format("20060102T150405.000000000"), ".", "")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
