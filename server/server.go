// Package server exposes the store over HTTP: shortening, redirecting
// and popularity stats. It depends only on the four store operations
// plus the snapshot export surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"linkdex"
	"linkdex/keygen"
	"linkdex/snapshot"
)

// Config ...
type Config struct {
	Port int

	// SnapshotPath enables periodic persistence when non-empty
	SnapshotPath string
	SaveInterval time.Duration
}

type serverOptions struct {
	keys        *keygen.Generator
	errorLogger func(err error)
}

// Option ...
type Option func(opts *serverOptions)

func defaultErrorLogger(err error) {
	log.Println("[ERROR] server:", err)
}

func computeOptions(options []Option) *serverOptions {
	opts := &serverOptions{
		keys:        keygen.New(),
		errorLogger: defaultErrorLogger,
	}
	for _, fn := range options {
		fn(opts)
	}
	return opts
}

// WithKeyGenerator overrides the short-key generator,
// mostly for deterministic keys in tests
func WithKeyGenerator(keys *keygen.Generator) Option {
	return func(opts *serverOptions) {
		opts.keys = keys
	}
}

// WithErrorLogger configures the logger for snapshot save failures
func WithErrorLogger(logger func(err error)) Option {
	return func(opts *serverOptions) {
		opts.errorLogger = logger
	}
}

// Server ...
type Server struct {
	conf Config
	opts *serverOptions

	store linkdex.Storage
	snap  linkdex.Snapshotter

	httpServer *http.Server

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New ...
func New(store linkdex.Storage, snap linkdex.Snapshotter, conf Config, options ...Option) *Server {
	s := &Server{
		conf: conf,
		opts: computeOptions(options),

		store: store,
		snap:  snap,

		stopCh: make(chan struct{}),
	}
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", conf.Port),
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the route table, exposed separately for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/shorten", s.handleShorten)
	mux.HandleFunc("/api/popular", s.handlePopular)
	mux.HandleFunc("/api/keys", s.handleKeys)
	mux.HandleFunc("/", s.handleRedirect)
	return mux
}

// ListenAndServe serves until Shutdown, starting the periodic snapshot
// loop when configured.
func (s *Server) ListenAndServe() error {
	if s.conf.SnapshotPath != "" && s.conf.SaveInterval > 0 {
		s.wg.Add(1)
		go s.snapshotLoop()
	}

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the snapshot loop, writes a final snapshot and shuts
// the HTTP server down gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()

	if s.conf.SnapshotPath != "" {
		s.saveSnapshot()
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) snapshotLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.conf.SaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.saveSnapshot()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Server) saveSnapshot() {
	err := snapshot.Save(s.conf.SnapshotPath, s.snap.All(), s.snap.Counts())
	if err != nil {
		s.opts.errorLogger(err)
	}
}

type shortenResponse struct {
	Key      string `json:"key"`
	ShortURL string `json:"short_url"`
}

type popularURL struct {
	Key         string `json:"key"`
	OriginalURL string `json:"original_url"`
	AccessCount uint64 `json:"access_count"`
}

type popularResponse struct {
	PopularURLs []popularURL `json:"popular_urls"`
}

type keyEntry struct {
	Key         string `json:"key"`
	OriginalURL string `json:"original_url"`
}

type keysResponse struct {
	Keys []keyEntry `json:"keys"`
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleShorten(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	url := r.FormValue("url")
	if url == "" {
		http.Error(w, "missing url", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	key := s.opts.keys.NewKey(url)
	s.store.Put(key, url)

	writeJSON(w, shortenResponse{
		Key:      key,
		ShortURL: "/" + key,
	})
}

func (s *Server) handleRedirect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" || strings.Contains(key, "/") {
		http.NotFound(w, r)
		return
	}

	url, err := s.store.Get(key)
	if errors.Is(err, linkdex.ErrKeyNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	k := 10
	if param := r.URL.Query().Get("k"); param != "" {
		num, err := strconv.Atoi(param)
		if err != nil || num < 0 {
			http.Error(w, "invalid k", http.StatusBadRequest)
			return
		}
		k = num
	}

	top := s.store.TopPopular(k)

	resp := popularResponse{PopularURLs: make([]popularURL, 0, len(top))}
	for _, e := range top {
		resp.PopularURLs = append(resp.PopularURLs, popularURL{
			Key:         e.Key,
			OriginalURL: e.Value,
			AccessCount: e.Count,
		})
	}
	writeJSON(w, resp)
}

func (s *Server) handleKeys(w http.ResponseWriter, _ *http.Request) {
	entries := s.store.All()

	resp := keysResponse{Keys: make([]keyEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Keys = append(resp.Keys, keyEntry{
			Key:         e.Key,
			OriginalURL: e.Value,
		})
	}
	writeJSON(w, resp)
}
