// Package webui serves the browser front-end: upload a background and
// icons, generate a thumbnail, preview and download it.
package webui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"thumbforge/config"
	"thumbforge/logging"
	"thumbforge/thumbnail"
)

// resultsFile is the on-disk index of generated thumbnails, so
// download links survive a restart.
const resultsFile = ".results.json"

// Pipeline produces a finished thumbnail file for a request.
type Pipeline interface {
	Generate(ctx context.Context, req thumbnail.Request, outPath string) error
}

// Result is one generated thumbnail available for download.
type Result struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	File    string    `json:"file"` // filename within the results dir
	Format  string    `json:"format"`
	Created time.Time `json:"created"`
}

// Server handles thumbnail web requests
type Server struct {
	cfg      *config.Config
	pipeline Pipeline
	results  map[string]*Result
	mu       sync.RWMutex
	httpSrv  *http.Server
	log      *logrus.Entry
	done     chan struct{}
}

// NewServer creates a new web UI server
func NewServer(cfg *config.Config, pipeline Pipeline) (*Server, error) {
	for _, dir := range []string{cfg.Server.UploadDir, cfg.Server.ResultsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		results:  make(map[string]*Result),
		log:      logging.WithFields(logging.Fields{"component": "webui"}),
		done:     make(chan struct{}),
	}

	if err := s.loadResults(); err != nil {
		s.log.Warnf("Failed to load results index: %v", err)
	}

	return s, nil
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/download/{id}", s.handleDownload).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

// Start runs the HTTP server until Shutdown. A background ticker sweeps
// expired uploads and results hourly.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepLoop()

	s.log.Infof("Web UI listening on http://%s", addr)
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully and runs a final sweep.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.done)
	s.sweepOldFiles()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) sweepLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweepOldFiles()
		case <-s.done:
			return
		}
	}
}

// sweepOldFiles removes uploads and results older than the retention
// window, and drops their index entries.
func (s *Server) sweepOldFiles() {
	cutoff := time.Now().Add(-time.Duration(s.cfg.Server.RetentionHours) * time.Hour)

	for _, dir := range []string{s.cfg.Server.UploadDir, s.cfg.Server.ResultsDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || entry.Name() == resultsFile {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				s.log.Warnf("Failed to remove stale file %s: %v", entry.Name(), err)
			} else {
				s.log.Infof("Removed stale file: %s", entry.Name())
			}
		}
	}

	s.mu.Lock()
	for id, res := range s.results {
		if res.Created.Before(cutoff) {
			delete(s.results, id)
		}
	}
	s.mu.Unlock()

	if err := s.saveResults(); err != nil {
		s.log.Warnf("Failed to save results index: %v", err)
	}
}

func (s *Server) resultsPath() string {
	return filepath.Join(s.cfg.Server.ResultsDir, resultsFile)
}

// saveResults persists the results index to disk
func (s *Server) saveResults() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.results, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal results index: %w", err)
	}

	if err := os.WriteFile(s.resultsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write results index: %w", err)
	}
	return nil
}

// loadResults loads the results index from disk
func (s *Server) loadResults() error {
	data, err := os.ReadFile(s.resultsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read results index: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, &s.results); err != nil {
		return fmt.Errorf("failed to unmarshal results index: %w", err)
	}

	s.log.Infof("Loaded %d results from %s", len(s.results), s.resultsPath())
	return nil
}
