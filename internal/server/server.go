// Package server provides the read-only HTTP API over the generated data
// documents and SVG cards.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/szmyty/profile/internal/config"
	"github.com/szmyty/profile/internal/metrics"
)

// Server serves the fetched JSON documents and rendered cards.
type Server struct {
	httpServer *http.Server
	cfg        config.Config
	recorder   *metrics.Recorder
	log        *zap.Logger
}

// New creates a server over the configured data and output directories.
func New(cfg config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:      cfg,
		recorder: metrics.NewRecorder(cfg.MetricsDir, log),
		log:      log.Named("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/weather", s.dataHandler("weather.json"))
	mux.HandleFunc("GET /api/developer", s.dataHandler("developer.json"))
	mux.HandleFunc("GET /api/oura", s.dataHandler("health.json"))
	mux.HandleFunc("GET /api/mood", s.handleMood)
	mux.HandleFunc("GET /api/soundcloud", s.dataHandler("soundcloud.json"))
	mux.HandleFunc("GET /api/quote", s.dataHandler("quote.json"))
	mux.HandleFunc("GET /api/location", s.dataHandler("weather.json"))
	mux.HandleFunc("GET /api/theme", s.handleTheme)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/cards/{name}", s.handleCard)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening for requests and blocks until an interrupt signal,
// then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	s.log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers for the dashboard frontend.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.errorResponse(w, http.StatusNotFound, "not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"name":    "Profile Engine API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"weather":    "/api/weather",
			"developer":  "/api/developer",
			"oura":       "/api/oura",
			"mood":       "/api/mood",
			"soundcloud": "/api/soundcloud",
			"quote":      "/api/quote",
			"location":   "/api/location",
			"theme":      "/api/theme",
			"status":     "/api/status",
			"cards":      "/api/cards/{name}",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy", "service": "profile-engine-api"})
}

// dataHandler serves a JSON document from the data directory.
func (s *Server) dataHandler(dataFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.serveJSONFile(w, filepath.Join(s.cfg.DataDir, dataFile))
	}
}

// handleMood serves the mood document, with a neutral default when the mood
// engine has not run yet.
func (s *Server) handleMood(w http.ResponseWriter, _ *http.Request) {
	moodPath := filepath.Join(s.cfg.DataDir, "mood.json")
	if _, err := os.Stat(moodPath); os.IsNotExist(err) {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"mood_name":  "Unknown",
			"mood_score": 50,
			"date":       nil,
		})
		return
	}
	s.serveJSONFile(w, moodPath)
}

func (s *Server) handleTheme(w http.ResponseWriter, _ *http.Request) {
	s.serveJSONFile(w, s.cfg.ThemePath)
}

// handleStatus serves the workflow metrics store.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"workflows": s.recorder.LoadAll(),
	})
}

// handleCard serves a rendered SVG from the output directory. The name is
// restricted to a single path element to keep traversal out.
func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	name = strings.TrimSuffix(name, ".svg")
	if name == "" || name != path.Base(name) || strings.ContainsAny(name, "./\\") {
		s.errorResponse(w, http.StatusBadRequest, "invalid card name")
		return
	}

	raw, err := os.ReadFile(filepath.Join(s.cfg.OutputDir, name+".svg"))
	if err != nil {
		if os.IsNotExist(err) {
			s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("card not found: %s", name))
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to read card")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// serveJSONFile streams a JSON document after checking it actually parses,
// so a half-written file never reaches clients as truncated JSON.
func (s *Server) serveJSONFile(w http.ResponseWriter, filePath string) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.errorResponse(w, http.StatusNotFound, fmt.Sprintf("data file not found: %s", filepath.Base(filePath)))
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "failed to read data file")
		return
	}
	if !json.Valid(raw) {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("invalid JSON in file %s", filepath.Base(filePath)))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
