package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/semaphore"
)

// ServerConfig holds HTTP server configuration. Mirrors the teacher's
// api.ServerConfig shape.
type ServerConfig struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxConcurrent int64
	CORSOrigin    string
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:          addr,
		ReadTimeout:   5 * time.Second,
		WriteTimeout:  5 * time.Second,
		MaxConcurrent: int64(runtime.NumCPU() * 2),
		CORSOrigin:    "",
	}
}

// newServer creates an HTTP server with all routes and middleware.
func newServer(cfg ServerConfig, handlers *Handlers, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	sem := semaphore.NewWeighted(cfg.MaxConcurrent)

	mux.HandleFunc("POST /api/v1/decode", withMiddleware(handlers.HandleDecode, sem, cfg, logger))
	mux.HandleFunc("GET /api/v1/health", withMiddleware(handlers.HandleHealth, sem, cfg, logger))

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// listenAndServe starts the server and blocks until a shutdown signal.
func listenAndServe(srv *http.Server, logger *slog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// withMiddleware wraps a handler with security headers, CORS, a
// semaphore-bounded concurrency limit, panic recovery, a request timeout,
// and structured access logging.
func withMiddleware(handler http.HandlerFunc, sem *semaphore.Weighted, cfg ServerConfig, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")

		if cfg.CORSOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
		}

		if !sem.TryAcquire(1) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, `{"error":"service_unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		defer sem.Release(1)

		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic", "value", rec)
				http.Error(w, `{"error":"internal_error"}`, http.StatusInternalServerError)
			}
		}()

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		start := time.Now()
		handler(w, r.WithContext(ctx))
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	}
}
