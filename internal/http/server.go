// Package http serves the wallet's JSON API: transaction CRUD, monthly
// summaries, CSV statements, preferences and a live snapshot stream.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/HeitorVic/my-wallet/internal/auth"
	"github.com/HeitorVic/my-wallet/internal/cache"
	"github.com/HeitorVic/my-wallet/internal/events"
	applog "github.com/HeitorVic/my-wallet/internal/log"
	"github.com/HeitorVic/my-wallet/internal/store"
	appweb "github.com/HeitorVic/my-wallet/web"
)

// EventPublisher forwards committed changes to the mirror queue.
// A nil publisher disables mirroring.
type EventPublisher interface {
	Publish(ctx context.Context, event *events.TransactionEvent) error
}

type summaryPayload struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	MonthName string           `json:"monthName"`
	Income    float64          `json:"income"`
	Expense   float64          `json:"expense"`
	Balance   float64          `json:"balance"`
	Credit    float64          `json:"creditExpense"`
	Breakdown []breakdownEntry `json:"breakdown"`
}

type breakdownEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Server struct {
	http.Server
	store     store.Store
	verifier  *auth.Verifier
	publisher EventPublisher

	rateLimiter  *rateLimiter
	summaryCache *cache.LRUCache[summaryPayload]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server
func NewServer(addr string, st store.Store, verifier *auth.Verifier, publisher EventPublisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            st,
		verifier:         verifier,
		publisher:        publisher,
		rateLimiter:      newRateLimiter(),
		summaryCache:     cache.NewLRUCache[summaryPayload](200, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	// Static shell (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.FileServer(http.FS(sub))
		mux.Handle("GET /", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	authed := func(h http.HandlerFunc) http.Handler {
		return s.withSecurityHeaders(s.verifier.Middleware(h))
	}
	mux.Handle("GET /api/transactions", authed(s.handleListTransactions))
	mux.Handle("POST /api/transactions", authed(s.handleCreateTransaction))
	mux.Handle("PUT /api/transactions/{id}", authed(s.handleUpdateTransaction))
	mux.Handle("DELETE /api/transactions/{id}", authed(s.handleDeleteTransaction))
	mux.Handle("GET /api/summary", authed(s.handleSummary))
	mux.Handle("GET /api/categories", authed(s.handleCategories))
	mux.Handle("GET /api/statement/export", authed(s.handleExportStatement))
	mux.Handle("POST /api/statement/import", authed(s.handleImportStatement))
	mux.Handle("GET /api/preferences", authed(s.handleGetPreferences))
	mux.Handle("PUT /api/preferences", authed(s.handleSavePreferences))
	mux.Handle("GET /api/stream", authed(s.handleStream))

	return s
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses
func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		// Generate request ID for tracing
		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		// Rate limit writes only
		if isWrite(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded, try again later", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, clientIP)
	})
}

type contextKey string

const requestIDKey contextKey = "request_id"

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the underlying writer so SSE keeps working behind
// the logging wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// startCacheCleanup drops expired summary entries periodically
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.summaryCache.CleanExpired(); cleaned > 0 {
				slog.Debug("summary cache cleanup completed", applog.FieldCount, cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) summaryKey(owner string, year, month int) string {
	return owner + ":" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

// invalidateSummaries drops every cached summary of the owner after a write
func (s *Server) invalidateSummaries(owner string) {
	s.summaryCache.DeletePrefix(owner + ":")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", applog.FieldError, err)
	}
}

type apiError struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}
