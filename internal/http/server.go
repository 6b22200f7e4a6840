// Package http exposes the JSON request surface over the domain services.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// PageDefaults bounds caller-specified page sizes.
type PageDefaults struct {
	Size    int
	MaxSize int
}

type Server struct {
	http.Server

	auth         *services.AuthService
	users        *services.UserService
	accounts     *services.AccountService
	categories   *services.CategoryService
	transactions *services.TransactionService

	pages        PageDefaults
	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string,
	auth *services.AuthService,
	users *services.UserService,
	accounts *services.AccountService,
	categories *services.CategoryService,
	transactions *services.TransactionService,
	pages PageDefaults,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		auth:         auth,
		users:        users,
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		pages:        pages,
		rateLimiter:  newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// Credential endpoints are the only rate-limited surface.
	mux.HandleFunc("POST /auth/register", s.withMiddleware(s.withRateLimit(s.handleRegister)))
	mux.HandleFunc("POST /auth/login", s.withMiddleware(s.withRateLimit(s.handleLogin)))

	mux.HandleFunc("GET /accounts/users/{userId}", s.withMiddleware(s.handleListAccounts))
	mux.HandleFunc("GET /accounts/{id}", s.withMiddleware(s.handleGetAccount))
	mux.HandleFunc("POST /accounts", s.withMiddleware(s.handleCreateAccount))
	mux.HandleFunc("DELETE /accounts/{id}", s.withMiddleware(s.handleDeleteAccount))

	mux.HandleFunc("GET /categories/users/{userId}", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /categories", s.withMiddleware(s.handleCreateCategory))
	mux.HandleFunc("DELETE /categories/{id}", s.withMiddleware(s.handleDeleteCategory))

	mux.HandleFunc("POST /transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("GET /transactions/user/{userId}", s.withMiddleware(s.handleListByUser))
	mux.HandleFunc("GET /transactions/account/{accountId}/user/{userId}", s.withMiddleware(s.handleListByAccount))
	mux.HandleFunc("GET /transactions/account/{accountId}/user/{userId}/balance", s.withMiddleware(s.handleAccountBalance))
	mux.HandleFunc("GET /transactions/category/{categoryId}/user/{userId}", s.withMiddleware(s.handleListByCategory))
	mux.HandleFunc("GET /transactions/{txnId}/user/{userId}", s.withMiddleware(s.handleGetTransaction))
	mux.HandleFunc("DELETE /transactions/{txnId}/user/{userId}", s.withMiddleware(s.handleDeleteTransaction))

	// Reporting aggregates live under /reports to keep the mux patterns
	// disjoint from single-transaction routes.
	mux.HandleFunc("GET /reports/user/{userId}/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("GET /reports/user/{userId}/trend", s.withMiddleware(s.handleMonthlyTrend))
	mux.HandleFunc("GET /reports/user/{userId}/by-category", s.withMiddleware(s.handleExpenseByCategory))

	mux.HandleFunc("GET /users/me", s.withMiddleware(s.handleGetProfile))
	mux.HandleFunc("PUT /users/me", s.withMiddleware(s.handleUpdateProfile))
	mux.HandleFunc("PUT /users/me/password", s.withMiddleware(s.handleChangePassword))
	mux.HandleFunc("DELETE /users/me", s.withMiddleware(s.handleDeleteUser))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds security headers and structured request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		level := slog.LevelInfo
		if rw.statusCode >= 500 {
			level = slog.LevelError
		} else if rw.statusCode >= 400 {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "Request completed",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// withRateLimit rejects clients that exceed the per-IP budget.
func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)
		if !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, clientIP, log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeErrorMessage(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next(w, r)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
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

// pageRequest builds a PageRequest from query parameters, clamped to the
// configured bounds. Sort follows the "column,direction" convention with
// transaction date descending as the default.
func (s *Server) pageRequest(r *http.Request) core.PageRequest {
	return parsePageRequest(r.URL.Query(), s.pages)
}
