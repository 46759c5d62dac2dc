// Package server exposes the money book over an HTTP JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gitlab.com/yelinaung/moneybook/internal/config"
	"gitlab.com/yelinaung/moneybook/internal/database"
	"gitlab.com/yelinaung/moneybook/internal/logger"
	"gitlab.com/yelinaung/moneybook/internal/repository"
)

// sessionCookie is the cookie carrying the login session token. Clients
// may send the token as a "Bearer" Authorization header instead.
const sessionCookie = "moneybook_session"

// Server wires the repositories to the HTTP routes.
type Server struct {
	http.Server

	cfg          *config.Config
	users        *repository.UserRepository
	sessions     *repository.SessionRepository
	categories   *repository.CategoryRepository
	transactions *repository.TransactionRepository
}

// New builds the server with all routes registered.
func New(cfg *config.Config, db database.PGXDB) *Server {
	s := &Server{
		cfg:          cfg,
		users:        repository.NewUserRepository(db),
		sessions:     repository.NewSessionRepository(db),
		categories:   repository.NewCategoryRepository(db),
		transactions: repository.NewTransactionRepository(db),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.Handle("POST /api/logout", s.requireSession(s.handleLogout))

	mux.Handle("GET /api/profile", s.requireSession(s.handleGetProfile))
	mux.Handle("PUT /api/profile", s.requireSession(s.handleUpdateProfile))
	mux.Handle("DELETE /api/profile", s.requireSession(s.handleDeleteProfile))
	mux.Handle("GET /api/profile/summary", s.requireSession(s.handleProfileSummary))

	mux.Handle("GET /api/categories", s.requireSession(s.handleListCategories))
	mux.Handle("POST /api/categories", s.requireSession(s.handleCreateCategory))
	mux.Handle("PUT /api/categories/{id}", s.requireSession(s.handleRenameCategory))
	mux.Handle("DELETE /api/categories/{id}", s.requireSession(s.handleDeleteCategory))

	mux.Handle("GET /api/transactions", s.requireSession(s.handleListTransactions))
	mux.Handle("POST /api/transactions", s.requireSession(s.handleCreateTransaction))
	mux.Handle("GET /api/transactions/{id}", s.requireSession(s.handleGetTransaction))
	mux.Handle("PUT /api/transactions/{id}", s.requireSession(s.handleUpdateTransaction))
	mux.Handle("DELETE /api/transactions/{id}", s.requireSession(s.handleDeleteTransaction))
	mux.Handle("GET /api/transactions/export.csv", s.requireSession(s.handleExportCSV))

	mux.Handle("GET /api/summary/daily", s.requireSession(s.handleDailySummary))
	mux.Handle("GET /api/summary/monthly", s.requireSession(s.handleMonthlySummary))
	mux.Handle("GET /api/summary/yearly", s.requireSession(s.handleYearlySummary))

	mux.Handle("GET /api/breakdown", s.requireSession(s.handleBreakdown))
	mux.Handle("GET /api/breakdown/chart.png", s.requireSession(s.handleBreakdownChart))

	handler := s.withRequestLog(s.withSecurityHeaders(mux))

	s.Server = http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           otelhttp.NewHandler(handler, "moneybook"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until the context is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("addr", s.Addr).Msg("HTTP server listening")
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
