// Package server wires the application together: router, middleware,
// dependency construction, and graceful shutdown. main.go stays minimal;
// everything between "config loaded" and "listening" happens here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/qna-service/internal/auth"
	"github.com/sakif/qna-service/internal/config"
	"github.com/sakif/qna-service/internal/handler"
	"github.com/sakif/qna-service/internal/middleware"
	"github.com/sakif/qna-service/internal/moderation"
	sqliteRepo "github.com/sakif/qna-service/internal/repository/sqlite"
	"github.com/sakif/qna-service/internal/service"
)

// Server owns the router and the resources that must be released on
// shutdown, chiefly the database connection.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, token and password
// services, the moderation client, the service layer, and the handlers,
// then mounts them on the router. Each layer receives interfaces, not
// concrete dependencies from further down.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and mounts every route.
//
//	POST   /registration        create an account
//	POST   /login               exchange credentials for a session token
//	GET    /questions           list questions (public, paginated)
//	POST   /questions           create a question        (auth)
//	PUT    /questions/{id}      replace a question       (auth)
//	DELETE /questions/{id}      delete a question        (auth)
//	POST   /answers             answer a question        (auth)
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService([]byte(s.config.TokenKey), s.config.TokenValidity)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	moderator := moderation.NewClient(s.config.BadWordsEndpoint, s.config.BadWordsAPIKey, s.logger)

	accountService := service.NewAccountService(s.db, passwords, tokens, s.logger)
	questionService := service.NewQuestionService(s.db, moderator, s.logger)
	answerService := service.NewAnswerService(s.db, moderator, s.logger)

	accountHandler := handler.NewAccountHandler(accountService, s.logger)
	questionHandler := handler.NewQuestionHandler(questionService, s.logger)
	answerHandler := handler.NewAnswerHandler(answerService, s.logger)

	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Browser clients call the API from any origin; only Content-Type and
	// Authorization cross the preflight.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	s.router.Post("/registration", accountHandler.HandleRegister)
	s.router.Post("/login", accountHandler.HandleLogin)
	s.router.Get("/questions", questionHandler.HandleList)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens, s.logger))
		r.Post("/questions", questionHandler.HandleCreate)
		r.Put("/questions/{id}", questionHandler.HandleUpdate)
		r.Delete("/questions/{id}", questionHandler.HandleDelete)
		r.Post("/answers", answerHandler.HandleCreate)
	})

	return nil
}

// Start runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
