// Package mockapi is an in-memory implementation of the blog content API.
// It backs local development of the client and its integration tests.
package mockapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/blog-frontend/config"
	"github.com/rpupo63/blog-frontend/errs"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Options configures the fake API router
type Options struct {
	JWTSecret       []byte
	TokenTTL        time.Duration
	AdminUsername   string
	AdminPassword   string
	AcceptedOrigins []string
	Logger          zerolog.Logger
	Now             func() time.Time
}

// NewRouter builds the /api router over store
func NewRouter(opts Options, store *Store) (*chi.Mux, error) {
	if len(opts.JWTSecret) == 0 {
		return nil, errs.NewMissingRequiredFieldError("JWT_SECRET")
	}
	if opts.AdminUsername == "" || opts.AdminPassword == "" {
		return nil, errs.NewMissingRequiredFieldError("ADMIN_USERNAME/ADMIN_PASSWORD")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	tokens := tokenIssuer{secret: opts.JWTSecret, ttl: opts.TokenTTL, now: opts.Now}
	logger := opts.Logger

	chiRouter := chi.NewRouter()
	chiRouter.Use(recoverPanics(logger))
	chiRouter.Use(requestLogger(logger))
	chiRouter.Use(corsCheck(opts.AcceptedOrigins, NewResponder(logger)))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return originAllowed(opts.AcceptedOrigins, origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	handlers := routeHandlers{
		postHandler:    newPostHandler(logger, store),
		commentHandler: newCommentHandler(logger, store),
		tagHandler:     newTagHandler(logger, store),
		authHandler:    newAuthHandler(logger, tokens, opts.AdminUsername, passwordHash),
	}
	setupRoutes(chiRouter, handlers, newAuthMiddleware(logger, tokens))

	return chiRouter, nil
}

type Server struct {
	*http.Server
	logger zerolog.Logger
}

// NewServer reads its settings from the config map and serves a fresh store
func NewServer(c map[string]string, store *Store, logger zerolog.Logger) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	var origins []string
	for _, origin := range strings.Split(config.GetString(c, "ACCEPTED_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	router, err := NewRouter(Options{
		JWTSecret:       []byte(config.GetString(c, "JWT_SECRET", "")),
		TokenTTL:        time.Duration(config.GetInt(c, "TOKEN_TTL_MINUTES", 24*60)) * time.Minute,
		AdminUsername:   config.GetString(c, "ADMIN_USERNAME", "admin"),
		AdminPassword:   config.GetString(c, "ADMIN_PASSWORD", "admin123"),
		AcceptedOrigins: origins,
		Logger:          logger,
	}, store)
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{Server: server, logger: logger}, nil
}

func (s Server) Start(errChannel chan<- error) {
	s.logger.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	s.logger.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		s.logger.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		s.logger.Info().Msg("HttpServer gracefully shut down")
	}
}
