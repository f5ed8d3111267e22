package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yukikurage/legal-case-api/internal/config"
	"github.com/yukikurage/legal-case-api/internal/database"
	"github.com/yukikurage/legal-case-api/internal/logging"
	"github.com/yukikurage/legal-case-api/internal/middleware"
	"github.com/yukikurage/legal-case-api/internal/ratelimit"
	"github.com/yukikurage/legal-case-api/internal/repository"
	"github.com/yukikurage/legal-case-api/internal/server"
	"github.com/yukikurage/legal-case-api/internal/services"
	"github.com/yukikurage/legal-case-api/internal/storage"
	"github.com/yukikurage/legal-case-api/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info", true)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(cfg.LogLevel, !cfg.IsRelease())

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record collections
	var repos *repository.Repositories
	if cfg.UsesDatabase() {
		db, err := database.Connect(cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Warn().Err(err).Msg("failed to close database")
			}
		}()
		if err := database.Migrate(db, log); err != nil {
			return err
		}
		repos = repository.NewGormRepositories(db)
	} else {
		var err error
		repos, err = repository.NewFileRepositories(cfg.DataDir, log)
		if err != nil {
			return err
		}
		log.Info().Str("dir", cfg.DataDir).Msg("using file collections")
	}

	authority, err := token.NewAuthority(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Rate limiting for login and registration is optional
	var limiter middleware.Limiter
	if cfg.RateLimitEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		fw, err := ratelimit.NewFixedWindowLimiter(client, "legal-case:auth", cfg.AuthRateLimitPerMinute, time.Minute)
		if err != nil {
			return err
		}
		limiter = fw
		log.Info().Str("addr", cfg.RedisAddr).Int("per_minute", cfg.AuthRateLimitPerMinute).Msg("auth rate limiting enabled")
	}

	// AI chat is optional; without a key chat requests get 503
	var responder services.ChatResponder
	if ai := services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel); ai != nil {
		responder = ai
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, AI chat is disabled")
	}

	authService, err := services.NewAuthService(repos.Users, authority, cfg.BcryptCost)
	if err != nil {
		return err
	}

	router, err := server.NewRouter(server.Dependencies{
		Config:    cfg,
		Logger:    log,
		Tokens:    authority,
		Auth:      authService,
		Cases:     services.NewCaseService(repos.Cases),
		Tasks:     services.NewTaskService(repos.Tasks, repos.Cases),
		Documents: services.NewDocumentService(store, repos.Cases, cfg.MaxUploadBytes, log),
		Chats:     services.NewChatService(repos.Chats, repos.Cases, responder, log),
		Limiter:   limiter,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
