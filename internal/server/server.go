// Package server assembles the HTTP router.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/yukikurage/legal-case-api/internal/config"
	"github.com/yukikurage/legal-case-api/internal/handlers"
	"github.com/yukikurage/legal-case-api/internal/middleware"
	"github.com/yukikurage/legal-case-api/internal/services"
)

// Dependencies is everything the router needs. Limiter may be nil, which
// disables rate limiting of login and registration.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Tokens    middleware.TokenValidator
	Auth      *services.AuthService
	Cases     *services.CaseService
	Tasks     *services.TaskService
	Documents *services.DocumentService
	Chats     *services.ChatService
	Limiter   middleware.Limiter
}

// NewRouter wires middleware, API routes and the frontend catch-all.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	log := deps.Logger

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.RequestLogger(log.With().Str("component", "http").Logger()),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSOrigins),
	)

	authHandler := handlers.NewAuthHandler(deps.Auth)
	caseHandler := handlers.NewCaseHandler(deps.Cases)
	taskHandler := handlers.NewTaskHandler(deps.Tasks)
	documentHandler := handlers.NewDocumentHandler(deps.Documents, cfg.MaxUploadBytes)
	chatHandler := handlers.NewChatHandler(deps.Chats)

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if deps.Limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{middleware.RateLimit(deps.Limiter, "auth", time.Minute, log), h}
	}

	api := r.Group("/api")
	{
		// public
		api.POST("/register", limited(authHandler.Register)...)
		api.POST("/login", limited(authHandler.Login)...)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(deps.Tokens, log))
		{
			protected.GET("/me", authHandler.GetCurrentUser)

			protected.POST("/cases", caseHandler.CreateCase)
			protected.GET("/cases", caseHandler.ListCases)
			protected.GET("/cases/:id", caseHandler.GetCase)

			protected.POST("/documents", documentHandler.UploadDocument)
			protected.GET("/documents", documentHandler.ListDocuments)

			protected.POST("/tasks", taskHandler.CreateTask)
			protected.GET("/tasks", taskHandler.ListTasks)

			protected.POST("/ai/chat", chatHandler.SendMessage)
			protected.GET("/ai/chats", chatHandler.ListChats)

			for _, role := range handlers.DashboardRoles {
				protected.GET("/"+role, handlers.Dashboard(role))
			}
		}
	}

	r.NoRoute(handlers.SPA(cfg.StaticDir))

	return r, nil
}
