package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/ai"
	"github.com/alexispparra/roots-sub000/internal/attachments"
	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/config"
	"github.com/alexispparra/roots-sub000/internal/handlers"
	"github.com/alexispparra/roots-sub000/internal/importer"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/logger"
	"github.com/alexispparra/roots-sub000/internal/middleware/requestlog"
	"github.com/alexispparra/roots-sub000/internal/storage/postgres"
	"github.com/alexispparra/roots-sub000/internal/watch"
)

// Dependencies carries everything the router needs. Optional integrations
// (receipts, ai, importer) may be nil; their endpoints answer 503.
type Dependencies struct {
	Repos    postgres.RepositoryContainer
	Ledger   *ledger.Service
	Hub      *watch.Hub
	Auth     *auth.Service
	Tokens   *auth.TokenIssuer
	Receipts *attachments.Store
	AI       *ai.Client
	Importer *importer.Importer
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	deps       Dependencies
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout: 15 * time.Second,
		// The watch stream stays open indefinitely; WriteTimeout would
		// cut it off.
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(requestlog.New())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	// Inicializar handlers
	authHandler := handlers.NewAuthHandler(s.deps.Auth)
	projectHandler := handlers.NewProjectHandler(s.deps.Ledger)
	categoryHandler := handlers.NewCategoryHandler(s.deps.Ledger, s.deps.AI)
	transactionHandler := handlers.NewTransactionHandler(s.deps.Ledger, s.deps.Receipts)
	participantHandler := handlers.NewParticipantHandler(s.deps.Ledger)
	calendarHandler := handlers.NewCalendarHandler(s.deps.Ledger)
	supplierHandler := handlers.NewSupplierHandler(s.deps.Repos.Suppliers())
	watchHandler := handlers.NewWatchHandler(s.deps.Hub)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := s.deps.Repos.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"message": "Roots API is running",
			"status":  status,
		})
	})

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/reset-password/request", authHandler.RequestPasswordReset)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)

			session := authRoutes.Group("", auth.Middleware(s.deps.Tokens))
			{
				session.GET("/me", authHandler.Me)
				session.PUT("/profile", authHandler.UpdateProfile)
				session.PUT("/password", authHandler.ChangePassword)
			}
		}

		projects := api.Group("/projects", auth.Middleware(s.deps.Tokens))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/watch", watchHandler.WatchProjects)
			projects.GET("/:project_id", projectHandler.GetProject)
			projects.PATCH("/:project_id", projectHandler.UpdateProject)
			projects.DELETE("/:project_id", projectHandler.DeleteProject)
			projects.GET("/:project_id/summary", projectHandler.GetSummary)
			projects.GET("/:project_id/role", projectHandler.GetRole)

			projects.POST("/:project_id/categories", categoryHandler.AddCategory)
			projects.PUT("/:project_id/categories/:name", categoryHandler.UpdateCategory)
			projects.DELETE("/:project_id/categories/:name", categoryHandler.DeleteCategory)
			projects.POST("/:project_id/categories/prioritize", categoryHandler.PrioritizeCategories)

			projects.POST("/:project_id/transactions", transactionHandler.AddTransaction)
			projects.PATCH("/:project_id/transactions/:transaction_id", transactionHandler.UpdateTransaction)
			projects.DELETE("/:project_id/transactions/:transaction_id", transactionHandler.DeleteTransaction)
			projects.POST("/:project_id/transactions/:transaction_id/receipt", transactionHandler.UploadReceipt)

			projects.POST("/:project_id/participants", participantHandler.AddParticipant)
			projects.PUT("/:project_id/participants/:email/role", participantHandler.ChangeParticipantRole)
			projects.DELETE("/:project_id/participants/:email", participantHandler.RemoveParticipant)

			projects.POST("/:project_id/events", calendarHandler.AddEvent)
			projects.POST("/:project_id/events/:event_id/toggle", calendarHandler.ToggleEvent)
			projects.DELETE("/:project_id/events/:event_id", calendarHandler.DeleteEvent)

			if s.deps.Importer != nil {
				importHandler := handlers.NewImportHandler(s.deps.Importer)
				projects.POST("/:project_id/import", importHandler.ImportSpreadsheet)
			}
		}

		suppliers := api.Group("/suppliers", auth.Middleware(s.deps.Tokens))
		{
			suppliers.GET("", supplierHandler.ListSuppliers)
			suppliers.POST("", supplierHandler.CreateSupplier)
			suppliers.GET("/:supplier_id", supplierHandler.GetSupplier)
			suppliers.PUT("/:supplier_id", supplierHandler.UpdateSupplier)
			suppliers.DELETE("/:supplier_id", supplierHandler.DeleteSupplier)
		}
	}

	return router
}
