package main

import (
	"context"
	"errors"
	"fmt"
	"go-mini-sites/internal/auth"
	"go-mini-sites/internal/cache"
	"go-mini-sites/internal/config"
	"go-mini-sites/internal/data"
	"go-mini-sites/internal/handler"
	"go-mini-sites/internal/logger"
	"go-mini-sites/internal/middleware"
	"go-mini-sites/internal/service"
	"go-mini-sites/internal/session"
	"go-mini-sites/internal/view"
	"go-mini-sites/web"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Database Initialization and Migration ---
	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	log.Info("Applying database migrations...")
	if err := data.Migrate(db, cfg.DB.Driver); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	// --- Session Management Setup ---
	sessionManager, err := session.New(cfg.Session, db, cfg.DB.Driver, cfg.Server.TLS.Enabled)
	if err != nil {
		log.Fatal(err, "Failed to initialize sessions")
	}

	// --- Authorization Setup ---
	enforcer, err := auth.NewEnforcer(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)

	// --- View Template Initialization ---
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}

	// --- Cache Initialization ---
	summaryCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer summaryCache.Close()

	// --- Dependency Injection and Handler Initialization ---
	bookService := service.NewBookService(data.NewSQLBookRepository(db), summaryCache, cfg.Cache.TTL)
	reviewService := service.NewReviewService(data.NewSQLReviewRepository(db))
	blogService := service.NewBlogService(
		data.NewSQLPostRepository(db),
		data.NewSQLCommentRepository(db),
		service.NewContentRenderer(),
	)
	challengeService := service.NewChallengeService()

	if cfg.Seed.Enabled {
		if err := service.NewSeeder(bookService, blogService, log).Run(context.Background()); err != nil {
			log.Fatal(err, "Failed to seed demo content")
		}
	}

	handlers := handler.Handlers{
		Blog:       handler.NewBlogHandler(blogService, sessionManager, viewService, log),
		Reviews:    handler.NewReviewHandler(reviewService, sessionManager, viewService, log),
		Books:      handler.NewBookHandler(bookService, viewService, log),
		Challenges: handler.NewChallengeHandler(challengeService, viewService),
		Seo:        handler.NewSeoHandler(blogService, bookService, cfg.Server.BaseURL),
	}

	// --- Router Setup ---
	router := handler.NewRouter(handlers, handler.RouterDeps{
		Sessions:  sessionManager,
		Authz:     middleware.Authorizer(enforcer, log),
		RateLimit: middleware.RateLimit(cfg.RateLimit),
		Errors:    middleware.Error(log, viewService),
		Log:       log,
	})

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
