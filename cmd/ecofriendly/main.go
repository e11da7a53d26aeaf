// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/Laure-Riglet/eco-friendly-api/internal/cache"
	"github.com/Laure-Riglet/eco-friendly-api/internal/config"
	"github.com/Laure-Riglet/eco-friendly-api/internal/handler"
	"github.com/Laure-Riglet/eco-friendly-api/internal/handler/api"
	"github.com/Laure-Riglet/eco-friendly-api/internal/imaging"
	"github.com/Laure-Riglet/eco-friendly-api/internal/middleware"
	"github.com/Laure-Riglet/eco-friendly-api/internal/render"
	"github.com/Laure-Riglet/eco-friendly-api/internal/scheduler"
	"github.com/Laure-Riglet/eco-friendly-api/internal/session"
	"github.com/Laure-Riglet/eco-friendly-api/internal/store"
	"github.com/Laure-Riglet/eco-friendly-api/internal/version"
	"github.com/Laure-Riglet/eco-friendly-api/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "eco-friendly - content backoffice and API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_DB_DRIVER         Database driver: sqlite|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_DB_PATH           SQLite database path (default: ./data/eco.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_DB_DSN            MySQL DSN (required when driver is mysql)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_UPLOADS_DIR       Uploaded pictures directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ECO_DO_SEED           Seed the default admin account (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("eco-friendly %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger: human-readable text in development, JSON in production
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	var logHandler slog.Handler
	if cfg.IsDevelopment() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	slog.Info("starting", "version", versionInfo.Version, "env", cfg.Env)

	// Ensure data and uploads directories exist
	if cfg.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	// Initialize database
	dsn := cfg.DBPath
	if cfg.DBDriver == config.DriverMySQL {
		dsn = cfg.DBDSN
	}
	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.NewDB(cfg.DBDriver, dsn)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.DBDriver, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize cache
	cacher, err := cache.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	categoryCache := cache.NewCategories(cacher)
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Picture processor for article and category uploads
	processor := imaging.NewProcessor(cfg.UploadsDir)

	// Start the maintenance scheduler (reset request and session purges)
	sched := scheduler.New(db, cfg.DBDriver, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Create router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(sessionManager.LoadAndSave)

	// CSRF protection applies globally; the read-only public API is
	// exempted by path.
	r.Use(middleware.SkipCSRF("/v2/categories"))
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	r.Use(middleware.CSRF(csrfConfig))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	slog.Info("login protection initialized")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection, cfg, logger)
	dashboardHandler := handler.NewDashboardHandler(db, renderer, sessionManager)
	articlesHandler := handler.NewArticlesHandler(db, renderer, sessionManager, processor)
	advicesHandler := handler.NewAdvicesHandler(db, renderer, sessionManager)
	categoriesHandler := handler.NewCategoriesHandler(db, renderer, sessionManager, processor, categoryCache)
	quizzesHandler := handler.NewQuizzesHandler(db, renderer, sessionManager)
	usersHandler := handler.NewUsersHandler(db, renderer, sessionManager)
	apiCategoriesHandler := api.NewCategoriesHandler(db, categoryCache)

	// Authentication routes, brute-force protected
	r.Group(func(r chi.Router) {
		r.Use(loginProtection.Middleware())

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)
		r.Get(handler.RouteForgotPassword, authHandler.ForgotPasswordForm)
		r.Post(handler.RouteForgotPassword, authHandler.ForgotPassword)
		r.Get(handler.RouteResetPassword, authHandler.ResetPasswordForm)
		r.Post(handler.RouteResetPassword, authHandler.ResetPassword)
	})

	// Backoffice routes, session required
	r.Route("/backoffice", func(r chi.Router) {
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		r.Get(handler.RouteRoot, dashboardHandler.Show)

		r.Get(handler.RouteArticles, articlesHandler.List)
		r.Get(handler.RouteArticles+handler.RouteSuffixNew, articlesHandler.NewForm)
		r.Post(handler.RouteArticles+handler.RouteSuffixNew, articlesHandler.Create)
		r.Get(handler.RouteArticlesID, articlesHandler.Show)
		r.Get(handler.RouteArticlesID+"/edit", articlesHandler.EditForm)
		r.Post(handler.RouteArticlesID+"/edit", articlesHandler.Update)
		r.Post(handler.RouteArticlesID+"/deactivate", articlesHandler.Deactivate)
		r.Post(handler.RouteArticlesID+"/reactivate", articlesHandler.Reactivate)

		r.Get(handler.RouteAdvices, advicesHandler.List)
		r.Get(handler.RouteAdvices+handler.RouteSuffixNew, advicesHandler.NewForm)
		r.Post(handler.RouteAdvices+handler.RouteSuffixNew, advicesHandler.Create)
		r.Get(handler.RouteAdvicesID, advicesHandler.Show)
		r.Get(handler.RouteAdvicesID+"/edit", advicesHandler.EditForm)
		r.Post(handler.RouteAdvicesID+"/edit", advicesHandler.Update)
		r.Post(handler.RouteAdvicesID+"/deactivate", advicesHandler.Deactivate)
		r.Post(handler.RouteAdvicesID+"/reactivate", advicesHandler.Reactivate)

		r.Get(handler.RouteQuizzes, quizzesHandler.List)
		r.Get(handler.RouteQuizzes+handler.RouteSuffixNew, quizzesHandler.NewForm)
		r.Post(handler.RouteQuizzes+handler.RouteSuffixNew, quizzesHandler.Create)
		r.Get(handler.RouteQuizzesID+"/edit", quizzesHandler.EditForm)
		r.Post(handler.RouteQuizzesID+"/edit", quizzesHandler.Update)
		r.Post(handler.RouteQuizzesID+"/delete", quizzesHandler.Delete)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get(handler.RouteCategories, categoriesHandler.List)
			r.Get(handler.RouteCategories+handler.RouteSuffixNew, categoriesHandler.NewForm)
			r.Post(handler.RouteCategories+handler.RouteSuffixNew, categoriesHandler.Create)
			r.Get(handler.RouteCategoriesID+"/edit", categoriesHandler.EditForm)
			r.Post(handler.RouteCategoriesID+"/edit", categoriesHandler.Update)
			r.Post(handler.RouteCategoriesID+"/toggle", categoriesHandler.Toggle)

			r.Get(handler.RouteUsers, usersHandler.List)
			r.Post(handler.RouteUsersID+"/toggle", usersHandler.Toggle)
		})
	})

	// Public JSON API, rate limited per IP
	r.Route("/v2", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(10, 20))
		r.Get("/categories", apiCategoriesHandler.List)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/backoffice", http.StatusSeeOther)
	})

	// Static assets and uploaded pictures
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // allow large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
