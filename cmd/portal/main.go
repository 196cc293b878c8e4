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

	"github.com/olegiv/portal-go/internal/auth"
	"github.com/olegiv/portal-go/internal/config"
	"github.com/olegiv/portal-go/internal/geoip"
	"github.com/olegiv/portal-go/internal/handler"
	"github.com/olegiv/portal-go/internal/i18n"
	"github.com/olegiv/portal-go/internal/logging"
	"github.com/olegiv/portal-go/internal/middleware"
	"github.com/olegiv/portal-go/internal/render"
	"github.com/olegiv/portal-go/internal/service"
	"github.com/olegiv/portal-go/internal/session"
	"github.com/olegiv/portal-go/internal/store"
	"github.com/olegiv/portal-go/internal/version"
	"github.com/olegiv/portal-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// options holds the command line flags that change what run does.
type options struct {
	seedSample  bool
	createAdmin string
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	var opts options
	flag.BoolVar(&opts.seedSample, "seed-sample", false, "Add sample sections, cards and factory buttons")
	flag.StringVar(&opts.createAdmin, "create-admin", "", "Create or reset an admin account (email:password) and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portal - internal systems link dashboard\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_DB_PATH           SQLite database path (default: ./data/portal.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SERVER_HOST       Listen host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_LOG_LEVEL         debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_UPLOADS_DIR       Branding upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_MAX_UPLOAD_MB     Largest accepted upload in MB (default: 10)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_GEOIP_DB_PATH     MaxMind country database for click analytics (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_DEFAULT_LOCALE    base|vi|zh_hant|zh_hans (default: base)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ADMIN_EMAIL       Initial admin email (default: admin@example.com)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ADMIN_PASSWORD    Initial admin password; no admin is seeded when empty\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_DO_SEED           Add sample content on startup (default: false)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(opts, versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(opts options, versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	ctx := context.Background()
	if v, err := store.SchemaVersion(ctx, db); err == nil {
		slog.Info("database ready", "schema_version", v)
	}

	// Warnings and errors also go to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db,
		logging.WithRequestPath(middleware.GetRequestPath),
	))
	slog.SetDefault(logger)

	if opts.createAdmin != "" {
		return createAdmin(ctx, db, opts.createAdmin)
	}

	if err := store.Seed(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if cfg.DoSeed || opts.seedSample {
		var actorID int64
		if admin, err := store.New(db).GetUserByEmail(ctx, cfg.AdminEmail); err == nil {
			actorID = admin.ID
		}
		if err := store.SeedSample(ctx, db, actorID); err != nil {
			return fmt.Errorf("seeding sample content: %w", err)
		}
		slog.Info("sample content seeded")
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP lookups disabled", "error", err)
	}
	defer func() { _ = geo.Close() }()
	slog.Info("geoip resolver initialized", "enabled", geo.Enabled())

	// Services
	eventService := service.NewEventService(db)
	assetService := service.NewAssetService(cfg.UploadsDir, cfg.MaxUploadBytes(), logger)
	settingsService := service.NewSettingsService(db, eventService, assetService)
	buttonService := service.NewButtonService(db, eventService)
	sectionService := service.NewSectionService(db, eventService)
	cardService := service.NewCardService(db, eventService)
	analyticsService := service.NewAnalyticsService(db, geo)

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

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())))
	r.Use(middleware.LoadViewer(sessionManager, db))
	r.Use(middleware.Language(cfg.Locale()))

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()

	// 10 requests per second with burst of 20 per IP
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)
	trackRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	// Initialize handlers
	portalHandler := handler.NewPortalHandler(db, renderer, settingsService)
	authHandler := handler.NewAuthHandler(db, renderer, settingsService, sessionManager, eventService, loginProtection)
	editHandler := handler.NewEditHandler(renderer, handler.EditServices{
		Settings:  settingsService,
		Buttons:   buttonService,
		Sections:  sectionService,
		Cards:     cardService,
		Analytics: analyticsService,
		Events:    eventService,
	})
	apiHandler := handler.NewAPIHandler(handler.APIServices{
		Buttons:   buttonService,
		Sections:  sectionService,
		Cards:     cardService,
		Settings:  settingsService,
		Analytics: analyticsService,
		Assets:    assetService,
	})
	healthHandler := handler.NewHealthHandler(db, cfg.UploadsDir, versionInfo.Name())
	filesHandler := handler.NewFilesHandler(staticFS, assetService, settingsService)

	// Health check routes (public, returns additional details for signed-in callers)
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealth+"/live", healthHandler.Liveness)
	r.Get(handler.RouteHealth+"/ready", healthHandler.Readiness)

	// Portal pages
	r.Get(handler.RouteRoot, portalHandler.Home)
	r.Get(handler.RouteFactory, portalHandler.Factory)
	r.With(middleware.RequireAdmin(eventService)).Get(handler.RouteEdit, editHandler.Edit)

	// Auth routes
	// Defense-in-depth: publicRateLimiter (10 req/s) + loginProtection (0.5 req/s on POST + account lockout)
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.HTMLMiddleware())
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// JSON API
	r.Route(handler.RouteAPI, func(r chi.Router) {
		r.With(trackRateLimiter.Middleware()).Post(handler.RouteCards+handler.RouteSuffixTrack, apiHandler.TrackCard)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdminJSON(eventService))

			r.Post(handler.RouteFactories+handler.RouteSuffixCreate, apiHandler.CreateFactory)
			r.Post(handler.RouteFactories+handler.RouteSuffixUpdate, apiHandler.UpdateFactory)
			r.Delete(handler.RouteFactories+handler.RouteSuffixDelete, apiHandler.DeleteFactory)

			r.Post(handler.RouteSections+handler.RouteSuffixCreate, apiHandler.CreateSection)
			r.Post(handler.RouteSections+handler.RouteSuffixUpdate, apiHandler.UpdateSection)
			r.Delete(handler.RouteSections+handler.RouteSuffixDelete, apiHandler.DeleteSection)

			r.Post(handler.RouteCards+handler.RouteSuffixCreate, apiHandler.CreateCard)
			r.Post(handler.RouteCards+handler.RouteSuffixUpdate, apiHandler.UpdateCard)
			r.Delete(handler.RouteCards+handler.RouteSuffixDelete, apiHandler.DeleteCard)

			r.Post(handler.RouteSettings+handler.RouteSuffixSettingsUpdate, apiHandler.UpdateSettings)
		})
	})

	// Static assets and uploaded branding
	r.Get(handler.RouteStatic+"/*", filesHandler.Static)
	r.Get(handler.RouteUploads+"/*", filesHandler.Uploads)
	r.Get("/favicon.ico", filesHandler.Favicon)

	r.NotFound(portalHandler.NotFound)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for branding uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// createAdmin creates the admin named by an email:password pair, or resets
// the password and role of an existing account.
func createAdmin(ctx context.Context, db *sql.DB, credentials string) error {
	email, password, err := auth.ParseCredentials(credentials)
	if err != nil {
		return fmt.Errorf("parsing -create-admin: %w", err)
	}
	user, created, err := store.UpsertAdmin(ctx, db, email, password)
	if err != nil {
		return err
	}
	if created {
		slog.Info("admin created", "email", user.Email, "id", user.ID)
	} else {
		slog.Info("admin updated", "email", user.Email, "id", user.ID)
	}
	return nil
}
