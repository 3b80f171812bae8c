// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/malezi/malezi/internal/api"
	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/blob"
	"github.com/malezi/malezi/internal/community"
	"github.com/malezi/malezi/internal/events"
	"github.com/malezi/malezi/internal/gateway"
	"github.com/malezi/malezi/internal/gateway/sqlite"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/mcpserver"
	"github.com/malezi/malezi/internal/models"
	"github.com/malezi/malezi/internal/profiles"
	"github.com/malezi/malezi/internal/resources"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("gateway_path", cfg.Gateway.Path),
		slog.String("blob_root", cfg.Blob.Root),
		slog.String("channel_creation", cfg.Community.ChannelCreation),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure the blob storage directory exists.
	if err := os.MkdirAll(cfg.Blob.Root, 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}

	store, err := blob.NewFS(cfg.Blob.Root, cfg.Blob.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("init blob store: %w", err)
	}

	gw, err := sqlite.Open(cfg.Gateway.Path)
	if err != nil {
		return fmt.Errorf("init gateway: %w", err)
	}
	defer gw.Close()

	if cfg.Auth.BootstrapEnabled() {
		if err := bootstrapAdmin(ctx, gw, cfg.Auth); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	communitySvc := community.NewService(gw, community.ChannelCreationPolicy(cfg.Community.ChannelCreation))
	resourceSvc := resources.NewService(gw, store)
	eventSvc := events.NewService(gw)
	profileSvc := profiles.NewService(gw, store)
	resolver := identity.NewResolver(gw)

	if app.mcp {
		caller, err := mcpIdentity(ctx, gw, cfg.Auth, resolver)
		if err != nil {
			return err
		}
		logger.Info("Starting MCP stdio server", slog.String("user_id", caller.UserID))
		srv := mcpserver.New(communitySvc, resourceSvc, caller)
		return srv.ServeStdio()
	}

	apiRouter := api.NewRouter(api.Services{
		Community: communitySvc,
		Resources: resourceSvc,
		Events:    eventSvc,
		Profiles:  profileSvc,
	}, gw, resolver)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	// Serve stored files at their public URLs.
	fh := api.NewFileHandler(store)
	r.Get("/files/{bucket}/*", fh.ServeFile)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// bootstrapAdmin seeds an admin profile and session from config so a fresh
// deployment has a usable administrator. Idempotent: an existing profile
// keeps its fields, only the session token is refreshed.
func bootstrapAdmin(ctx context.Context, gw gateway.Gateway, cfg AuthConfig) error {
	userID, err := gw.ResolveSession(ctx, cfg.BootstrapAdminToken)
	if err == nil {
		slog.Info("bootstrap admin already present", slog.String("user_id", userID))
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	userID = uuid.NewString()
	profile := models.Profile{
		UserID:    userID,
		Email:     cfg.BootstrapAdminEmail,
		FullName:  "Administrator",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := gw.InsertProfile(ctx, profile); err != nil {
		return err
	}
	if err := gw.InsertSession(ctx, cfg.BootstrapAdminToken, userID); err != nil {
		return err
	}
	slog.Info("bootstrap admin created", slog.String("user_id", userID))
	return nil
}

// mcpIdentity resolves the identity the MCP session runs as, from the
// bootstrap token or the MALEZI_MCP_TOKEN environment variable.
func mcpIdentity(ctx context.Context, gw gateway.Gateway, cfg AuthConfig, resolver *identity.Resolver) (identity.Identity, error) {
	token := os.Getenv("MALEZI_MCP_TOKEN")
	if token == "" {
		token = cfg.BootstrapAdminToken
	}
	if token == "" {
		return identity.Identity{}, fmt.Errorf("mcp mode requires MALEZI_MCP_TOKEN or a bootstrap admin token")
	}
	caller := resolver.Resolve(ctx, token)
	if !caller.IsAuthenticated() {
		return identity.Identity{}, fmt.Errorf("mcp token does not resolve to a known user")
	}
	return caller, nil
}
