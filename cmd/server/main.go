package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"schenkly.app/concierge/common/id"
	"schenkly.app/concierge/common/llm"
	"schenkly.app/concierge/common/logger"
	"schenkly.app/concierge/common/otel"
	"schenkly.app/concierge/core/config"
	"schenkly.app/concierge/internal/http/middleware"
	httprouter "schenkly.app/concierge/internal/http/router"
	"schenkly.app/concierge/internal/service"
	"schenkly.app/concierge/internal/web"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet; logger setup happens after OTel
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "concierge starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	var llmClient llm.Client
	if cfg.OpenAI.Enabled() {
		llmClient, err = llm.New(llm.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to initialize openai client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "openai client initialized", "model", llmClient.Model())
	} else {
		slog.InfoContext(ctx, "OPENAI_API_KEY not set, suggestions will use the static fallback list")
	}

	services := service.NewServices(llmClient, cfg.OpenAI)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := setupRouter(cfg, services)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up router", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// WriteTimeout must exceed the configured OpenAI timeout
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) (*gin.Engine, error) {
	router := gin.New()

	// Order matters: OTel creates span → RequestID tags the context → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	static, err := web.Static()
	if err != nil {
		return nil, err
	}

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		Templates: tmpl,
		Static:    static,
	})

	return router, nil
}

const banner = `
███████╗ ██████╗██╗  ██╗███████╗███╗   ██╗██╗  ██╗██╗     ██╗   ██╗
██╔════╝██╔════╝██║  ██║██╔════╝████╗  ██║██║ ██╔╝██║     ╚██╗ ██╔╝
███████╗██║     ███████║█████╗  ██╔██╗ ██║█████╔╝ ██║      ╚████╔╝
╚════██║██║     ██╔══██║██╔══╝  ██║╚██╗██║██╔═██╗ ██║       ╚██╔╝
███████║╚██████╗██║  ██║███████╗██║ ╚████║██║  ██╗███████╗   ██║
╚══════╝ ╚═════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚═╝  ╚═╝╚══════╝   ╚═╝
`
