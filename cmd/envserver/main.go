// Command envserver exposes the episode harness as an HTTP service: run
// an episode, browse the episode-type catalog, and restore checkpoints.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"sprintbench.app/core/common/id"
	"sprintbench.app/core/common/logger"
	"sprintbench.app/core/common/otel"
	"sprintbench.app/core/core/config"
	"sprintbench.app/core/internal/checkpoint"
	"sprintbench.app/core/internal/episode"
	"sprintbench.app/core/internal/httpapi"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "envserver starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	var ckptStore checkpoint.Store
	if cfg.Checkpoint.RedisEnabled() {
		ckptStore = checkpoint.NewRedisStore(cfg.Checkpoint.RedisAddr)
		slog.InfoContext(ctx, "checkpoint store: redis", "addr", cfg.Checkpoint.RedisAddr)
	} else {
		ckptStore = checkpoint.NewFileStore(cfg.Checkpoint.Root)
		slog.InfoContext(ctx, "checkpoint store: file", "root", cfg.Checkpoint.Root)
	}

	runner := episode.NewRunner(ckptStore)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, runner, ckptStore)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
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

func setupRouter(cfg config.Config, runner *episode.Runner, ckptStore checkpoint.Store) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span -> Recovery catches panics -> Logger logs with trace context.
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	httpapi.SetupRoutes(router, runner, ckptStore, httpapi.RouterConfig{Auth: cfg.Auth})

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
