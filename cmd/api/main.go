package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/bizmatters/healthpath/cmd/fx/config_fx"
	"github.com/bizmatters/healthpath/cmd/fx/gateway_fx"
	"github.com/bizmatters/healthpath/cmd/fx/upstream_fx"
	"github.com/bizmatters/healthpath/internal/config"
	"github.com/bizmatters/healthpath/internal/logger"

	_ "github.com/bizmatters/healthpath/docs" // swagger docs
)

// @title HealthPath API
// @version 1.0
// @description Generation proxy for HealthPath personalized health plans.
// @description
// @description Accepts the prompt compiled from the questionnaire, forwards it to the configured model provider and returns the raw model output.

// @contact.name API Support
// @contact.email support@bizmatters.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("WARN: %v", err)
	}

	app := fx.New(
		config_fx.Module,
		upstream_fx.Module,
		gateway_fx.Module,

		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.SugaredLogger.Desugar()}
		}),
		fx.Invoke(InitTracer),
		fx.Invoke(StartServer),
	)

	app.Run()
}

// InitTracer initializes OpenTelemetry tracing and flushes spans on stop
func InitTracer(lc fx.Lifecycle) error {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	lc.Append(fx.StopHook(tp.Shutdown))
	return nil
}

// StartServer binds the HTTP server to the fx lifecycle
func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *logger.Logger) {
	if cfg.Logging.Mode == "production" || cfg.Logging.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  cfg.IdleTimeout(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", server.Addr, err)
			}
			go func() {
				log.Info("Starting HealthPath API server", "port", cfg.Server.Port)
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", "error", err.Error())
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout())
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			log.Info("Server exited")
			return nil
		},
	})
}
