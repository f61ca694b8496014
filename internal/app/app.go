package app

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/careergraph-backend/internal/http"
	modresume "github.com/yungbote/careergraph-backend/internal/modules/resume"
	"github.com/yungbote/careergraph-backend/internal/observability"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

type App struct {
	Log     *logger.Logger
	Router  *gin.Engine
	Cfg     Config
	Clients Clients
	Resumes modresume.Usecases

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	dotenv := LoadDotEnv()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if !dotenv {
		log.Debug("No .env file found, using environment variables")
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdown := observability.InitOTel(ctx, log, cfg.Otel)

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = shutdown(ctx)
		log.Sync()
		return nil, err
	}

	resumes := wireUsecases(log, clients)
	handlerset := wireHandlers(log, cfg, clients, resumes)
	router := wireRouter(log, cfg, handlerset)

	return &App{
		Log:          log,
		Router:       router,
		Cfg:          cfg,
		Clients:      clients,
		Resumes:      resumes,
		otelShutdown: shutdown,
	}, nil
}

// Run serves HTTP until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := net.JoinHostPort("", a.Cfg.Port)
	a.Log.Info("HTTP server listening", "addr", addr, "graph_backend", a.Cfg.GraphBackend)
	return (&apphttp.Server{Engine: a.Router}).Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx := context.Background()
	a.Clients.Close(ctx)
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
