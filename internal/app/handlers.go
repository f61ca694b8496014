package app

import (
	"github.com/yungbote/careergraph-backend/internal/data/graph"
	"github.com/yungbote/careergraph-backend/internal/http/handlers"
	modresume "github.com/yungbote/careergraph-backend/internal/modules/resume"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

type Handlers struct {
	Resume *handlers.ResumeHandler
	Health *handlers.HealthHandler
}

func wireUsecases(log *logger.Logger, clients Clients) modresume.Usecases {
	deps := modresume.UsecasesDeps{
		Log:   log,
		Graph: graph.NewResumeGraph(clients.GraphStore, log),
		Cache: clients.ParseCache,
	}
	if clients.Gemini != nil {
		deps.AI = clients.Gemini
	}
	return modresume.New(deps)
}

func wireHandlers(log *logger.Logger, cfg Config, clients Clients, resumes modresume.Usecases) Handlers {
	log.Info("Wiring handlers...")
	health := handlers.NewHealthHandler()
	if clients.Neo4j != nil {
		health = handlers.NewHealthHandler(clients.Neo4j)
	}
	return Handlers{
		Resume: handlers.NewResumeHandler(log, resumes, cfg.UploadMaxBytes),
		Health: health,
	}
}
