package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/careergraph-backend/internal/platform/gemini"
	"github.com/yungbote/careergraph-backend/internal/platform/redis"
	"github.com/yungbote/careergraph-backend/internal/data/graph"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
	"github.com/yungbote/careergraph-backend/internal/platform/neo4jdb"
)

type Clients struct {
	// Neo4j is nil with the in-memory backend.
	Neo4j      *neo4jdb.Client
	GraphStore graph.Store
	Gemini     gemini.Client
	ParseCache redis.ParseCache
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Graph
	switch cfg.GraphBackend {
	case GraphBackendMemory:
		log.Warn("using in-memory graph store; data is lost on restart")
		out.GraphStore = graph.NewMemoryStore()
	default:
		client, err := neo4jdb.NewFromEnv(ctx, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init neo4j: %w", err)
		}
		out.Neo4j = client
		out.GraphStore = graph.NewNeo4jStore(client)
	}

	// Gemini
	ai, err := gemini.NewClient(ctx, log)
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		log.Warn("GEMINI_API_KEY not set; resume upload parsing disabled")
	case err != nil:
		out.Close(ctx)
		return Clients{}, fmt.Errorf("init gemini client: %w", err)
	default:
		out.Gemini = ai
	}

	// Redis
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		cache, err := redis.NewParseCache(log)
		if err != nil {
			out.Close(ctx)
			return Clients{}, fmt.Errorf("init redis parse cache: %w", err)
		}
		out.ParseCache = cache
	}

	return out, nil
}

func (c Clients) Close(ctx context.Context) {
	if c.ParseCache != nil {
		_ = c.ParseCache.Close()
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
}
