package app

import (
	"strings"

	"github.com/joho/godotenv"

	"github.com/yungbote/careergraph-backend/internal/observability"
	"github.com/yungbote/careergraph-backend/internal/platform/envutil"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

const (
	GraphBackendNeo4j  = "neo4j"
	GraphBackendMemory = "memory"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	GraphBackend   string
	UploadMaxBytes int64
	CORSOrigins    string

	Otel observability.OtelConfig
}

// LoadDotEnv reads .env when present. Variables already set in the process
// environment win.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

func LoadConfig(log *logger.Logger) Config {
	env := envutil.GetEnv("APP_ENV", "development", log)
	backend := strings.ToLower(envutil.GetEnv("GRAPH_BACKEND", GraphBackendNeo4j, log))
	if backend != GraphBackendMemory {
		backend = GraphBackendNeo4j
	}
	return Config{
		Port:           envutil.GetEnv("PORT", "8080", log),
		Environment:    env,
		Version:        envutil.GetEnv("APP_VERSION", "dev", log),
		GraphBackend:   backend,
		UploadMaxBytes: int64(envutil.GetEnvAsInt("UPLOAD_MAX_BYTES", 10<<20, log)),
		CORSOrigins:    envutil.GetEnv("CORS_ALLOWED_ORIGINS", "", log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.GetEnv("OTEL_SERVICE_NAME", "careergraph", log),
			Environment: env,
			Version:     envutil.GetEnv("APP_VERSION", "dev", log),
			Endpoint:    envutil.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Headers:     envutil.GetEnv("OTEL_EXPORTER_OTLP_HEADERS", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.GetEnvAsFloat("OTEL_SAMPLER_RATIO", 0.1, log),
		},
	}
}
