package app

import (
	"testing"

	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "GRAPH_BACKEND", "UPLOAD_MAX_BYTES", "OTEL_SAMPLER_RATIO", "OTEL_ENABLED", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig(logger.NewNop())
	if cfg.Port != "8080" {
		t.Fatalf("Port: want=8080 got=%q", cfg.Port)
	}
	if cfg.GraphBackend != GraphBackendNeo4j {
		t.Fatalf("GraphBackend: want=%q got=%q", GraphBackendNeo4j, cfg.GraphBackend)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Fatalf("UploadMaxBytes: got=%d", cfg.UploadMaxBytes)
	}
	if cfg.Otel.Enabled || cfg.Otel.SampleRatio != 0.1 {
		t.Fatalf("Otel: got=%+v", cfg.Otel)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GRAPH_BACKEND", "Memory")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://careers.example.com")

	cfg := LoadConfig(logger.NewNop())
	if cfg.Port != "9090" || cfg.GraphBackend != GraphBackendMemory || cfg.UploadMaxBytes != 2048 {
		t.Fatalf("config: got=%+v", cfg)
	}
	if !cfg.Otel.Enabled || cfg.Otel.SampleRatio != 0.5 {
		t.Fatalf("Otel: got=%+v", cfg.Otel)
	}
	if cfg.CORSOrigins != "https://careers.example.com" {
		t.Fatalf("CORSOrigins: got=%q", cfg.CORSOrigins)
	}
}

func TestLoadConfigUnknownBackendFallsBackToNeo4j(t *testing.T) {
	t.Setenv("GRAPH_BACKEND", "sqlite")
	if got := LoadConfig(logger.NewNop()).GraphBackend; got != GraphBackendNeo4j {
		t.Fatalf("GraphBackend: want=%q got=%q", GraphBackendNeo4j, got)
	}
}
