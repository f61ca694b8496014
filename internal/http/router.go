package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/careergraph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careergraph-backend/internal/http/middleware"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins string

	ResumeHandler *httpH.ResumeHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "careergraph"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	api := r.Group("/api")
	{
		if cfg.ResumeHandler != nil {
			api.POST("/upload", cfg.ResumeHandler.Upload)
			api.POST("/submit_resume", cfg.ResumeHandler.SubmitResume)
			api.GET("/profile", cfg.ResumeHandler.GetProfile)
		}
	}

	return r
}
