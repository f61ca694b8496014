package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/careergraph-backend/internal/http"
	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers) *gin.Engine {
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:           log,
		ServiceName:   cfg.Otel.ServiceName,
		CORSOrigins:   cfg.CORSOrigins,
		ResumeHandler: h.Resume,
		HealthHandler: h.Health,
	})
}
