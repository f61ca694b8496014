package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/careergraph-backend/internal/http/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	graph Pinger
}

// NewHealthHandler takes the graph client; nil means there is nothing to
// check (in-memory backend).
func NewHealthHandler(graph ...Pinger) *HealthHandler {
	h := &HealthHandler{}
	if len(graph) > 0 {
		h.graph = graph[0]
	}
	return h
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /readyz
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.graph != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.graph.Ping(ctx); err != nil {
			response.RespondError(c, http.StatusServiceUnavailable, "graph_unavailable", err)
			return
		}
	}
	c.String(http.StatusOK, "ready")
}
