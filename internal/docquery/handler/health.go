package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/docquery/pkg/component/storage"
)

// HealthHandler reports the health of backing stores.
type HealthHandler struct {
	manager *storage.Manager
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(manager *storage.Manager) *HealthHandler {
	return &HealthHandler{manager: manager}
}

// healthResponse 健康检查响应体。
type healthResponse struct {
	Status string                  `json:"status"`
	Stores map[string]storeHealth `json:"stores,omitempty"`
}

type storeHealth struct {
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency"`
}

// Check 返回服务及其依赖存储的健康状态。
func (h *HealthHandler) Check(c *gin.Context) {
	resp := healthResponse{Status: "ok"}

	if h.manager != nil {
		statuses := h.manager.HealthCheckAll(c.Request.Context())
		resp.Stores = make(map[string]storeHealth, len(statuses))
		for name, status := range statuses {
			resp.Stores[name] = storeHealth{
				Healthy: status.Healthy,
				Latency: status.Latency.String(),
			}
			if !status.Healthy {
				resp.Status = "degraded"
			}
		}
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}
