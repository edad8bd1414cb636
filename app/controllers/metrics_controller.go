package controllers

import (
	"github.com/aihub/rag-go/internal/services"
	"github.com/beego/beego/v2/server/web"
)

// MetricsController exposes Prometheus metrics.
type MetricsController struct {
	web.Controller
	metricsService *services.MetricsService
}

// Prepare initializes the metrics service.
func (c *MetricsController) Prepare() {
	if c.metricsService == nil {
		c.metricsService = services.NewMetricsService()
	}
}

// Metrics serves the Prometheus exposition format.
// GET /metrics
func (c *MetricsController) Metrics() {
	c.metricsService.ServeHTTP(c.Ctx.ResponseWriter, c.Ctx.Request)
}
