package handlers

import (
	"github.com/gin-gonic/gin"

	"edr/internal/domain/dashboard"
)

// DashboardHandler serves the aggregated home-page summary.
type DashboardHandler struct {
	*BaseHandler
	svc *dashboard.Service
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(base *BaseHandler, svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{BaseHandler: base, svc: svc}
}

// Summary handles GET /.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Compute(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
