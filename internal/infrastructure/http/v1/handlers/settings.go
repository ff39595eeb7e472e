package handlers

import (
	"github.com/gin-gonic/gin"

	"edr/internal/domain/settings"
)

// SettingsHandler serves the company profile singleton.
type SettingsHandler struct {
	*BaseHandler
	svc *settings.Service
}

// NewSettingsHandler creates the settings handler.
func NewSettingsHandler(base *BaseHandler, svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, svc: svc}
}

// Get handles GET /.
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cfg)
}

// Update handles PUT /.
func (h *SettingsHandler) Update(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	if !h.BindJSON(c, cfg) {
		return
	}

	if err := h.svc.Update(c.Request.Context(), cfg); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cfg)
}
