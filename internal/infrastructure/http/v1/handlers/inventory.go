package handlers

import (
	"github.com/gin-gonic/gin"

	"edr/internal/domain/inventory"
	"edr/internal/infrastructure/http/v1/dto"
)

// InventoryHandler serves the inventory endpoints.
type InventoryHandler struct {
	*RecordHandler[*inventory.Item]
	svc *inventory.Service
}

// NewInventoryHandler creates the inventory handler.
func NewInventoryHandler(base *BaseHandler, svc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		RecordHandler: NewRecordHandler(base, svc,
			func() *inventory.Item { return &inventory.Item{} }),
		svc: svc,
	}
}

// AdjustStock handles POST /:id/adjust.
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.StockAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.svc.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// LowStock handles GET /low-stock.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items, "totalCount": len(items)})
}
