package handlers

import (
	"github.com/gin-gonic/gin"

	"edr/internal/core/apperror"
	"edr/internal/domain/quotes"
	"edr/internal/infrastructure/http/v1/dto"
)

// QuoteHandler serves the quote endpoints.
type QuoteHandler struct {
	*RecordHandler[*quotes.Quote]
	svc *quotes.Service
}

// NewQuoteHandler creates the quote handler.
func NewQuoteHandler(base *BaseHandler, svc *quotes.Service) *QuoteHandler {
	return &QuoteHandler{
		RecordHandler: NewRecordHandler(base, svc,
			func() *quotes.Quote { return &quotes.Quote{} }),
		svc: svc,
	}
}

// AddItem handles POST /:id/items.
func (h *QuoteHandler) AddItem(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var item quotes.Item
	if !h.BindJSON(c, &item) {
		return
	}

	q, err := h.svc.AddItem(c.Request.Context(), id, item)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// UpdateItem handles PUT /:id/items/:itemId.
func (h *QuoteHandler) UpdateItem(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var item quotes.Item
	if !h.BindJSON(c, &item) {
		return
	}
	item.ID = c.Param("itemId")
	if item.ID == "" {
		h.Error(c, apperror.NewValidation("item id is required"))
		return
	}

	q, err := h.svc.UpdateItem(c.Request.Context(), id, item)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// RemoveItem handles DELETE /:id/items/:itemId.
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	itemID := c.Param("itemId")
	if itemID == "" {
		h.Error(c, apperror.NewValidation("item id is required"))
		return
	}

	q, err := h.svc.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// ChangeStatus handles POST /:id/status.
func (h *QuoteHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.StatusChangeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q, err := h.svc.ChangeStatus(c.Request.Context(), id, quotes.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}
