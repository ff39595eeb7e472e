package handlers

import (
	"github.com/gin-gonic/gin"

	"edr/internal/domain/hr"
)

// LeaveHandler serves the leave request endpoints. Employee CRUD goes
// through the generic record handler.
type LeaveHandler struct {
	*RecordHandler[*hr.LeaveRequest]
	svc *hr.LeaveService
}

// NewLeaveHandler creates the leave request handler.
func NewLeaveHandler(base *BaseHandler, svc *hr.LeaveService) *LeaveHandler {
	return &LeaveHandler{
		RecordHandler: NewRecordHandler(base, svc,
			func() *hr.LeaveRequest { return &hr.LeaveRequest{} }),
		svc: svc,
	}
}

// Approve handles POST /:id/approve.
func (h *LeaveHandler) Approve(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	r, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, r)
}

// Reject handles POST /:id/reject.
func (h *LeaveHandler) Reject(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	r, err := h.svc.Reject(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, r)
}
