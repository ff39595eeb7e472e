package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"edr/internal/core/apperror"
	"edr/internal/domain/interventions"
	"edr/internal/infrastructure/http/v1/dto"
)

// InterventionHandler serves the intervention endpoints. Listing goes
// through the filter pipeline instead of the generic repository query.
type InterventionHandler struct {
	*RecordHandler[*interventions.Intervention]
	svc *interventions.Service
}

// NewInterventionHandler creates the intervention handler.
func NewInterventionHandler(base *BaseHandler, svc *interventions.Service) *InterventionHandler {
	return &InterventionHandler{
		RecordHandler: NewRecordHandler(base, svc,
			func() *interventions.Intervention { return &interventions.Intervention{} }),
		svc: svc,
	}
}

// List handles GET /. All filter parameters are optional; an empty
// query returns the non-archived collection in ID order.
func (h *InterventionHandler) List(c *gin.Context) {
	var q dto.InterventionFilterQuery
	if !h.BindQuery(c, &q) {
		return
	}

	f := interventions.Filter{
		ShowArchived: q.ShowArchived,
		Keyword:      q.Keyword,
		Status:       q.Status,
		Priority:     q.Priority,
		Kind:         q.Kind,
		Technician:   q.Technician,
		Client:       q.Client,
	}

	var ok bool
	if f.DateFrom, ok = h.parseDate(c, "dateFrom", q.DateFrom); !ok {
		return
	}
	if f.DateTo, ok = h.parseDate(c, "dateTo", q.DateTo); !ok {
		return
	}

	items, err := h.svc.Search(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": items, "totalCount": len(items)})
}

// ChangeStatus handles POST /:id/status.
func (h *InterventionHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.StatusChangeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	iv, err := h.svc.ChangeStatus(c.Request.Context(), id, interventions.Status(req.Status))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, iv)
}

// parseDate accepts date-only or RFC 3339 values.
func (h *InterventionHandler) parseDate(c *gin.Context, field, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	h.Error(c, apperror.NewValidation("invalid date").
		WithDetail("field", field).
		WithDetail("value", value))
	return nil, false
}
