package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"edr/internal/core/entity"
	"edr/internal/domain"
	"edr/internal/infrastructure/http/v1/dto"
)

// RecordService is the service surface the generic handler needs.
// Every module service satisfies it through the embedded record service.
type RecordService[T entity.Entity] interface {
	Create(ctx context.Context, record T) error
	GetByID(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, record T) error
	Archive(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error)
}

// RecordHandler provides the standard CRUD endpoints for one module.
type RecordHandler[T entity.Entity] struct {
	*BaseHandler
	svc   RecordService[T]
	newFn func() T
}

// NewRecordHandler creates a CRUD handler backed by svc.
func NewRecordHandler[T entity.Entity](base *BaseHandler, svc RecordService[T], newFn func() T) *RecordHandler[T] {
	return &RecordHandler[T]{BaseHandler: base, svc: svc, newFn: newFn}
}

// List handles GET /.
func (h *RecordHandler[T]) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	filter := domain.DefaultListFilter()
	filter.Search = q.Search
	filter.IncludeArchived = q.IncludeArchived
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.Limit != 0 {
		filter.Limit = q.Limit
	}
	filter.Offset = q.Offset

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Create handles POST /.
func (h *RecordHandler[T]) Create(c *gin.Context) {
	record := h.newFn()
	if !h.BindJSON(c, record) {
		return
	}

	if err := h.svc.Create(c.Request.Context(), record); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, record.GetID())
}

// Get handles GET /:id.
func (h *RecordHandler[T]) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	record, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, record)
}

// Update handles PUT /:id. The request body is applied over the stored
// record, so partial payloads keep the absent fields.
func (h *RecordHandler[T]) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	record, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}

	if !h.BindJSON(c, record) {
		return
	}
	record.SetID(id)
	record.Touch()

	if err := h.svc.Update(c.Request.Context(), record); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, record)
}

// Archive handles DELETE /:id. Records are never hard-deleted.
func (h *RecordHandler[T]) Archive(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.svc.Archive(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
