// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
)

// RecordRouteHandler defines the standard CRUD surface of a module
// handler. DELETE archives; records are never hard-deleted.
type RecordRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Archive(c *gin.Context)
}

// StatusRouteHandler is implemented by handlers whose records have a
// lifecycle transition endpoint.
type StatusRouteHandler interface {
	ChangeStatus(c *gin.Context)
}

// RegisterRecordRoutes wires the standard CRUD routes for one module.
// A status route is added when the handler supports transitions.
func RegisterRecordRoutes(group *gin.RouterGroup, handler RecordRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Archive)

	if statusHandler, ok := handler.(StatusRouteHandler); ok {
		group.POST("/:id/status", statusHandler.ChangeStatus)
	}
}
