package http

import (
	"github.com/gin-gonic/gin"
)

// ItemRoutes handles catalog route registration.
type ItemRoutes struct {
	handler *Handler
}

// NewItemRoutes creates a new ItemRoutes instance.
func NewItemRoutes(handler *Handler) *ItemRoutes {
	return &ItemRoutes{handler: handler}
}

// RegisterPublicRoutes registers catalog routes without authentication.
func (r *ItemRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/items", r.handler.ListItems)
	rg.GET("/items/:id", r.handler.GetItem)
	rg.POST("/items", r.handler.CreateItem)
	rg.GET("/stats", r.handler.GetStats)
}

// RegisterProtectedRoutes registers catalog routes behind API-key auth.
// Reads stay public; only the write endpoint requires a key.
func (r *ItemRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, protected *gin.RouterGroup) {
	rg.GET("/items", r.handler.ListItems)
	rg.GET("/items/:id", r.handler.GetItem)
	rg.GET("/stats", r.handler.GetStats)
	protected.POST("/items", r.handler.CreateItem)
}
