package attendance

import (
	"go-madrasa/internal/middleware"
	"go-madrasa/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	events := r.Group("/attendance")
	events.Use(middleware.AuthMiddleware())
	{
		events.GET("/events", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
		events.POST("/events", middleware.RBACAuthorize(rbacService, "attendance", "record"), handler.RecordLinkSent)
	}
}
