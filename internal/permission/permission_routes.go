package permission

import (
	"go-madrasa/internal/middleware"
	"go-madrasa/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	perms := r.Group("/permissions")
	perms.Use(middleware.AuthMiddleware())
	{
		perms.GET("/requests", middleware.RBACAuthorize(rbacService, "permissions", "read"), handler.GetAll)
		perms.POST("/requests", middleware.RBACAuthorize(rbacService, "permissions", "submit"), handler.Submit)
		perms.POST("/requests/:id/review", middleware.RBACAuthorize(rbacService, "permissions", "approve"), handler.Review)
		perms.GET("/waivers", middleware.RBACAuthorize(rbacService, "permissions", "read"), handler.GetWaivers)
		perms.POST("/waivers", middleware.RBACAuthorize(rbacService, "permissions", "approve"), handler.CreateWaiver)
	}
}
