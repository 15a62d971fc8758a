package billing

import (
	"go-madrasa/internal/middleware"
	"go-madrasa/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	group := r.Group("/billing")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/subscriptions", middleware.RBACAuthorize(rbacService, "billing", "read"), handler.GetSubscriptions)
		group.POST("/subscriptions", middleware.RBACAuthorize(rbacService, "billing", "write"), handler.CreateSubscription)
		group.POST("/proration/preview", middleware.RBACAuthorize(rbacService, "billing", "read"), handler.PreviewProration)
		group.POST("/subscriptions/upgrade", middleware.RBACAuthorize(rbacService, "billing", "write"), handler.UpgradeSubscription)
		group.GET("/invoices", middleware.RBACAuthorize(rbacService, "billing", "read"), handler.GetInvoices)
	}
}
