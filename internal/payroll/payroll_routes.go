package payroll

import (
	"go-madrasa/internal/middleware"
	"go-madrasa/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	group := r.Group("/payroll")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.RateLimitByIP(rate.Limit(10.0/60.0), 10))
	{
		group.GET("/salaries", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetSalaries)
		group.GET("/salaries/me", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.GetOwnSalary)

		group.GET("/payments", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.GetPayments)
		group.POST("/payments", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.UpsertPayment)

		group.GET("/bonuses", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.GetBonuses)
		group.POST("/bonuses", middleware.RBACAuthorize(rbacService, "payroll", "write"), handler.CreateBonus)
	}
}
