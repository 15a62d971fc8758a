package rates

import (
	"go-madrasa/internal/middleware"
	"go-madrasa/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	group := r.Group("/rates")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/deductions", middleware.RBACAuthorize(rbacService, "rates", "read"), handler.GetPackageDeductions)
		group.PUT("/deductions", middleware.RBACAuthorize(rbacService, "rates", "write"), handler.UpsertPackageDeduction)
		group.GET("/salaries", middleware.RBACAuthorize(rbacService, "rates", "read"), handler.GetPackageSalaries)
		group.PUT("/salaries", middleware.RBACAuthorize(rbacService, "rates", "write"), handler.UpsertPackageSalary)
		group.GET("/lateness", middleware.RBACAuthorize(rbacService, "rates", "read"), handler.GetLatenessConfig)
		group.PUT("/lateness", middleware.RBACAuthorize(rbacService, "rates", "write"), handler.ReplaceLatenessConfig)
	}
}
