package student

import (
	"go-madrasa/internal/middleware"
	"go-madrasa/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	students := r.Group("/students")
	students.Use(middleware.AuthMiddleware())
	{
		students.GET("", middleware.RBACAuthorize(rbacService, "students", "read"), handler.GetAll)
		students.GET("/:id", middleware.RBACAuthorize(rbacService, "students", "read"), handler.GetById)
		students.POST("", middleware.RBACAuthorize(rbacService, "students", "write"), handler.Create)
		students.PUT("/:id", middleware.RBACAuthorize(rbacService, "students", "write"), handler.Update)
		students.POST("/:id/reassign", middleware.RBACAuthorize(rbacService, "students", "write"), handler.Reassign)
		students.DELETE("/:id", middleware.RBACAuthorize(rbacService, "students", "write"), handler.Delete)
	}
}
