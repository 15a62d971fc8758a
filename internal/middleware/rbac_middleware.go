package middleware

import (
	"net/http"

	"go-madrasa/internal/domain"

	"github.com/gin-gonic/gin"
)

// RBACService is a local interface; any package with a matching Enforce
// method satisfies it.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawRole := c.GetString("role")
		schoolID := c.GetString("school_id")

		if rawRole == "" || schoolID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
			c.Abort()
			return
		}

		role, ok := domain.ParseRole(rawRole)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "unknown role"})
			c.Abort()
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			SchoolID: schoolID,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "forbidden",
				"message":  "You do not have permission to access this resource",
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
