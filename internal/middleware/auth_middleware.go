package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"go-madrasa/internal/domain"
	"go-madrasa/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware parses the bearer token issued by the auth service and
// populates user_id, school_id and role on the request context. Session
// issuance itself lives outside this service.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			code := "INVALID_TOKEN"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code = "TOKEN_EXPIRED"
			}
			response.Error(c, http.StatusUnauthorized, code, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		schoolID, ok := claims["school_id"].(string)
		if !ok || schoolID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "School ID not found in token", nil)
			c.Abort()
			return
		}

		rawRole, _ := claims["role"].(string)
		role, ok := domain.ParseRole(rawRole)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Unknown role in token", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("school_id", schoolID)
		c.Set("role", role.String())

		c.Next()
	}
}
