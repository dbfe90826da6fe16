package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"beautyadmin/admin-service/internal/app/admin/entity"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware проверяет статический bearer-токен админки.
// Пустой токен отключает проверку (локальная разработка на моках)
type AuthMiddleware struct {
	token string
}

func NewAuthMiddleware(token string) *AuthMiddleware {
	return &AuthMiddleware{token: token}
}

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.token == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		// Проверяем формат "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.token)) != 1 {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: entity.ErrCodeUnauthorized, Message: message})
}
