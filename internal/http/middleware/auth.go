package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/service"
)

// Ключи gin.Context.
const (
	ContextUserIDKey    = "userID"
	ContextRoleKey      = "role"
	ContextSessionIDKey = "sessionID"
	ContextClaimsKey    = "claims"
	ContextProfileKey   = "profile"
)

// accessTokenQuery браузер не умеет ставить заголовки при открытии WebSocket.
const accessTokenQuery = "access_token"

// AuthMiddleware проверяет access токен из заголовка Authorization
// или параметра access_token.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Unauthorized(c, "требуется авторизация")
			return
		}

		claims, err := tokens.ParseAccess(raw)
		if err != nil || claims.ProfileID == uuid.Nil {
			response.Unauthorized(c, "токен невалиден")
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextUserIDKey, claims.ProfileID)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextSessionIDKey, claims.SessionID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return strings.TrimSpace(c.Query(accessTokenQuery))
}
