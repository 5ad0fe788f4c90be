package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/service"
)

// Authorizer решает, пускать ли владельца токена в админку.
type Authorizer interface {
	Authorize(ctx context.Context, claims *service.AccessClaims) (*entity.Profile, error)
}

// AdminGuard ставится после AuthMiddleware. Пускает только активных
// администраторов с живой сессией, профиль кладёт в контекст.
func AdminGuard(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(ContextClaimsKey)
		claims, _ := value.(*service.AccessClaims)
		if !ok || claims == nil {
			response.Unauthorized(c, "требуется авторизация")
			return
		}

		profile, err := auth.Authorize(c.Request.Context(), claims)
		if err != nil {
			response.Error(c, err)
			return
		}

		c.Set(ContextProfileKey, profile)
		c.Next()
	}
}
