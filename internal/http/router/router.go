package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/complaints-dashboard/internal/config"
	"github.com/ignatzorin/complaints-dashboard/internal/http/handlers"
	"github.com/ignatzorin/complaints-dashboard/internal/http/middleware"
	dashboardHandler "github.com/ignatzorin/complaints-dashboard/internal/interface/http/handler"
	"github.com/ignatzorin/complaints-dashboard/internal/service"
)

// Handlers всё, что router раскладывает по маршрутам. Seed может быть nil.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	WS         *handlers.WSHandler
	Seed       *handlers.SeedHandler
	Complaints *dashboardHandler.ComplaintHandler
	Users      *dashboardHandler.ProfileHandler
	Dashboard  *dashboardHandler.DashboardHandler
	Preference *dashboardHandler.PreferenceHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokenManager *service.TokenManager,
	authService middleware.Authorizer,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS(cfg.MediaBaseURL, http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	if h.Seed != nil && cfg.Env == "development" {
		api.POST("/seed", h.Seed.Seed)
		api.GET("/seed", h.Seed.Seed)
	}

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware("auth", cfg.AuthRateLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.POST("/logout", h.Auth.Logout)
		protectedAuth.GET("/me", h.Auth.Me)
	}

	admin := api.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(tokenManager),
		middleware.AdminGuard(authService),
		middleware.RateLimitMiddleware("admin", cfg.RateLimitLimit, cfg.RateLimitPeriod),
	)
	{
		admin.GET("/dashboard", h.Dashboard.Summary)
		admin.GET("/ws", h.WS.Handle)

		complaints := admin.Group("/complaints")
		complaints.GET("", h.Complaints.List)
		complaints.POST("", h.Complaints.Create)
		complaints.GET("/recent", h.Complaints.Recent)
		complaints.GET("/categories", h.Complaints.Categories)
		complaints.GET("/stats", h.Complaints.Stats)
		complaints.PATCH("/status", h.Complaints.BulkUpdateStatus)
		complaints.GET("/:id", middleware.Int64IDValidator("id"), h.Complaints.Get)
		complaints.PUT("/:id", middleware.Int64IDValidator("id"), h.Complaints.Update)
		complaints.DELETE("/:id", middleware.Int64IDValidator("id"), h.Complaints.Delete)
		complaints.PATCH("/:id/status", middleware.Int64IDValidator("id"), h.Complaints.UpdateStatus)
		complaints.POST("/:id/assign", middleware.Int64IDValidator("id"), h.Complaints.Assign)
		complaints.POST("/:id/images", middleware.Int64IDValidator("id"), h.Complaints.AttachImage)

		users := admin.Group("/users")
		users.GET("", h.Users.List)
		users.GET("/stats", h.Users.Stats)
		users.GET("/:id", middleware.UUIDValidator("id"), h.Users.Get)
		users.PUT("/:id", middleware.UUIDValidator("id"), h.Users.Update)
		users.PATCH("/:id/status", middleware.UUIDValidator("id"), h.Users.SetStatus)
		users.POST("/:id/toggle-status", middleware.UUIDValidator("id"), h.Users.ToggleStatus)

		admin.GET("/preferences/theme", h.Preference.GetTheme)
		admin.PUT("/preferences/theme", h.Preference.SetTheme)
	}

	return r
}
