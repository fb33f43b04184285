package router

import (
	"net/http"
	"time"

	"github.com/eniac-club/regdesk/internal/config"
	"github.com/eniac-club/regdesk/internal/handler"
	"github.com/eniac-club/regdesk/internal/middleware"
	"github.com/eniac-club/regdesk/internal/response"
	"github.com/eniac-club/regdesk/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Registration *handler.RegistrationHandler
	Admin        *handler.AdminHandler
	Monitor      *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.POST("/registrations", handlers.Registration.Submit)
		publicAPI.GET("/registrations/phone-preview", handlers.Registration.PhonePreview)

		// The major/year table is compiled in, so clients may cache it.
		majors := publicAPI.Group("/majors")
		majors.Use(middleware.CacheControl(3600))
		{
			majors.GET("", handlers.Registration.Majors)
		}

		publicAPI.POST("/admin/login", handlers.Admin.Login)
	}

	// ─── 2. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/registrations", handlers.Admin.List)
		adminAPI.GET("/registrations/count", handlers.Admin.Count)
		adminAPI.GET("/registrations/export", handlers.Admin.Export)
		adminAPI.DELETE("/registrations", handlers.Admin.Clear)
	}

	// ─── 3. WebSocket Group (Admin WS Auth) ────────────────────────────
	wsGroup := router.Group("/ws/v1")
	wsGroup.Use(middleware.RequireAdminWSAuth(authService))
	{
		wsGroup.GET("/admin/monitor", handlers.Monitor.Stream)
	}

	return router
}
