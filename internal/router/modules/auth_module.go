package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo-dev/usuarios-api/internal/container"
	handlers "github.com/dcastillo-dev/usuarios-api/internal/interface/http"
	"github.com/dcastillo-dev/usuarios-api/internal/interface/middleware"
	"github.com/dcastillo-dev/usuarios-api/pkg/helpers"
)

// AuthModule wires the session routes.
// Public: POST /api/login, POST /api/refresh
// Protected: POST /api/logout, GET /api/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/profile", m.Handler.Profile)
	}
}
