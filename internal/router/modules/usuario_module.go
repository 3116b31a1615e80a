package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo-dev/usuarios-api/internal/container"
	handlers "github.com/dcastillo-dev/usuarios-api/internal/interface/http"
	"github.com/dcastillo-dev/usuarios-api/internal/interface/middleware"
	"github.com/dcastillo-dev/usuarios-api/pkg/helpers"
)

// UsuarioModule wires the usuario CRUD and search routes.
// Public: POST /api/usuarios (registration)
// Protected: the rest of /api/usuarios
type UsuarioModule struct {
	Handler *handlers.UsuarioHandler
	JWT     *helpers.JWTManager
}

func NewUsuarioModule(h *handlers.UsuarioHandler, jwt *helpers.JWTManager) *UsuarioModule {
	return &UsuarioModule{Handler: h, JWT: jwt}
}

func (m *UsuarioModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/usuarios", registerLimiter, m.Handler.Store)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/usuarios", m.Handler.Index)
		auth.GET("/usuarios/search", m.Handler.SearchUsuarios)
		auth.GET("/usuarios/email/:email", m.Handler.ShowByEmail)
		auth.GET("/usuarios/:id", m.Handler.Show)
		auth.PUT("/usuarios/:id", m.Handler.Modify)
		auth.DELETE("/usuarios/:id", m.Handler.Destroy)
	}
}
