package router

import (
	"github.com/dcastillo-dev/usuarios-api/internal/application"
	"github.com/dcastillo-dev/usuarios-api/internal/container"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/service"
	"github.com/dcastillo-dev/usuarios-api/internal/infrastructure/postgres"
	"github.com/dcastillo-dev/usuarios-api/internal/infrastructure/search"
	handlers "github.com/dcastillo-dev/usuarios-api/internal/interface/http"
	"github.com/dcastillo-dev/usuarios-api/internal/router/modules"
	"github.com/dcastillo-dev/usuarios-api/pkg/helpers"
)

type usuarioDeps struct {
	UsuarioHandler *handlers.UsuarioHandler
	AuthHandler    *handlers.AuthHandler
}

func buildDeps() usuarioDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	repo := postgres.NewUsuarioRepository(container.GetPGPool())
	svc := service.NewUsuarioService(repo)
	indexer := search.NewIndexer(container.GetES(), cfg.ESUsuariosIndex)

	// Typed-nil guard: only hand the queue to the use case when a publisher
	// was actually constructed.
	var queue application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		queue = pub
	}
	var idx application.UsuarioIndexer
	if container.GetES() != nil {
		idx = indexer
	}

	getUC := application.NewGetUsuarioUseCase(repo)

	usuarioHandler := &handlers.UsuarioHandler{
		Create:  application.NewCreateUsuarioUseCase(svc, queue, idx, logger),
		Get:     getUC,
		GetMail: application.NewGetUsuarioByEmailUseCase(repo),
		Update:  application.NewUpdateUsuarioUseCase(svc, idx, logger),
		Delete:  application.NewDeleteUsuarioUseCase(svc),
		List:    application.NewListUsuariosUseCase(repo),
		Search:  indexer,
		Logger:  logger,
	}

	authHandler := &handlers.AuthHandler{
		Auth:    application.NewAuthenticationService(repo, getUC),
		JWT:     container.GetJWT(),
		Redis:   container.GetRedis(),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Logger:  logger,
	}

	return usuarioDeps{UsuarioHandler: usuarioHandler, AuthHandler: authHandler}
}

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	deps := buildDeps()
	r.Add(modules.NewUsuarioModule(deps.UsuarioHandler, container.GetJWT()))
	r.Add(modules.NewAuthModule(deps.AuthHandler, container.GetJWT()))
}
