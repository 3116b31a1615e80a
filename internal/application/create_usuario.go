package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/service"
	"github.com/dcastillo-dev/usuarios-api/pkg/mailer"
)

// EmailQueue publishes JSON jobs for the email worker. Satisfied by
// helpers.RabbitPublisher.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// UsuarioIndexer pushes usuario documents into the search index. Satisfied
// by search.Indexer.
type UsuarioIndexer interface {
	Index(ctx context.Context, u *entity.Usuario) error
}

// CreateUsuarioUseCase registers a usuario and, best effort, queues the
// welcome email and indexes the new record. Queue and indexer may be nil.
type CreateUsuarioUseCase struct {
	Service *service.UsuarioService
	Queue   EmailQueue
	Indexer UsuarioIndexer
	Logger  *logrus.Logger
}

func NewCreateUsuarioUseCase(svc *service.UsuarioService, queue EmailQueue, indexer UsuarioIndexer, logger *logrus.Logger) *CreateUsuarioUseCase {
	return &CreateUsuarioUseCase{Service: svc, Queue: queue, Indexer: indexer, Logger: logger}
}

func (uc *CreateUsuarioUseCase) Execute(ctx context.Context, req CreateUsuarioRequest) (*UsuarioResponse, error) {
	usuario, err := uc.Service.CreateUsuario(ctx,
		req.Nombre, req.Email, req.Password,
		req.ApellidoPaterno, req.ApellidoMaterno,
		rolesFromDTO(req.Roles),
	)
	if err != nil {
		return nil, err
	}

	if uc.Queue != nil {
		job := mailer.WelcomeJob(usuario.Email().Value(), usuario.FullName())
		if pErr := uc.Queue.PublishJSON(ctx, job); pErr != nil && uc.Logger != nil {
			uc.Logger.WithError(pErr).WithField("usuario_id", usuario.ID()).Warn("welcome email publish failed")
		}
	}
	if uc.Indexer != nil {
		if iErr := uc.Indexer.Index(ctx, usuario); iErr != nil && uc.Logger != nil {
			uc.Logger.WithError(iErr).WithField("usuario_id", usuario.ID()).Warn("usuario index failed")
		}
	}

	return usuarioToResponse(usuario), nil
}
