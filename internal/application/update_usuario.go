package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/service"
)

// UpdateUsuarioUseCase applies a partial update through the domain service
// and re-indexes the result.
type UpdateUsuarioUseCase struct {
	Service *service.UsuarioService
	Indexer UsuarioIndexer
	Logger  *logrus.Logger
}

func NewUpdateUsuarioUseCase(svc *service.UsuarioService, indexer UsuarioIndexer, logger *logrus.Logger) *UpdateUsuarioUseCase {
	return &UpdateUsuarioUseCase{Service: svc, Indexer: indexer, Logger: logger}
}

func (uc *UpdateUsuarioUseCase) Execute(ctx context.Context, req UpdateUsuarioRequest) (*UsuarioResponse, error) {
	usuario, err := uc.Service.UpdateUsuario(ctx, req.ID, service.UpdateUsuarioData{
		Nombre:          req.Nombre,
		Email:           req.Email,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
	})
	if err != nil {
		return nil, err
	}

	if uc.Indexer != nil {
		if iErr := uc.Indexer.Index(ctx, usuario); iErr != nil && uc.Logger != nil {
			uc.Logger.WithError(iErr).WithField("usuario_id", usuario.ID()).Warn("usuario index failed")
		}
	}

	return usuarioToResponse(usuario), nil
}
