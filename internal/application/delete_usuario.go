package application

import (
	"context"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/service"
)

// DeleteUsuarioUseCase implements deletion as deactivation: the row stays,
// activo flips to false.
type DeleteUsuarioUseCase struct {
	Service *service.UsuarioService
}

func NewDeleteUsuarioUseCase(svc *service.UsuarioService) *DeleteUsuarioUseCase {
	return &DeleteUsuarioUseCase{Service: svc}
}

func (uc *DeleteUsuarioUseCase) Execute(ctx context.Context, id int64) error {
	_, err := uc.Service.DeactivateUsuario(ctx, id)
	return err
}
