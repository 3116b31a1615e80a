package application

import (
	"context"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/repository"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

// GetUsuarioUseCase reads a single usuario by id straight from the
// repository.
type GetUsuarioUseCase struct {
	Repo repository.UsuarioRepository
}

func NewGetUsuarioUseCase(repo repository.UsuarioRepository) *GetUsuarioUseCase {
	return &GetUsuarioUseCase{Repo: repo}
}

func (uc *GetUsuarioUseCase) Execute(ctx context.Context, id int64) (*UsuarioResponse, error) {
	usuario, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domainerr.NotFound(id)
	}
	return usuarioToResponse(usuario), nil
}

// GetUsuarioByEmailUseCase reads a single usuario by email.
type GetUsuarioByEmailUseCase struct {
	Repo repository.UsuarioRepository
}

func NewGetUsuarioByEmailUseCase(repo repository.UsuarioRepository) *GetUsuarioByEmailUseCase {
	return &GetUsuarioByEmailUseCase{Repo: repo}
}

func (uc *GetUsuarioByEmailUseCase) Execute(ctx context.Context, email string) (*UsuarioResponse, error) {
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	usuario, err := uc.Repo.FindByEmail(ctx, emailVO)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domainerr.NotFoundByEmail(email)
	}
	return usuarioToResponse(usuario), nil
}
