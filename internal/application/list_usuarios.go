package application

import (
	"context"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/repository"
)

// ListUsuariosUseCase pages through usuarios or lists only the active ones.
type ListUsuariosUseCase struct {
	Repo repository.UsuarioRepository
}

func NewListUsuariosUseCase(repo repository.UsuarioRepository) *ListUsuariosUseCase {
	return &ListUsuariosUseCase{Repo: repo}
}

func (uc *ListUsuariosUseCase) Execute(ctx context.Context, page, perPage int) (*ListUsuariosResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}
	usuarios, err := uc.Repo.FindAll(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	return &ListUsuariosResult{
		Data:       toResponses(usuarios),
		Pagination: Pagination{Page: page, PerPage: perPage, Total: len(usuarios)},
	}, nil
}

// ExecuteActiveOnly lists every active usuario, unpaged.
func (uc *ListUsuariosUseCase) ExecuteActiveOnly(ctx context.Context) ([]*UsuarioResponse, error) {
	usuarios, err := uc.Repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(usuarios), nil
}

func toResponses(usuarios []*entity.Usuario) []*UsuarioResponse {
	out := make([]*UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, usuarioToResponse(u))
	}
	return out
}
