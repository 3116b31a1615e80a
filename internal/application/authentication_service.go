package application

import (
	"context"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/repository"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

// AuthenticationService answers "is this email+password pair valid, and what
// is the usuario record". Session establishment is the caller's business.
type AuthenticationService struct {
	Repo       repository.UsuarioRepository
	GetUsuario *GetUsuarioUseCase
}

func NewAuthenticationService(repo repository.UsuarioRepository, getUsuario *GetUsuarioUseCase) *AuthenticationService {
	return &AuthenticationService{Repo: repo, GetUsuario: getUsuario}
}

// Authenticate verifies credentials. Unknown email fails with
// usuario_not_found; a wrong password yields (nil, nil) so callers can treat
// "no match" as a normal outcome rather than an error.
func (s *AuthenticationService) Authenticate(ctx context.Context, email, password string) (*UsuarioResponse, error) {
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	usuario, err := s.Repo.FindByEmail(ctx, emailVO)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domainerr.NotFoundByEmail(email)
	}
	if !usuario.Password().Verify(password) {
		return nil, nil
	}
	return usuarioToResponse(usuario), nil
}

// GetAuthenticatedUser resolves the usuario behind an established session.
// Domain failures collapse to (nil, nil): a stale session simply has no
// user. Storage errors still propagate.
func (s *AuthenticationService) GetAuthenticatedUser(ctx context.Context, userID int64) (*UsuarioResponse, error) {
	resp, err := s.GetUsuario.Execute(ctx, userID)
	if err != nil {
		if domainerr.IsDomain(err) {
			return nil, nil
		}
		return nil, err
	}
	return resp, nil
}
