package service

import (
	"context"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/repository"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

// UpdateUsuarioData carries the partial update for UpdateUsuario. Nil fields
// are left untouched.
type UpdateUsuarioData struct {
	Nombre          *string
	Email           *string
	ApellidoPaterno *string
	ApellidoMaterno *string
}

// UsuarioService orchestrates multi-step operations over the Usuario
// aggregate and the repository port. It is stateless; value-object and
// entity errors propagate to callers untouched.
type UsuarioService struct {
	repo repository.UsuarioRepository
}

func NewUsuarioService(repo repository.UsuarioRepository) *UsuarioService {
	return &UsuarioService{repo: repo}
}

// CreateUsuario registers a new usuario: validates email uniqueness, hashes
// the plaintext password and persists the aggregate.
func (s *UsuarioService) CreateUsuario(ctx context.Context, nombre, email, password, apellidoPaterno, apellidoMaterno string, roles []entity.Role) (*entity.Usuario, error) {
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	if err := s.ValidateUniqueEmail(ctx, emailVO, nil); err != nil {
		return nil, err
	}

	passwordVO, err := valueobject.PasswordFromPlainText(password)
	if err != nil {
		return nil, err
	}

	usuario, err := entity.NewUsuario(nombre, emailVO, passwordVO, apellidoPaterno, apellidoMaterno, roles)
	if err != nil {
		return nil, err
	}

	return s.repo.Save(ctx, usuario)
}

// UpdateUsuario applies a partial update. A changed email is re-checked for
// uniqueness excluding the usuario itself; name fields merge with current
// values so an omitted apellido keeps its value only when no name field was
// sent at all.
func (s *UsuarioService) UpdateUsuario(ctx context.Context, id int64, data UpdateUsuarioData) (*entity.Usuario, error) {
	usuario, err := s.findOrFail(ctx, id)
	if err != nil {
		return nil, err
	}

	if data.Email != nil {
		newEmail, err := valueobject.NewEmail(*data.Email)
		if err != nil {
			return nil, err
		}
		if !usuario.Email().Equals(newEmail) {
			if err := s.ValidateUniqueEmail(ctx, newEmail, &id); err != nil {
				return nil, err
			}
		}
	}

	if data.Nombre != nil || data.ApellidoPaterno != nil || data.ApellidoMaterno != nil {
		nombre := usuario.Nombre()
		paterno := usuario.ApellidoPaterno()
		materno := usuario.ApellidoMaterno()
		if data.Nombre != nil {
			nombre = *data.Nombre
		}
		if data.ApellidoPaterno != nil {
			paterno = *data.ApellidoPaterno
		}
		if data.ApellidoMaterno != nil {
			materno = *data.ApellidoMaterno
		}
		if err := usuario.UpdateProfile(nombre, paterno, materno); err != nil {
			return nil, err
		}
	}

	return s.repo.Save(ctx, usuario)
}

func (s *UsuarioService) ActivateUsuario(ctx context.Context, id int64) (*entity.Usuario, error) {
	usuario, err := s.findOrFail(ctx, id)
	if err != nil {
		return nil, err
	}
	usuario.Activate()
	return s.repo.Save(ctx, usuario)
}

func (s *UsuarioService) DeactivateUsuario(ctx context.Context, id int64) (*entity.Usuario, error) {
	usuario, err := s.findOrFail(ctx, id)
	if err != nil {
		return nil, err
	}
	usuario.Deactivate()
	return s.repo.Save(ctx, usuario)
}

func (s *UsuarioService) ChangeUserPassword(ctx context.Context, id int64, newPassword string) (*entity.Usuario, error) {
	usuario, err := s.findOrFail(ctx, id)
	if err != nil {
		return nil, err
	}
	passwordVO, err := valueobject.PasswordFromPlainText(newPassword)
	if err != nil {
		return nil, err
	}
	usuario.ChangePassword(passwordVO)
	return s.repo.Save(ctx, usuario)
}

func (s *UsuarioService) AssignRoleToUser(ctx context.Context, userID int64, role entity.Role) (*entity.Usuario, error) {
	usuario, err := s.findOrFail(ctx, userID)
	if err != nil {
		return nil, err
	}
	usuario.AssignRole(role)
	return s.repo.Save(ctx, usuario)
}

func (s *UsuarioService) RemoveRoleFromUser(ctx context.Context, userID int64, roleName string) (*entity.Usuario, error) {
	usuario, err := s.findOrFail(ctx, userID)
	if err != nil {
		return nil, err
	}
	usuario.RemoveRole(roleName)
	return s.repo.Save(ctx, usuario)
}

// ValidateUniqueEmail fails with a duplicate_email error when a usuario
// other than excludeUserID already owns email.
func (s *UsuarioService) ValidateUniqueEmail(ctx context.Context, email valueobject.Email, excludeUserID *int64) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && (excludeUserID == nil || existing.ID() != *excludeUserID) {
		return domainerr.DuplicateEmail(email.Value())
	}
	return nil
}

func (s *UsuarioService) findOrFail(ctx context.Context, id int64) (*entity.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domainerr.NotFound(id)
	}
	return usuario, nil
}
