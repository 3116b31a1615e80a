package application

import (
	"time"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
)

// RoleDTO mirrors entity.Role across the application boundary.
type RoleDTO struct {
	Name string `json:"name"`
}

// CreateUsuarioRequest is the inbound DTO for registration.
type CreateUsuarioRequest struct {
	Nombre          string
	Email           string
	Password        string
	ApellidoPaterno string
	ApellidoMaterno string
	Roles           []RoleDTO
}

// UpdateUsuarioRequest is a partial update; nil fields are not applied.
type UpdateUsuarioRequest struct {
	ID              int64
	Nombre          *string
	Email           *string
	ApellidoPaterno *string
	ApellidoMaterno *string
}

// UsuarioResponse is the outbound representation of the aggregate. The
// password hash never leaves the application layer.
type UsuarioResponse struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	ApellidoPaterno string    `json:"apellido_paterno,omitempty"`
	ApellidoMaterno string    `json:"apellido_materno,omitempty"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Roles           []RoleDTO `json:"roles"`
	Activo          bool      `json:"activo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func usuarioToResponse(u *entity.Usuario) *UsuarioResponse {
	roles := make([]RoleDTO, 0, len(u.Roles()))
	for _, r := range u.Roles() {
		roles = append(roles, RoleDTO{Name: r.Name})
	}
	return &UsuarioResponse{
		ID:              u.ID(),
		Nombre:          u.Nombre(),
		ApellidoPaterno: u.ApellidoPaterno(),
		ApellidoMaterno: u.ApellidoMaterno(),
		Email:           u.Email().Value(),
		FullName:        u.FullName(),
		Roles:           roles,
		Activo:          u.IsActive(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
	}
}

func rolesFromDTO(dtos []RoleDTO) []entity.Role {
	if len(dtos) == 0 {
		return nil
	}
	roles := make([]entity.Role, 0, len(dtos))
	for _, d := range dtos {
		roles = append(roles, entity.Role{Name: d.Name})
	}
	return roles
}

// Pagination describes the window of a paged listing.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// ListUsuariosResult is the paged listing payload.
type ListUsuariosResult struct {
	Data       []*UsuarioResponse `json:"data"`
	Pagination Pagination         `json:"pagination"`
}
