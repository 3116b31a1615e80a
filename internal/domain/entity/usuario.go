package entity

import (
	"strings"
	"time"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

// Role is a per-user role. Uniqueness by name is enforced by AssignRole, not
// by construction.
type Role struct {
	Name string
}

// Usuario is the aggregate root of the user domain. All mutations of its
// state go through its methods; ID is 0 until the aggregate is persisted.
type Usuario struct {
	id              int64
	nombre          string
	apellidoPaterno string
	apellidoMaterno string
	email           valueobject.Email
	password        valueobject.Password
	roles           []Role
	activo          bool
	createdAt       time.Time
	updatedAt       time.Time
}

// NewUsuario builds a fresh, active aggregate with timestamps set to now.
// Apellidos may be empty.
func NewUsuario(nombre string, email valueobject.Email, password valueobject.Password, apellidoPaterno, apellidoMaterno string, roles []Role) (*Usuario, error) {
	if err := validateNombre(nombre); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Usuario{
		nombre:          nombre,
		apellidoPaterno: apellidoPaterno,
		apellidoMaterno: apellidoMaterno,
		email:           email,
		password:        password,
		roles:           roles,
		activo:          true,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Rehydrate reconstructs a persisted aggregate with explicit identity, state
// and timestamps. Used by repository implementations.
func Rehydrate(id int64, nombre string, email valueobject.Email, password valueobject.Password, apellidoPaterno, apellidoMaterno string, activo bool, roles []Role, createdAt, updatedAt time.Time) (*Usuario, error) {
	if err := validateNombre(nombre); err != nil {
		return nil, err
	}
	return &Usuario{
		id:              id,
		nombre:          nombre,
		apellidoPaterno: apellidoPaterno,
		apellidoMaterno: apellidoMaterno,
		email:           email,
		password:        password,
		roles:           roles,
		activo:          activo,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (u *Usuario) ID() int64                { return u.id }
func (u *Usuario) Nombre() string           { return u.nombre }
func (u *Usuario) ApellidoPaterno() string  { return u.apellidoPaterno }
func (u *Usuario) ApellidoMaterno() string  { return u.apellidoMaterno }
func (u *Usuario) Email() valueobject.Email { return u.email }
func (u *Usuario) Password() valueobject.Password {
	return u.password
}
func (u *Usuario) CreatedAt() time.Time { return u.createdAt }
func (u *Usuario) UpdatedAt() time.Time { return u.updatedAt }
func (u *Usuario) IsActive() bool       { return u.activo }

// Roles returns a copy so callers cannot mutate the aggregate's list.
func (u *Usuario) Roles() []Role {
	out := make([]Role, len(u.roles))
	copy(out, u.roles)
	return out
}

// SetID assigns the persisted identity. Repository use only.
func (u *Usuario) SetID(id int64) { u.id = id }

// FullName joins nombre and apellidos with spaces, skipping absent parts.
func (u *Usuario) FullName() string {
	full := u.nombre
	if u.apellidoPaterno != "" {
		full += " " + u.apellidoPaterno
	}
	if u.apellidoMaterno != "" {
		full += " " + u.apellidoMaterno
	}
	return full
}

func (u *Usuario) HasRole(name string) bool {
	for _, r := range u.roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// AssignRole appends role if not already held. Idempotent; touches updatedAt
// only when the list actually changes.
func (u *Usuario) AssignRole(role Role) {
	if u.HasRole(role.Name) {
		return
	}
	u.roles = append(u.roles, role)
	u.updatedAt = time.Now()
}

// RemoveRole filters out roles with the given name. Note it bumps updatedAt
// even when nothing matched, unlike AssignRole.
func (u *Usuario) RemoveRole(name string) {
	kept := u.roles[:0]
	for _, r := range u.roles {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	u.roles = kept
	u.updatedAt = time.Now()
}

// Activate flips the aggregate to active. No-op when already active.
func (u *Usuario) Activate() {
	if u.activo {
		return
	}
	u.activo = true
	u.updatedAt = time.Now()
}

// Deactivate is the soft-delete transition. No-op when already inactive.
func (u *Usuario) Deactivate() {
	if !u.activo {
		return
	}
	u.activo = false
	u.updatedAt = time.Now()
}

func (u *Usuario) ChangePassword(newPassword valueobject.Password) {
	u.password = newPassword
	u.updatedAt = time.Now()
}

// UpdateProfile replaces the three name fields after re-validating nombre.
func (u *Usuario) UpdateProfile(nombre, apellidoPaterno, apellidoMaterno string) error {
	if err := validateNombre(nombre); err != nil {
		return err
	}
	u.nombre = nombre
	u.apellidoPaterno = apellidoPaterno
	u.apellidoMaterno = apellidoMaterno
	u.updatedAt = time.Now()
	return nil
}

func validateNombre(nombre string) error {
	if strings.TrimSpace(nombre) == "" {
		return domainerr.InvalidArgument("El nombre no puede estar vacío")
	}
	if len(nombre) > 255 {
		return domainerr.InvalidArgument("El nombre no puede exceder 255 caracteres")
	}
	return nil
}
