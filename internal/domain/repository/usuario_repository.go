package repository

import (
	"context"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

// UsuarioRepository is the persistence port consumed by the domain and
// application layers. Lookups return (nil, nil) when nothing matches; Save
// inserts when the aggregate has no id and updates otherwise, returning the
// persisted aggregate fully hydrated (roles included).
type UsuarioRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Usuario, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.Usuario, error)
	Save(ctx context.Context, usuario *entity.Usuario) (*entity.Usuario, error)
	// Delete soft-deletes: it marks the usuario inactive rather than removing
	// the row. Returns false when the id does not exist.
	Delete(ctx context.Context, id int64) (bool, error)
	FindAll(ctx context.Context, page, perPage int) ([]*entity.Usuario, error)
	FindActive(ctx context.Context) ([]*entity.Usuario, error)
	FindByRole(ctx context.Context, roleName string) ([]*entity.Usuario, error)
	Exists(ctx context.Context, email valueobject.Email) (bool, error)
}
