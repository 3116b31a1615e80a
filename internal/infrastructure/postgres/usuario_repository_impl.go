package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/repository"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

const usuarioColumns = `id, nombre, apellido_paterno, apellido_materno, email, password, activo, created_at, updated_at`

// UsuarioRepository is the pgx implementation of the repository port over
// the users and user_roles tables.
type UsuarioRepository struct {
	pool *pgxpool.Pool
}

func NewUsuarioRepository(pool *pgxpool.Pool) *UsuarioRepository {
	return &UsuarioRepository{pool: pool}
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+usuarioColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return r.scanWithRoles(ctx, row)
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.Usuario, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+usuarioColumns+`
		FROM users
		WHERE email = $1
	`, email.Value())
	return r.scanWithRoles(ctx, row)
}

// Save inserts when the aggregate has no id, updates otherwise. Roles are
// rewritten wholesale on update; the persisted aggregate is re-read so the
// caller always gets storage truth back.
func (r *UsuarioRepository) Save(ctx context.Context, usuario *entity.Usuario) (*entity.Usuario, error) {
	if usuario.ID() == 0 {
		return r.insert(ctx, usuario)
	}
	return r.update(ctx, usuario)
}

func (r *UsuarioRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET activo = FALSE, updated_at = $2
		WHERE id = $1
	`, id, time.Now())
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *UsuarioRepository) FindAll(ctx context.Context, page, perPage int) ([]*entity.Usuario, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+usuarioColumns+`
		FROM users
		ORDER BY id
		OFFSET $1 LIMIT $2
	`, (page-1)*perPage, perPage)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *UsuarioRepository) FindActive(ctx context.Context) ([]*entity.Usuario, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+usuarioColumns+`
		FROM users
		WHERE activo = TRUE
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *UsuarioRepository) FindByRole(ctx context.Context, roleName string) ([]*entity.Usuario, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+usuarioColumns+`
		FROM users u
		WHERE EXISTS (
			SELECT 1 FROM user_roles ur
			WHERE ur.user_id = u.id AND ur.role_name = $1
		)
		ORDER BY id
	`, roleName)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *UsuarioRepository) Exists(ctx context.Context, email valueobject.Email) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email.Value()).Scan(&exists)
	return exists, err
}

func (r *UsuarioRepository) insert(ctx context.Context, usuario *entity.Usuario) (*entity.Usuario, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (nombre, apellido_paterno, apellido_materno, email, password, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		usuario.Nombre(),
		nullable(usuario.ApellidoPaterno()),
		nullable(usuario.ApellidoMaterno()),
		usuario.Email().Value(),
		usuario.Password().Hash(),
		usuario.IsActive(),
		usuario.CreatedAt(),
		usuario.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := r.replaceRoles(ctx, id, usuario.Roles()); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *UsuarioRepository) update(ctx context.Context, usuario *entity.Usuario) (*entity.Usuario, error) {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET nombre = $1, apellido_paterno = $2, apellido_materno = $3,
		    email = $4, password = $5, activo = $6, updated_at = $7
		WHERE id = $8
	`,
		usuario.Nombre(),
		nullable(usuario.ApellidoPaterno()),
		nullable(usuario.ApellidoMaterno()),
		usuario.Email().Value(),
		usuario.Password().Hash(),
		usuario.IsActive(),
		usuario.UpdatedAt(),
		usuario.ID(),
	)
	if err != nil {
		return nil, err
	}
	if err := r.replaceRoles(ctx, usuario.ID(), usuario.Roles()); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, usuario.ID())
}

func (r *UsuarioRepository) replaceRoles(ctx context.Context, userID int64, roles []entity.Role) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, role := range roles {
		if _, err := r.pool.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_name, created_at)
			VALUES ($1, $2, $3)
		`, userID, role.Name, time.Now()); err != nil {
			return err
		}
	}
	return nil
}

// usuarioRow holds raw column values until roles are loaded, so the
// aggregate can be rehydrated in one shot with its storage timestamps.
type usuarioRow struct {
	id        int64
	nombre    string
	apPaterno *string
	apMaterno *string
	email     string
	hash      string
	activo    bool
	createdAt time.Time
	updatedAt time.Time
}

func (r *UsuarioRepository) scanWithRoles(ctx context.Context, row pgx.Row) (*entity.Usuario, error) {
	ur, err := scanUsuarioRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	roles, err := r.rolesFor(ctx, ur.id)
	if err != nil {
		return nil, err
	}
	return hydrate(ur, roles)
}

func (r *UsuarioRepository) collect(ctx context.Context, rows pgx.Rows) ([]*entity.Usuario, error) {
	defer rows.Close()
	var raw []usuarioRow
	for rows.Next() {
		ur, err := scanUsuarioRow(rows)
		if err != nil {
			return nil, err
		}
		raw = append(raw, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	usuarios := make([]*entity.Usuario, 0, len(raw))
	for _, ur := range raw {
		roles, err := r.rolesFor(ctx, ur.id)
		if err != nil {
			return nil, err
		}
		usuario, err := hydrate(ur, roles)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, usuario)
	}
	return usuarios, nil
}

func (r *UsuarioRepository) rolesFor(ctx context.Context, userID int64) ([]entity.Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT role_name
		FROM user_roles
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []entity.Role
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, entity.Role{Name: name})
	}
	return roles, rows.Err()
}

func scanUsuarioRow(row pgx.Row) (usuarioRow, error) {
	var ur usuarioRow
	err := row.Scan(&ur.id, &ur.nombre, &ur.apPaterno, &ur.apMaterno, &ur.email, &ur.hash, &ur.activo, &ur.createdAt, &ur.updatedAt)
	return ur, err
}

func hydrate(ur usuarioRow, roles []entity.Role) (*entity.Usuario, error) {
	email, err := valueobject.NewEmail(ur.email)
	if err != nil {
		return nil, err
	}
	password, err := valueobject.PasswordFromHash(ur.hash)
	if err != nil {
		return nil, err
	}
	return entity.Rehydrate(ur.id, ur.nombre, email, password, deref(ur.apPaterno), deref(ur.apMaterno), ur.activo, roles, ur.createdAt, ur.updatedAt)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.UsuarioRepository = (*UsuarioRepository)(nil)
