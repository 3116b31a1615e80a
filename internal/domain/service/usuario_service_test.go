package service_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/service"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

// fakeRepo is an in-memory UsuarioRepository used by service tests.
type fakeRepo struct {
	usuarios map[int64]*entity.Usuario
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{usuarios: make(map[int64]*entity.Usuario), nextID: 1}
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*entity.Usuario, error) {
	return r.usuarios[id], nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email valueobject.Email) (*entity.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email().Equals(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Save(_ context.Context, usuario *entity.Usuario) (*entity.Usuario, error) {
	if usuario.ID() == 0 {
		usuario.SetID(r.nextID)
		r.nextID++
	}
	r.usuarios[usuario.ID()] = usuario
	return usuario, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) (bool, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return false, nil
	}
	u.Deactivate()
	return true, nil
}

func (r *fakeRepo) FindAll(_ context.Context, page, perPage int) ([]*entity.Usuario, error) {
	all := r.sorted()
	start := (page - 1) * perPage
	if start >= len(all) {
		return nil, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *fakeRepo) FindActive(_ context.Context) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range r.sorted() {
		if u.IsActive() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByRole(_ context.Context, roleName string) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range r.sorted() {
		if u.HasRole(roleName) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeRepo) Exists(ctx context.Context, email valueobject.Email) (bool, error) {
	u, err := r.FindByEmail(ctx, email)
	return u != nil, err
}

func (r *fakeRepo) sorted() []*entity.Usuario {
	out := make([]*entity.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func newService() (*service.UsuarioService, *fakeRepo) {
	repo := newFakeRepo()
	return service.NewUsuarioService(repo), repo
}

func mustCreate(t *testing.T, svc *service.UsuarioService, email string) *entity.Usuario {
	t.Helper()
	u, err := svc.CreateUsuario(context.Background(), "Juan", email, "secreto123", "Pérez", "", nil)
	require.NoError(t, err)
	return u
}

func TestCreateUsuario(t *testing.T) {
	svc, _ := newService()

	u, err := svc.CreateUsuario(context.Background(), "Juan", "Juan@Example.com", "secreto123", "Pérez", "García", []entity.Role{{Name: "user"}})
	require.NoError(t, err)

	assert.NotZero(t, u.ID())
	assert.Equal(t, "juan@example.com", u.Email().Value())
	assert.True(t, u.IsActive())
	assert.True(t, u.HasRole("user"))
	assert.True(t, u.Password().Verify("secreto123"))
}

func TestCreateUsuario_DuplicateEmail(t *testing.T) {
	svc, _ := newService()
	mustCreate(t, svc, "juan@example.com")

	// Normalization means a case-variant of the same address collides.
	_, err := svc.CreateUsuario(context.Background(), "Otro", "JUAN@example.com", "secreto123", "", "", nil)
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeDuplicateEmail, domainerr.TypeOf(err))
	assert.Equal(t, "El email 'juan@example.com' ya está en uso", err.Error())
}

func TestCreateUsuario_InvalidInputs(t *testing.T) {
	svc, repo := newService()

	tests := []struct {
		name     string
		nombre   string
		email    string
		password string
	}{
		{"bad_email", "Juan", "not-an-email", "secreto123"},
		{"short_password", "Juan", "juan@example.com", "corto"},
		{"empty_nombre", "", "juan@example.com", "secreto123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUsuario(context.Background(), tt.nombre, tt.email, tt.password, "", "", nil)
			require.Error(t, err)
			assert.Equal(t, domainerr.TypeInvalidArgument, domainerr.TypeOf(err))
		})
	}
	// Nothing persisted on failure.
	assert.Empty(t, repo.usuarios)
}

func TestUpdateUsuario_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.UpdateUsuario(context.Background(), 99, service.UpdateUsuarioData{})
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeUsuarioNotFound, domainerr.TypeOf(err))
	assert.Equal(t, "Usuario con ID 99 no encontrado", err.Error())
}

// A submitted email is validated for uniqueness but the stored address does
// not change; the aggregate exposes no email mutation.
func TestUpdateUsuario_EmailValidatedNotReplaced(t *testing.T) {
	svc, _ := newService()
	u := mustCreate(t, svc, "juan@example.com")

	newEmail := "nuevo@example.com"
	updated, err := svc.UpdateUsuario(context.Background(), u.ID(), service.UpdateUsuarioData{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", updated.Email().Value())
}

func TestUpdateUsuario_DuplicateEmailExcludesSelf(t *testing.T) {
	svc, _ := newService()
	u := mustCreate(t, svc, "juan@example.com")
	mustCreate(t, svc, "pedro@example.com")

	// Re-submitting your own email is not a conflict.
	same := "juan@example.com"
	_, err := svc.UpdateUsuario(context.Background(), u.ID(), service.UpdateUsuarioData{Email: &same})
	require.NoError(t, err)

	// Taking another usuario's email is.
	taken := "pedro@example.com"
	_, err = svc.UpdateUsuario(context.Background(), u.ID(), service.UpdateUsuarioData{Email: &taken})
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeDuplicateEmail, domainerr.TypeOf(err))
}

func TestUpdateUsuario_PartialNames(t *testing.T) {
	svc, _ := newService()
	u := mustCreate(t, svc, "juan@example.com")

	nombre := "Pedro"
	updated, err := svc.UpdateUsuario(context.Background(), u.ID(), service.UpdateUsuarioData{Nombre: &nombre})
	require.NoError(t, err)

	assert.Equal(t, "Pedro", updated.Nombre())
	// Omitted fields keep their current values.
	assert.Equal(t, "Pérez", updated.ApellidoPaterno())

	// Sending an explicit empty string clears the field.
	empty := ""
	updated, err = svc.UpdateUsuario(context.Background(), u.ID(), service.UpdateUsuarioData{ApellidoPaterno: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.ApellidoPaterno())
	assert.Equal(t, "Pedro", updated.Nombre())
}

func TestActivateDeactivateUsuario(t *testing.T) {
	svc, _ := newService()
	u := mustCreate(t, svc, "juan@example.com")

	deactivated, err := svc.DeactivateUsuario(context.Background(), u.ID())
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive())

	activated, err := svc.ActivateUsuario(context.Background(), u.ID())
	require.NoError(t, err)
	assert.True(t, activated.IsActive())
}

func TestChangeUserPassword(t *testing.T) {
	svc, _ := newService()
	u := mustCreate(t, svc, "juan@example.com")

	updated, err := svc.ChangeUserPassword(context.Background(), u.ID(), "nuevo-secreto")
	require.NoError(t, err)
	assert.True(t, updated.Password().Verify("nuevo-secreto"))

	_, err = svc.ChangeUserPassword(context.Background(), u.ID(), "corto")
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeInvalidArgument, domainerr.TypeOf(err))
}

func TestRoleAssignment(t *testing.T) {
	svc, _ := newService()
	u := mustCreate(t, svc, "juan@example.com")

	updated, err := svc.AssignRoleToUser(context.Background(), u.ID(), entity.Role{Name: "admin"})
	require.NoError(t, err)
	assert.True(t, updated.HasRole("admin"))

	updated, err = svc.RemoveRoleFromUser(context.Background(), u.ID(), "admin")
	require.NoError(t, err)
	assert.False(t, updated.HasRole("admin"))
}

func TestValidateUniqueEmail(t *testing.T) {
	svc, _ := newService()
	u := mustCreate(t, svc, "juan@example.com")

	email, err := valueobject.NewEmail("juan@example.com")
	require.NoError(t, err)

	err = svc.ValidateUniqueEmail(context.Background(), email, nil)
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeDuplicateEmail, domainerr.TypeOf(err))

	id := u.ID()
	assert.NoError(t, svc.ValidateUniqueEmail(context.Background(), email, &id))

	free, err := valueobject.NewEmail("libre@example.com")
	require.NoError(t, err)
	assert.NoError(t, svc.ValidateUniqueEmail(context.Background(), free, nil))
}
