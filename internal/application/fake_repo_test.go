package application_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcastillo-dev/usuarios-api/internal/application"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/entity"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/service"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/valueobject"
)

// fakeRepo is the in-memory repository shared by the use-case tests.
type fakeRepo struct {
	usuarios map[int64]*entity.Usuario
	nextID   int64
	failWith error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{usuarios: make(map[int64]*entity.Usuario), nextID: 1}
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*entity.Usuario, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	return r.usuarios[id], nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email valueobject.Email) (*entity.Usuario, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.usuarios {
		if u.Email().Equals(email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) Save(_ context.Context, usuario *entity.Usuario) (*entity.Usuario, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
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

// recordingQueue captures published email jobs.
type recordingQueue struct {
	published []any
	failWith  error
}

func (q *recordingQueue) PublishJSON(_ context.Context, body any) error {
	if q.failWith != nil {
		return q.failWith
	}
	q.published = append(q.published, body)
	return nil
}

// recordingIndexer captures indexed aggregates.
type recordingIndexer struct {
	indexed  []*entity.Usuario
	failWith error
}

func (i *recordingIndexer) Index(_ context.Context, u *entity.Usuario) error {
	if i.failWith != nil {
		return i.failWith
	}
	i.indexed = append(i.indexed, u)
	return nil
}

func newUsuarioService(repo *fakeRepo) *service.UsuarioService {
	return service.NewUsuarioService(repo)
}

func seedUsuario(t *testing.T, repo *fakeRepo, email, password string) *entity.Usuario {
	t.Helper()
	u, err := newUsuarioService(repo).CreateUsuario(context.Background(), "Juan", email, password, "Pérez", "", nil)
	require.NoError(t, err)
	return u
}

var _ application.EmailQueue = (*recordingQueue)(nil)
var _ application.UsuarioIndexer = (*recordingIndexer)(nil)
