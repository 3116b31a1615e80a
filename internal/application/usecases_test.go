package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo-dev/usuarios-api/internal/application"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/pkg/mailer"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestCreateUsuarioUseCase(t *testing.T) {
	repo := newFakeRepo()
	queue := &recordingQueue{}
	indexer := &recordingIndexer{}
	uc := application.NewCreateUsuarioUseCase(newUsuarioService(repo), queue, indexer, testLogger())

	res, err := uc.Execute(context.Background(), application.CreateUsuarioRequest{
		Nombre:   "Juan",
		Email:    "juan@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.True(t, res.Activo)
	assert.Equal(t, "Juan", res.FullName)
	assert.Empty(t, res.Roles)

	require.Len(t, queue.published, 1)
	job, ok := queue.published[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "juan@example.com", job.To)

	require.Len(t, indexer.indexed, 1)
	assert.Equal(t, res.ID, indexer.indexed[0].ID())
}

func TestCreateUsuarioUseCase_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	uc := application.NewCreateUsuarioUseCase(newUsuarioService(repo), nil, nil, testLogger())

	req := application.CreateUsuarioRequest{Nombre: "Juan", Email: "juan@example.com", Password: "password123"}
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeDuplicateEmail, domainerr.TypeOf(err))
}

// Queue and indexer failures are logged, not surfaced: registration already
// committed.
func TestCreateUsuarioUseCase_SideEffectsBestEffort(t *testing.T) {
	repo := newFakeRepo()
	queue := &recordingQueue{failWith: errors.New("broker down")}
	indexer := &recordingIndexer{failWith: errors.New("es down")}
	uc := application.NewCreateUsuarioUseCase(newUsuarioService(repo), queue, indexer, testLogger())

	res, err := uc.Execute(context.Background(), application.CreateUsuarioRequest{
		Nombre: "Juan", Email: "juan@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Len(t, repo.usuarios, 1)
}

func TestGetUsuarioUseCase(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedUsuario(t, repo, "juan@example.com", "password123")
	uc := application.NewGetUsuarioUseCase(repo)

	res, err := uc.Execute(context.Background(), seeded.ID())
	require.NoError(t, err)
	assert.Equal(t, seeded.ID(), res.ID)
	assert.Equal(t, "juan@example.com", res.Email)

	_, err = uc.Execute(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeUsuarioNotFound, domainerr.TypeOf(err))
	assert.Equal(t, "Usuario con ID 999 no encontrado", err.Error())
}

func TestGetUsuarioByEmailUseCase(t *testing.T) {
	repo := newFakeRepo()
	seedUsuario(t, repo, "juan@example.com", "password123")
	uc := application.NewGetUsuarioByEmailUseCase(repo)

	res, err := uc.Execute(context.Background(), "JUAN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", res.Email)

	_, err = uc.Execute(context.Background(), "nadie@example.com")
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeUsuarioNotFound, domainerr.TypeOf(err))

	_, err = uc.Execute(context.Background(), "not-an-email")
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeInvalidArgument, domainerr.TypeOf(err))
}

func TestUpdateUsuarioUseCase_NameOnly(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedUsuario(t, repo, "juan@example.com", "password123")
	svc := newUsuarioService(repo)
	indexer := &recordingIndexer{}
	uc := application.NewUpdateUsuarioUseCase(svc, indexer, testLogger())

	before := seeded.UpdatedAt()
	nombre := "Carlos"
	res, err := uc.Execute(context.Background(), application.UpdateUsuarioRequest{ID: seeded.ID(), Nombre: &nombre})
	require.NoError(t, err)

	assert.Equal(t, "Carlos", res.Nombre)
	assert.Equal(t, "juan@example.com", res.Email)
	assert.True(t, res.Activo)
	assert.Empty(t, res.Roles)
	assert.True(t, res.UpdatedAt.After(before))
	assert.Len(t, indexer.indexed, 1)
}

func TestUpdateUsuarioUseCase_NotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := application.NewUpdateUsuarioUseCase(newUsuarioService(repo), nil, testLogger())

	nombre := "Carlos"
	_, err := uc.Execute(context.Background(), application.UpdateUsuarioRequest{ID: 404, Nombre: &nombre})
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeUsuarioNotFound, domainerr.TypeOf(err))
}

func TestDeleteUsuarioUseCase_Deactivates(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedUsuario(t, repo, "juan@example.com", "password123")
	uc := application.NewDeleteUsuarioUseCase(newUsuarioService(repo))

	require.NoError(t, uc.Execute(context.Background(), seeded.ID()))

	// The record survives, inactive.
	kept := repo.usuarios[seeded.ID()]
	require.NotNil(t, kept)
	assert.False(t, kept.IsActive())

	active, err := repo.FindActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	err = uc.Execute(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, domainerr.TypeUsuarioNotFound, domainerr.TypeOf(err))
}

func TestListUsuariosUseCase(t *testing.T) {
	repo := newFakeRepo()
	seedUsuario(t, repo, "a@example.com", "password123")
	seedUsuario(t, repo, "b@example.com", "password123")
	seedUsuario(t, repo, "c@example.com", "password123")
	uc := application.NewListUsuariosUseCase(repo)

	res, err := uc.Execute(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 2, res.Pagination.PerPage)

	res, err = uc.Execute(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, res.Data, 1)

	// Out-of-range defaults.
	res, err = uc.Execute(context.Background(), 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 15, res.Pagination.PerPage)
	assert.Len(t, res.Data, 3)
}

func TestListUsuariosUseCase_ActiveOnly(t *testing.T) {
	repo := newFakeRepo()
	keep := seedUsuario(t, repo, "a@example.com", "password123")
	drop := seedUsuario(t, repo, "b@example.com", "password123")
	drop.Deactivate()
	uc := application.NewListUsuariosUseCase(repo)

	res, err := uc.ExecuteActiveOnly(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, keep.ID(), res[0].ID)
}
