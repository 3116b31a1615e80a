package domainerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
)

func TestIs_MatchesByType(t *testing.T) {
	a := domainerr.NotFound(1)
	b := domainerr.NotFoundByEmail("juan@example.com")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, domainerr.DuplicateEmail("juan@example.com")))
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domainerr.Type
	}{
		{"invalid_argument", domainerr.InvalidArgument("x"), domainerr.TypeInvalidArgument},
		{"invalid_usuario_data", domainerr.EmptyName(), domainerr.TypeInvalidUsuarioData},
		{"not_found", domainerr.NotFound(7), domainerr.TypeUsuarioNotFound},
		{"duplicate", domainerr.DuplicateEmail("a@b.com"), domainerr.TypeDuplicateEmail},
		{"wrapped", fmt.Errorf("saving: %w", domainerr.NotFound(7)), domainerr.TypeUsuarioNotFound},
		{"foreign", errors.New("boom"), domainerr.Type("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domainerr.TypeOf(tt.err))
		})
	}
}

func TestIsDomain(t *testing.T) {
	assert.True(t, domainerr.IsDomain(domainerr.WeakPassword()))
	assert.True(t, domainerr.IsDomain(fmt.Errorf("ctx: %w", domainerr.InvalidEmailData("x"))))
	assert.False(t, domainerr.IsDomain(errors.New("boom")))
	assert.False(t, domainerr.IsDomain(nil))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Usuario con ID 42 no encontrado", domainerr.NotFound(42).Error())
	assert.Equal(t, "Usuario con email juan@example.com no encontrado", domainerr.NotFoundByEmail("juan@example.com").Error())
	assert.Equal(t, "El email 'juan@example.com' ya está en uso", domainerr.DuplicateEmail("juan@example.com").Error())
	assert.Equal(t, "El email 'x' no es válido", domainerr.InvalidEmailData("x").Error())
}
