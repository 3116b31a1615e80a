package domainerr

import (
	"errors"
	"fmt"
)

// Type discriminates domain failures so the presentation layer can map each
// one to a transport status without string matching.
type Type string

const (
	TypeInvalidArgument    Type = "invalid_argument"
	TypeInvalidUsuarioData Type = "invalid_usuario_data"
	TypeUsuarioNotFound    Type = "usuario_not_found"
	TypeDuplicateEmail     Type = "duplicate_email"
)

// Error is the single error shape used across the domain and application
// layers. It carries a Type plus a human-readable message.
type Error struct {
	Type    Type
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is lets errors.Is match two domain errors by Type regardless of message.
func (e *Error) Is(target error) bool {
	var de *Error
	if !errors.As(target, &de) {
		return false
	}
	return e.Type == de.Type
}

func InvalidArgument(msg string) *Error {
	return &Error{Type: TypeInvalidArgument, Message: msg}
}

func InvalidUsuarioData(msg string) *Error {
	return &Error{Type: TypeInvalidUsuarioData, Message: msg}
}

// Named invalid_usuario_data cases.

func EmptyName() *Error {
	return InvalidUsuarioData("El nombre del usuario no puede estar vacío")
}

func InvalidEmailData(email string) *Error {
	return InvalidUsuarioData(fmt.Sprintf("El email '%s' no es válido", email))
}

func WeakPassword() *Error {
	return InvalidUsuarioData("La contraseña no cumple con los requisitos de seguridad")
}

func NotFound(id int64) *Error {
	return &Error{Type: TypeUsuarioNotFound, Message: fmt.Sprintf("Usuario con ID %d no encontrado", id)}
}

func NotFoundByEmail(email string) *Error {
	return &Error{Type: TypeUsuarioNotFound, Message: fmt.Sprintf("Usuario con email %s no encontrado", email)}
}

func DuplicateEmail(email string) *Error {
	return &Error{Type: TypeDuplicateEmail, Message: fmt.Sprintf("El email '%s' ya está en uso", email)}
}

// TypeOf returns the domain type of err, or "" when err is not a domain error.
func TypeOf(err error) Type {
	var de *Error
	if errors.As(err, &de) {
		return de.Type
	}
	return ""
}

// IsDomain reports whether err belongs to the domain taxonomy.
func IsDomain(err error) bool {
	var de *Error
	return errors.As(err, &de)
}
