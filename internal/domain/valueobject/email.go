package valueobject

import (
	"net/mail"
	"strings"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
)

// Disposable-mail providers we refuse to register.
var blockedDomains = map[string]struct{}{
	"tempmail.com":       {},
	"10minuteemail.com":  {},
	"guerrillaamail.com": {},
}

// Email is an immutable, normalized (trimmed, lower-cased) email address.
type Email struct {
	value string
}

// NewEmail validates and normalizes raw into an Email.
func NewEmail(raw string) (Email, error) {
	value := strings.ToLower(strings.TrimSpace(raw))

	if value == "" {
		return Email{}, domainerr.InvalidArgument("El email es un campo obligatorio")
	}
	if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
		return Email{}, domainerr.InvalidArgument("Email no valido")
	}
	// net/mail accepts dotless domains (user@localhost); we do not.
	if !strings.Contains(domainOf(value), ".") {
		return Email{}, domainerr.InvalidArgument("Email no valido")
	}
	if len(value) > 255 {
		return Email{}, domainerr.InvalidArgument("El email no puede pasar mas de 255 caracteres")
	}
	if _, blocked := blockedDomains[domainOf(value)]; blocked {
		return Email{}, domainerr.InvalidArgument("Este email no es valido")
	}

	return Email{value: value}, nil
}

func (e Email) Value() string { return e.value }

// Domain returns everything after the last '@'.
func (e Email) Domain() string { return domainOf(e.value) }

// LocalPart returns everything before the '@'. A constructed Email always
// contains one, so the error only fires on a zero-value Email.
func (e Email) LocalPart() (string, error) {
	at := strings.LastIndex(e.value, "@")
	if at < 0 {
		return "", domainerr.InvalidArgument("Email inválido: no contiene @")
	}
	return e.value[:at], nil
}

func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) String() string { return e.value }

func domainOf(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return email[at+1:]
}
