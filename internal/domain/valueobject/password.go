package valueobject

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
)

// Argon2i parameters. Matching cost: 64 MiB memory, 4 passes, 3 lanes.
const (
	argonMemory  uint32 = 64 * 1024
	argonTime    uint32 = 4
	argonThreads uint8  = 3
	argonSaltLen        = 16
	argonKeyLen  uint32 = 32
)

const (
	minPasswordLen = 8
	maxPasswordLen = 20
)

// Password wraps a one-way argon2i hash. When built from plaintext the
// original value is retained on the instance only for the lifetime of that
// construction (so callers such as registration flows can still reach it);
// rehydrated passwords never carry plaintext.
type Password struct {
	hash      string
	plainText string
}

// PasswordFromPlainText validates raw and derives a salted argon2i hash.
func PasswordFromPlainText(raw string) (Password, error) {
	if raw == "" {
		return Password{}, domainerr.InvalidArgument("El password no debe estar vacio")
	}
	if len(raw) < minPasswordLen {
		return Password{}, domainerr.InvalidArgument("El password no debe ser menor a 8 caracteres")
	}
	if len(raw) > maxPasswordLen {
		return Password{}, domainerr.InvalidArgument("El password no debe ser mayor a 20 caracteres")
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return Password{}, fmt.Errorf("generating salt: %w", err)
	}
	key := argon2.Key([]byte(raw), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return Password{hash: encodeHash(salt, key), plainText: raw}, nil
}

// PasswordFromHash rehydrates a Password from a stored hash.
func PasswordFromHash(hash string) (Password, error) {
	if hash == "" {
		return Password{}, domainerr.InvalidArgument("El hash no puede estar vacío")
	}
	return Password{hash: hash}, nil
}

func (p Password) Hash() string { return p.hash }

// PlainText returns the transient plaintext, or "" when the password was
// rehydrated from storage.
func (p Password) PlainText() string { return p.plainText }

// Verify reports whether candidate hashes to the stored value under the
// parameters recorded in the hash itself.
func (p Password) Verify(candidate string) bool {
	salt, key, memory, time, threads, err := decodeHash(p.hash)
	if err != nil {
		return false
	}
	got := argon2.Key([]byte(candidate), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(got, key) == 1
}

// Equals compares hashes only. Two independently hashed copies of the same
// plaintext are not equal because each carries its own salt.
func (p Password) Equals(other Password) bool { return p.hash == other.hash }

// encodeHash renders the standard PHC string form:
// $argon2i$v=19$m=65536,t=4,p=3$<salt>$<key>
func encodeHash(salt, key []byte) string {
	return fmt.Sprintf("$argon2i$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeHash(encoded string) (salt, key []byte, memory, time uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2i" {
		return nil, nil, 0, 0, 0, fmt.Errorf("malformed argon2 hash")
	}
	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, fmt.Errorf("unsupported argon2 version %d", version)
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, err
	}
	return salt, key, memory, time, threads, nil
}
