// Package auth holds the credential and token primitives: argon2id password
// hashing, HS256 identity tokens and the request-context identity accessors.
package auth

import (
	"errors"
	"fmt"

	"github.com/alexedwards/argon2id"
)

var (
	// ErrHashing indicates the hasher could not produce a hash.
	ErrHashing = errors.New("password hashing failed")
	// ErrMalformedHash indicates a stored hash that cannot be decoded.
	ErrMalformedHash = errors.New("malformed password hash")
)

// HashParams are the argon2id cost parameters.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func (p HashParams) libParams() *argon2id.Params {
	return &argon2id.Params{
		Memory:      p.Memory,
		Iterations:  p.Iterations,
		Parallelism: p.Parallelism,
		SaltLength:  p.SaltLength,
		KeyLength:   p.KeyLength,
	}
}

// DefaultHashParams mirror the argon2 defaults of the node "argon2" package
// so hashes stay portable between implementations.
var DefaultHashParams = HashParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// PasswordHasher produces and checks PHC-encoded argon2id hashes, e.g.
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>
type PasswordHasher struct {
	params HashParams
}

func NewPasswordHasher(params HashParams) *PasswordHasher {
	return &PasswordHasher{params: params}
}

// Hash returns a freshly salted encoding of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.params.libParams())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return hash, nil
}

// Verify reports whether password matches encoded, using the parameters
// stored in encoded. A mismatch is not an error; only an undecodable hash is.
func (h *PasswordHasher) Verify(encoded, password string) (bool, error) {
	if err := checkEncoded(encoded); err != nil {
		return false, err
	}

	ok, err := argon2id.ComparePasswordAndHash(password, encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return ok, nil
}

// checkEncoded rejects hashes the library decodes but argon2 cannot use:
// zero cost parameters panic inside argon2.IDKey and an empty key matches
// any password.
func checkEncoded(encoded string) error {
	params, salt, key, err := argon2id.DecodeHash(encoded)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 {
		return fmt.Errorf("%w: zero cost parameter", ErrMalformedHash)
	}
	if len(salt) == 0 || len(key) == 0 {
		return fmt.Errorf("%w: empty salt or key", ErrMalformedHash)
	}
	return nil
}
