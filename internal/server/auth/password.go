package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher turns plaintext passwords into self-describing opaque hashes
// and checks candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}

var _ PasswordHasher = (*Argon2)(nil)

var errMalformedHash = errors.New("malformed argon2 hash")

// Upper bounds accepted from a stored hash; argon2.IDKey allocates Memory KiB
// up front and cannot fail gracefully.
const (
	maxArgon2Memory     = 1 << 22 // KiB, 4 GiB
	maxArgon2Iterations = 16
	maxArgon2Bytes      = 1024
)

// Argon2 hashes with argon2id. Hashes are PHC strings:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// so parameters can be raised later without breaking stored hashes.
type Argon2 struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// NewArgon2 returns the OWASP-recommended argon2id profile.
func NewArgon2() *Argon2 {
	return &Argon2{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func (a *Argon2) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.Iterations, a.Memory, a.Parallelism, a.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.Memory,
		a.Iterations,
		a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// Verify reports whether password matches encodedHash. A hash that cannot be
// decoded never matches.
func (a *Argon2) Verify(password, encodedHash string) bool {
	params, salt, key, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decodeArgon2Hash(encodedHash string) (*Argon2, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, nil, errMalformedHash
	}

	params := &Argon2{}
	var p uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &p); err != nil {
		return nil, nil, nil, errMalformedHash
	}
	if parts[3] != fmt.Sprintf("m=%d,t=%d,p=%d", params.Memory, params.Iterations, p) {
		return nil, nil, nil, errMalformedHash
	}
	// argon2.IDKey panics on zero time or parallelism.
	if params.Memory == 0 || params.Iterations == 0 || p == 0 || p > 255 {
		return nil, nil, nil, errMalformedHash
	}
	if params.Memory > maxArgon2Memory || params.Iterations > maxArgon2Iterations {
		return nil, nil, nil, errMalformedHash
	}
	params.Parallelism = uint8(p)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 || len(salt) > maxArgon2Bytes {
		return nil, nil, nil, errMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxArgon2Bytes {
		return nil, nil, nil, errMalformedHash
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
