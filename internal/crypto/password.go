package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher hashes plaintext credentials with argon2id and verifies them
// against the stored PHC-format string. The plaintext is never persisted or
// logged; the hash is the only stored form. Hashing the same password twice
// yields different strings (fresh salt per call), both of which verify.
type PasswordHasher struct {
	memory      uint32
	time        uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// ErrMalformedHash indicates that a stored hash could not be parsed.
// This is a data-integrity signal, distinct from a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

const algorithmID = "argon2id"

// NewPasswordHasher creates a hasher with the default cost parameters
// (64 MB memory, 3 passes, 2 lanes, 16-byte salt, 32-byte key)
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		memory:      64 * 1024,
		time:        3,
		parallelism: 2,
		saltLength:  16,
		keyLength:   32,
	}
}

// Hash derives a one-way digest of password and returns it in PHC string
// format: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>
// Accepts any input, including the empty string. An error means no hash was
// produced and the caller must not persist anything.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.parallelism, h.keyLength)

	encoded := fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.memory,
		h.time,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify reports whether password corresponds to encodedHash.
// A mismatch is (false, nil). A hash that cannot be parsed is an error, not
// false: wrong password and corrupted data are different signals and the
// caller must be able to tell them apart.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

type hashParams struct {
	memory      uint32
	time        uint32
	parallelism uint8
}

func decodeHash(encodedHash string) (*hashParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, nil, nil, ErrMalformedHash
	}

	if parts[1] != algorithmID {
		return nil, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil || !strings.HasPrefix(parts[2], "v=") {
		return nil, nil, nil, fmt.Errorf("%w: bad version segment", ErrMalformedHash)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedHash, version)
	}

	params := &hashParams{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.parallelism); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bad parameter segment", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bad salt encoding", ErrMalformedHash)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: bad key encoding", ErrMalformedHash)
	}
	if len(key) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: empty key", ErrMalformedHash)
	}

	return params, salt, key, nil
}
