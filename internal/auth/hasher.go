// Package auth implements the credential core: password hashing, bearer
// token issuance and verification, and the authentication service that
// composes them.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters (OWASP-recommended).
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordHasher hashes and verifies passwords. Hash produces a
// self-describing digest; Verify recomputes and compares in constant time.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (true, nil) on match, (false, nil) on mismatch, or an
	// error when the stored digest is unparseable.
	Verify(password, digest string) (bool, error)
	// NeedsUpgrade reports whether the digest uses a legacy scheme and
	// should be rehashed on the next successful login.
	NeedsUpgrade(digest string) bool
}

// Argon2Hasher implements PasswordHasher using argon2id with a random
// per-record salt, encoded in PHC string format. It also verifies legacy
// unsalted SHA-256 hex digests so existing stored rows keep working; those
// report NeedsUpgrade and are rehashed opportunistically.
type Argon2Hasher struct{}

// NewArgon2Hasher creates an Argon2Hasher.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

// Hash produces an argon2id digest of the password, e.g.
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>.
func (h *Argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks the password against an argon2id or legacy SHA-256 digest.
func (h *Argon2Hasher) Verify(password, digest string) (bool, error) {
	if isLegacyDigest(digest) {
		sum := sha256.Sum256([]byte(password))
		computed := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(digest))) == 1, nil
	}

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("unsupported digest format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parse digest version: %w", err)
	}

	var memory, time uint32
	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("parse digest parameters: %w", err)
	}
	if threads == 0 || threads > 255 {
		return false, fmt.Errorf("digest thread count %d out of range", threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode digest salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode digest key: %w", err)
	}
	if len(want) == 0 || len(want) > 1<<10 {
		return false, fmt.Errorf("digest key length %d out of range", len(want))
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// NeedsUpgrade reports whether the digest is a legacy unsalted SHA-256 hex
// string rather than an argon2id PHC digest.
func (h *Argon2Hasher) NeedsUpgrade(digest string) bool {
	return isLegacyDigest(digest)
}

// isLegacyDigest recognizes the original scheme: 64 lowercase hex characters,
// no PHC prefix.
func isLegacyDigest(digest string) bool {
	if strings.HasPrefix(digest, "$") || len(digest) != 64 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
