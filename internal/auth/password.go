// Package auth provides password hashing, session token issuance and the
// request-authentication middleware.
//
// WHY ARGON2ID?
// Argon2id is a memory-hard password hashing function: cracking it at scale
// requires not just CPU time but large amounts of RAM per guess, which is
// what makes GPU/ASIC brute-force attacks expensive. It won the Password
// Hashing Competition and is the current OWASP first choice.
//
// Each account gets a freshly generated random 16-byte salt, so two accounts
// with the same password store different hashes. The salt and the cost
// parameters are embedded in the stored string (PHC format), so verification
// needs no extra columns:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<base64 salt>$<base64 digest>
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

// Argon2id cost parameters: one pass over 64 MiB with 4 lanes, 32-byte
// digest. Tune memory/time so a hash costs a few hundred milliseconds on
// production hardware.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// ErrPasswordMismatch is returned by Verify when the password does not match
// the stored hash. Callers translate it into the credentials error; it never
// reaches a client as-is.
var ErrPasswordMismatch = errors.New("auth: password does not match")

// PasswordService hashes and verifies account passwords.
//
// It's a struct (not free functions) so the memory cost can be lowered in
// tests — hashing at production parameters is deliberately slow.
type PasswordService struct {
	time    uint32
	memory  uint32
	threads uint8
}

// NewPasswordService creates a PasswordService with production parameters.
func NewPasswordService() *PasswordService {
	return &PasswordService{time: argonTime, memory: argonMemory, threads: argonThreads}
}

// NewPasswordServiceForTest creates a PasswordService with a small memory
// cost so test suites don't spend their time hashing. Not for production.
func NewPasswordServiceForTest() *PasswordService {
	return &PasswordService{time: 1, memory: 1024, threads: 1}
}

// Hash derives an Argon2id digest of the plaintext under a fresh random salt
// and returns the self-contained PHC-encoded string to store.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("auth: generating salt: %w", err)
	}

	digest := argon2.IDKey([]byte(plaintext), salt, p.time, p.memory, p.threads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory, p.time, p.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// Verify recomputes the digest of plaintext using the salt and parameters
// embedded in the stored hash and compares in constant time.
//
// Returns nil on match, ErrPasswordMismatch on mismatch, and a distinct
// error if the stored hash cannot be decoded (corrupt row, not a wrong
// password).
func (p *PasswordService) Verify(encoded, plaintext string) error {
	params, salt, digest, err := decodeHash(encoded)
	if err != nil {
		return err
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, params.time, params.memory, params.threads, uint32(len(digest)))

	// subtle.ConstantTimeCompare takes the same time whether the first or
	// last byte differs, so response timing leaks nothing about the digest.
	if subtle.ConstantTimeCompare(digest, candidate) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

// DummyVerify burns the same amount of work as a real verification against a
// throwaway salt. The login path calls this when the email is unknown, so
// "no such account" and "wrong password" cost comparable wall-clock time.
func (p *PasswordService) DummyVerify(plaintext string) {
	salt := make([]byte, saltLen)
	argon2.IDKey([]byte(plaintext), salt, p.time, p.memory, p.threads, argonKeyLen)
}

type hashParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

// decodeHash splits a PHC-encoded Argon2id string into its parameters, salt
// and digest.
func decodeHash(encoded string) (hashParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	// ["", "argon2id", "v=19", "m=...,t=...,p=...", salt, digest]
	if len(parts) != 6 || parts[1] != "argon2id" {
		return hashParams{}, nil, nil, fmt.Errorf("auth: malformed password hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("auth: malformed hash version: %w", err)
	}
	if version != argon2.Version {
		return hashParams{}, nil, nil, fmt.Errorf("auth: unsupported argon2 version %d", version)
	}

	var params hashParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("auth: malformed hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("auth: decoding salt: %w", err)
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return hashParams{}, nil, nil, fmt.Errorf("auth: decoding digest: %w", err)
	}

	return params, salt, digest, nil
}
