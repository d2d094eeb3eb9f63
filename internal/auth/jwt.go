package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures, split for server-side diagnostics. The HTTP
// edge must collapse both into one generic 401 so clients cannot probe
// whether a captured token is expired or forged.
var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: token invalid")
)

const issuer = "qna-service"

// TokenService issues and verifies the stateless session tokens handed out
// at login.
//
// Tokens are HS256 JWTs: self-contained, verified purely against the
// symmetric key with no server-side session store. That trades instant
// revocation for a serving tier that scales horizontally — a token stays
// valid until its expiry or until the key is rotated.
//
// The key is loaded once at startup and never mutated, so the service is
// safe for concurrent use without locking.
type TokenService struct {
	key      []byte
	validity time.Duration
}

// NewTokenService creates a TokenService signing with key and issuing tokens
// valid for the given duration.
//
// The key must be at least 32 bytes of secret material — anything shorter
// makes HMAC-SHA256 brute-forceable and is rejected outright.
func NewTokenService(key []byte, validity time.Duration) (*TokenService, error) {
	if len(key) < 32 {
		return nil, errors.New("auth: token key must be at least 32 bytes")
	}
	if validity <= 0 {
		return nil, errors.New("auth: token validity must be positive")
	}
	return &TokenService{key: key, validity: validity}, nil
}

// claims is the JWT payload: the account ID travels in the registered
// Subject claim, alongside issued-at and expiry.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed token for the given account. The expiry is a fixed
// duration ahead of issuance.
func (s *TokenService) Issue(accountID int) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// IssueWithValidity creates a token with a custom validity window. Used by
// tests to mint already-expired tokens.
func (s *TokenService) IssueWithValidity(accountID int, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

// Verify authenticates a token string and returns the account ID it carries.
//
// The algorithm is pinned to HS256 (jwt.WithValidMethods) so a forged token
// declaring alg=none or an RSA variant is rejected before any comparison —
// the classic algorithm-confusion attack. Expiry and issuer are enforced by
// the parser.
//
// Nothing in the payload may be trusted unless this returns nil error.
func (s *TokenService) Verify(tokenStr string) (int, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, ErrTokenInvalid
	}

	accountID, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric subject", ErrTokenInvalid)
	}
	return accountID, nil
}
