package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, distinguished for logs but all surfaced to clients
// as the same generic 401.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims are the facts embedded in a bearer token.
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256-signed bearer tokens. Both directions
// are pure functions of (token, secret, now); the clock is injected so expiry
// behavior is testable without sleeping.
//
// Expiry boundary is exclusive: a token is invalid from the instant
// now == expires_at.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenCodec creates a codec with the given shared secret and token
// lifetime. now may be nil, in which case time.Now is used.
func NewTokenCodec(secret string, lifetime time.Duration, now func() time.Time) *TokenCodec {
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{secret: []byte(secret), lifetime: lifetime, now: now}
}

// Issue mints a signed token for the user. Claims: uid, email,
// iat = now, exp = now + lifetime.
func (c *TokenCodec) Issue(userID int64, email string) (string, error) {
	iat := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(c.lifetime)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the embedded claims.
// It never mutates or extends expiry; verifying the same token twice yields
// identical claims.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// mapTokenError collapses golang-jwt's error set into the three failure
// classes the rest of the system distinguishes.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		return ErrTokenMalformed
	}
}
