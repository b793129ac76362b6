package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec("test-secret", time.Hour, fixedClock(issued))

	token, err := codec.Issue(42, "joao@email.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "joao@email.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenCodec_VerifyIsIdempotent(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour, nil)

	token, err := codec.Issue(7, "maria@email.com")
	require.NoError(t, err)

	first, err := codec.Verify(token)
	require.NoError(t, err)
	second, err := codec.Verify(token)
	require.NoError(t, err)

	// Verification never extends expiry or mutates claims.
	assert.Equal(t, first.ExpiresAt.Unix(), second.ExpiresAt.Unix())
	assert.Equal(t, first.UserID, second.UserID)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", time.Hour, nil)
	verifier := NewTokenCodec("secret-b", time.Hour, nil)

	token, err := issuer.Issue(1, "joao@email.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenCodec_TamperedPayload(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour, nil)

	token, err := codec.Issue(1, "joao@email.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	// Flip a character in the payload segment.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Verify(tampered)
	require.Error(t, err)
}

func TestTokenCodec_Expiry(t *testing.T) {
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 30 * time.Minute

	now := issued
	codec := NewTokenCodec("test-secret", lifetime, func() time.Time { return now })

	token, err := codec.Issue(1, "joao@email.com")
	require.NoError(t, err)

	// Just before expiry: still valid.
	now = issued.Add(lifetime - time.Second)
	_, err = codec.Verify(token)
	require.NoError(t, err)

	// Exactly at expiry: already invalid.
	now = issued.Add(lifetime)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// Past expiry.
	now = issued.Add(lifetime + time.Hour)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour, nil)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenCodec_RejectsUnsignedToken(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour, nil)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.Error(t, err)
}

func TestTokenCodec_RequiresExpiry(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour, nil)

	// A token without exp, signed with the right secret, must not verify.
	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1})
	token, err := noExpiry.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.Error(t, err)
}
