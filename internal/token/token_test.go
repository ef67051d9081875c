package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	_, err := NewService("", time.Hour)
	assert.Error(t, err)

	_, err = NewService("secret", 0)
	assert.Error(t, err)

	svc, err := NewService("secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())
}

func TestIssueAndVerify(t *testing.T) {
	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	signed, err := svc.Issue(Identity{UserID: 42, Username: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	id, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id.UserID)
	assert.Equal(t, "alice", id.Username)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewService("secret_one", time.Hour)
	require.NoError(t, err)
	verifier, err := NewService("secret_two", time.Hour)
	require.NoError(t, err)

	signed, err := issuer.Issue(Identity{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc, err := NewService("test_secret", time.Nanosecond)
	require.NoError(t, err)

	signed, err := svc.Issue(Identity{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyRejectsWrongIssuerAndAudience(t *testing.T) {
	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "1",
		"iss": "someone-else",
		"aud": Audience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims["iss"] = Issuer
	claims["aud"] = "different-client"
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	svc, err := NewService("test_secret", time.Hour)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub": "1",
		"iss": Issuer,
		"aud": Audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
