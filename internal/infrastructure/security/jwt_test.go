package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/credential-service/internal/core/domain"
)

func newTestManager(t *testing.T, secret string) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(secret, time.Hour)
	require.NoError(t, err)
	return m
}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m := newTestManager(t, "secret")

	token, expiresAt, err := m.Issue("42")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}

func TestJWTManager_ClaimsShape(t *testing.T) {
	m := newTestManager(t, "secret")
	token, _, err := m.Issue("42")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "42", claims["id"])
	assert.NotNil(t, claims["exp"])
	assert.NotNil(t, claims["iat"])
}

func TestJWTManager_Expired(t *testing.T) {
	m := newTestManager(t, "secret")
	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	token, _, err := m.Issue("42")
	require.NoError(t, err)

	userID, err := m.Verify(token)
	require.NoError(t, err, "token is still valid on the issuing clock")
	assert.Equal(t, "42", userID)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_ValidUntilExpiry(t *testing.T) {
	m := newTestManager(t, "secret")
	base := time.Now()
	m.now = func() time.Time { return base }

	token, _, err := m.Issue("7")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, err = m.Verify(token)
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(61 * time.Minute) }
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_ReportedExpiryMatchesClaim(t *testing.T) {
	m := newTestManager(t, "secret")
	base := time.Date(2026, 10, 16, 12, 0, 0, 700*int(time.Millisecond), time.UTC)
	m.now = func() time.Time { return base }

	token, expiresAt, err := m.Issue("7")
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC)), "got %s", expiresAt)

	claims := &sessionClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Equal(expiresAt))

	m.now = func() time.Time { return expiresAt.Add(-time.Millisecond) }
	_, err = m.Verify(token)
	require.NoError(t, err)

	m.now = func() time.Time { return expiresAt.Add(time.Second) }
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, _, err := newTestManager(t, "secret").Issue("42")
	require.NoError(t, err)

	_, err = newTestManager(t, "rotated").Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_Tampered(t *testing.T) {
	m := newTestManager(t, "secret")
	token, _, err := m.Issue("42")
	require.NoError(t, err)

	other, _, err := m.Issue("43")
	require.NoError(t, err)

	// Splice the payload of one token onto the signature of another.
	a := strings.Split(token, ".")
	b := strings.Split(other, ".")
	forged := a[0] + "." + b[1] + "." + a[2]

	_, err = m.Verify(forged)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_Malformed(t *testing.T) {
	m := newTestManager(t, "secret")

	for _, token := range []string{"", "not-a-token", "a.b.c", "a.b"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(t, "secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "42",
		"id":  "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "42",
		"id":  "42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err = hs512.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_RequiresExpiryAndSubject(t *testing.T) {
	m := newTestManager(t, "secret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42", "id": "42"}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(noExp)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}).
		SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Verify(noSub)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewJWTManager_Validation(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.Error(t, err)

	m, err := NewJWTManager("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, m.ttl)
}
