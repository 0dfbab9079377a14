package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alessandra005/witcon2026/pkg/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig(expiry time.Duration) Config {
	return Config{SecretKey: testSecret, Issuer: "witcon", Audience: "witcon-api", TokenExpiry: expiry}
}

func newTestService(t *testing.T, expiry time.Duration) *Service {
	t.Helper()
	s, err := NewService(testConfig(expiry))
	require.NoError(t, err)
	return s
}

func TestService_GenerateAndValidate(t *testing.T) {
	s := newTestService(t, time.Hour)

	token, err := s.GenerateToken("user-123", "ada@example.com")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestService_ValidateToken_Expired(t *testing.T) {
	s := newTestService(t, -time.Minute)

	token, err := s.GenerateToken("user-123", "")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestService_ValidateToken_WrongSecret(t *testing.T) {
	token, err := newTestService(t, time.Hour).GenerateToken("user-123", "")
	require.NoError(t, err)

	other := testConfig(time.Hour)
	other.SecretKey = "ffffffffffffffffffffffffffffffff"
	s, err := NewService(other)
	require.NoError(t, err)
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := AttendeeClaims{UserID: "user-123"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService(t, time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_GenerateToken_RequiresUserID(t *testing.T) {
	_, err := newTestService(t, time.Hour).GenerateToken("", "")
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestNewService_RejectsWeakSecret(t *testing.T) {
	_, err := NewService(Config{})
	assert.ErrorIs(t, err, ErrSecretKeyRequired)

	_, err = NewService(Config{SecretKey: "short"})
	assert.ErrorIs(t, err, ErrSecretKeyTooShort)
}

func TestService_ValidateToken_WrongAudience(t *testing.T) {
	token, err := newTestService(t, time.Hour).GenerateToken("user-123", "")
	require.NoError(t, err)

	cfg := testConfig(time.Hour)
	cfg.Audience = "another-api"
	s, err := NewService(cfg)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom(config.JWTConfig{
		SecretKey:   testSecret,
		Issuer:      "witcon",
		Audience:    []string{"witcon-api", "legacy"},
		TokenExpiry: time.Hour,
	})

	assert.Equal(t, "witcon-api", cfg.Audience)
	assert.Equal(t, time.Hour, cfg.TokenExpiry)
}
