package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truelife/learningapp/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "unit-test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "learningapp-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(time.Hour)
	user := &models.User{ID: 5, Email: "aye@example.com"}

	accessToken, refreshToken, expiresIn, _, err := service.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)
	assert.Equal(t, 3600, expiresIn)

	claims, err := service.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "aye@example.com", claims.Email)
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)
	user := &models.User{ID: 5, Email: "aye@example.com"}

	accessToken, _, _, _, err := service.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	require.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "learningapp-test",
	})
	user := &models.User{ID: 5, Email: "aye@example.com"}

	accessToken, _, _, _, err := other.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = service.ValidateToken(accessToken)
	require.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A bare token without the Bearer prefix is accepted as-is
	token, err = ExtractBearerToken("raw-token")
	require.NoError(t, err)
	assert.Equal(t, "raw-token", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass1")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret-pass1"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
