package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/studioclass/internal/app/models"
)

func testJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "studioclass.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(time.Hour)
	user := &models.User{ID: 42, Email: "desk@studio.example", RoleType: models.RoleReceptionist}

	token, expiresIn, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "desk@studio.example", claims.Email)
	assert.Equal(t, string(models.RoleReceptionist), claims.RoleType)
	assert.Equal(t, "studioclass.test", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := testJWTService(time.Hour).GenerateToken(&models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testJWTService(-time.Minute)
	token, _, err := svc.GenerateToken(&models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := testJWTService(time.Hour).ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Token abc")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Manager123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Manager123!", hash)

	assert.True(t, CheckPassword("Manager123!", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
