package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken("64f1c2d4e5a6b7c8d9e0f1a2")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "64f1c2d4e5a6b7c8d9e0f1a2", claims.UserID)
	assert.Empty(t, claims.ID)
}

func TestJWTService_RefreshTokenCarriesJTI(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateRefreshToken("64f1c2d4e5a6b7c8d9e0f1a2")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, "64f1c2d4e5a6b7c8d9e0f1a2", claims.UserID)

	extracted, err := service.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_ValidateToken_Rejections(t *testing.T) {
	service := NewJWTService("test-secret")
	other := NewJWTService("other-secret")

	token, err := service.GenerateAccessToken("64f1c2d4e5a6b7c8d9e0f1a2")
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"tampered payload", token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}

	t.Run("signed with a different secret", func(t *testing.T) {
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})
}

func TestJWTService_ExtractTokenID_RequiresJTI(t *testing.T) {
	service := NewJWTService("test-secret")

	// Access tokens carry no JTI, so they cannot be used as refresh tokens.
	token, err := service.GenerateAccessToken("64f1c2d4e5a6b7c8d9e0f1a2")
	assert.NoError(t, err)

	_, err = service.ExtractTokenID(token)
	assert.Error(t, err)
}
