package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnqbao/carhive-api/pkg/models"
)

func TestSignAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.UserProfile{
		UID:         "u-42",
		Email:       "staff@carhive.vn",
		DisplayName: "Tran Thi B",
		Role:        "telesale",
		IsActive:    true,
	}

	token, err := SignToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", claims.UID)
	assert.Equal(t, "staff@carhive.vn", claims.Email)
	assert.Equal(t, "telesale", claims.Role)
	assert.Equal(t, "u-42", claims.Subject)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	user := &models.UserProfile{UID: "u-1", Role: "customer", IsActive: true}
	token, err := SignToken(user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
