package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "classroom-occupancy-tracker/pkg/errors"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("faculty", "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "faculty", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("faculty", "test-secret", -time.Second)
	require.NoError(t, err)

	_, err = ValidateToken(token, "test-secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateToken_NotYetExpired(t *testing.T) {
	t.Parallel()

	// A token one second away from expiry must still verify.
	token, err := GenerateToken("faculty", "test-secret", time.Second)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "faculty", claims.Username)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("faculty", "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "wrong-secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := ValidateToken("not-a-token", "test-secret")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}
