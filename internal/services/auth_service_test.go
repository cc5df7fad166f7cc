package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicedesk/backend/internal/apperrors"
	"github.com/servicedesk/backend/internal/models"
)

func setupAuth(t *testing.T) (*AuthService, *UserService) {
	db := setupTestDB(t)
	users := NewUserService(db)
	require.NoError(t, users.EnsureSeedRoles(models.RoleUser))

	_, err := users.CreateUser(&models.User{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "correct",
	})
	require.NoError(t, err)

	return NewAuthService(users), users
}

func TestAuthenticateSuccess(t *testing.T) {
	auth, _ := setupAuth(t)

	result, err := auth.Authenticate("alice", "correct")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", result.Message)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "Alice Doe", result.FullName)
	assert.Equal(t, "alice@example.com", result.Email)

	// The summary never exposes the password hash
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestAuthenticateWrongPassword(t *testing.T) {
	auth, _ := setupAuth(t)

	_, err := auth.Authenticate("alice", "wrong")
	require.Error(t, err)
	var authErr *apperrors.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	auth, _ := setupAuth(t)

	_, err := auth.Authenticate("nobody", "x")
	require.Error(t, err)
	var authErr *apperrors.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	auth, _ := setupAuth(t)

	_, errWrongPassword := auth.Authenticate("alice", "wrong")
	_, errUnknownUser := auth.Authenticate("nobody", "x")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownUser)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}
