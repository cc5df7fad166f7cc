package services

import (
	"github.com/servicedesk/backend/internal/apperrors"
	"github.com/servicedesk/backend/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is what a successful authentication returns. It never carries
// the password hash.
type LoginResult struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// AuthService is a pure read-and-verify path into the user directory; it
// persists nothing itself.
type AuthService struct {
	users *UserService
}

func NewAuthService(users *UserService) *AuthService {
	return &AuthService{users: users}
}

// Authenticate verifies a username/password pair. The failure is identical
// for an unknown username and a wrong password so neither leaks which failed.
func (s *AuthService) Authenticate(username, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Authentication()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Authentication()
	}

	logger.WithUser(user.ID).Info("User authenticated")
	return &LoginResult{
		Message:  "Login successful",
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}
