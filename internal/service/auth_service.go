package service

import (
	"errors"

	"tokobagus/config"
	"tokobagus/internal/auth"
	"tokobagus/internal/models"
	"tokobagus/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCreds = errors.New("invalid credentials")

type UserFinder interface {
	GetByUsername(username string) (*models.User, error)
}

type AuthService struct {
	jwt   *config.JWTConfig
	users UserFinder
}

func NewAuthService(jwt *config.JWTConfig, users UserFinder) *AuthService {
	return &AuthService{jwt: jwt, users: users}
}

// Login checks the credential against the users table and issues a token.
func (s *AuthService) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCreds
	}
	u, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCreds
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCreds
	}
	return auth.GenerateToken(s.jwt, u.ID, u.Username)
}
