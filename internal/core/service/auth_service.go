package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rl1809/cafe/internal/core/domain"
	"github.com/rl1809/cafe/internal/port"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// AdminCredentials identifies the single back-office account. PasswordHash
// (bcrypt) takes precedence over the plain Password.
type AdminCredentials struct {
	Email        string
	Password     string
	PasswordHash string
}

type AuthService struct {
	creds  AdminCredentials
	tokens port.TokenIssuer
	logger *zap.Logger
}

func NewAuthService(creds AdminCredentials, tokens port.TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		creds:  creds,
		tokens: tokens,
		logger: logger,
	}
}

// Login checks the credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.NewValidationError("email", "Missing email or password")
	}

	if !s.verifyCredentials(email, password) {
		s.logger.Warn("admin login rejected", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("admin logged in", zap.String("email", email))
	return token, nil
}

// Authenticate returns the admin email a session token belongs to.
func (s *AuthService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}

	email, err := s.tokens.VerifyToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return email, nil
}

func (s *AuthService) verifyCredentials(email, password string) bool {
	if s.creds.Email == "" || email != s.creds.Email {
		return false
	}

	switch {
	case s.creds.PasswordHash != "":
		return bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password)) == nil
	case s.creds.Password != "":
		return safeEqual(password, s.creds.Password)
	}
	return false
}

// safeEqual compares digests so neither content nor length leaks via timing.
func safeEqual(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}
