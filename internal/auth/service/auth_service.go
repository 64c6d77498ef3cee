package service

import (
	"context"
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

type AuthService struct {
	users    UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(users UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Login verifies the credentials and issues a signed token. An unknown
// username and a wrong password produce the same error, so the response
// never reveals which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return "", errors.NewUnauthorizedError("invalid username or password")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("username", username))
		return "", errors.NewUnauthorizedError("invalid username or password")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     jwt.NewNumericDate(now),
		"exp":     jwt.NewNumericDate(now.Add(s.tokenTTL)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.NewInternalError("signing token", err)
	}

	return signed, nil
}
