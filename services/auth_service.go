package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/swiss-tournament/utils"
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleOrganizer = "organizer"

	defaultTokenTTL = 24 * time.Hour
)

var ErrAuthNotConfigured = errors.New("organizer login is not configured")

type LoginInput struct {
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService issues organizer tokens. There is one organizer account whose
// bcrypt hash comes from configuration.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*TokenResponse, error)
}

type authService struct {
	passwordHash string
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthService(passwordHash string, secret []byte, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &authService{
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*TokenResponse, error) {
	if s.passwordHash == "" {
		return nil, ErrAuthNotConfigured
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidationFailed)
	}
	if !utils.CheckPasswordHash(input.Password, s.passwordHash) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"sub":  RoleOrganizer,
		"role": RoleOrganizer,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &TokenResponse{Token: signed, ExpiresAt: expiresAt}, nil
}
