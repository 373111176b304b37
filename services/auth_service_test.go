package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, password string) *authService {
	t.Helper()
	hash, err := utils.HashPasswordWithCost(password, bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(hash, []byte("test-secret"), time.Hour).(*authService)
}

func TestLogin_IssuesOrganizerToken(t *testing.T) {
	svc := newTestAuth(t, "hunter2")
	now := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return now }

	resp, err := svc.Login(context.Background(), LoginInput{Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), resp.ExpiresAt)

	token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, RoleOrganizer, claims["role"])
	assert.Equal(t, float64(now.Add(time.Hour).Unix()), claims["exp"])
}

func TestLogin_Rejections(t *testing.T) {
	svc := newTestAuth(t, "hunter2")

	_, err := svc.Login(context.Background(), LoginInput{Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Password: " "})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = NewAuthService("", []byte("s"), 0).Login(context.Background(), LoginInput{Password: "x"})
	assert.ErrorIs(t, err, ErrAuthNotConfigured)
}
