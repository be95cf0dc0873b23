package service

import (
	"context"
	"testing"
	"time"

	"bestill-chatbot-be/internal/config"
	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/pkg/apperror"
	"bestill-chatbot-be/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (IAuthService, *memory.CredentialRepository, *memory.ProfileRepository) {
	credentials := memory.NewCredentialRepository()
	profiles := memory.NewProfileRepository()
	svc := NewAuthService(credentials, profiles, config.AuthConfig{
		JwtSecret:   "test-secret",
		TokenExpiry: 8 * time.Hour,
	}, noopLogger{})
	return svc, credentials, profiles
}

func TestRegisterAndLogin(t *testing.T) {
	svc, credentials, profiles := newAuthFixture()
	ctx := context.Background()

	err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)

	credential, err := credentials.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, credential)
	assert.NotEqual(t, "correct horse", credential.PasswordHash)

	profile, err := profiles.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, profile)

	res, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "password1"}))

	err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "password2"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "correct horse"}))

	_, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindUnauthenticated, apperror.KindOf(err))
}
