package service

import (
	"context"
	"time"

	"bestill-chatbot-be/internal/config"
	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/pkg/apperror"
	"bestill-chatbot-be/internal/pkg/logger"
	"bestill-chatbot-be/internal/repository/contract"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, request *dto.RegisterRequest) error
	Login(ctx context.Context, request *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	credentials contract.CredentialRepository
	profiles    contract.ProfileRepository
	authConfig  config.AuthConfig
	log         logger.ILogger
}

func NewAuthService(
	credentials contract.CredentialRepository,
	profiles contract.ProfileRepository,
	authConfig config.AuthConfig,
	log logger.ILogger,
) IAuthService {
	return &authService{
		credentials: credentials,
		profiles:    profiles,
		authConfig:  authConfig,
		log:         log,
	}
}

// Register stores a bcrypt hash for the new user and seeds an empty
// support profile alongside it.
func (s *authService) Register(ctx context.Context, request *dto.RegisterRequest) error {
	existing, err := s.credentials.FindByUsername(ctx, request.Username)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "failed to look up credential", err)
	}
	if existing != nil {
		return apperror.Conflict("username is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "failed to hash password", err)
	}

	credential := &entity.Credential{
		Username:     request.Username,
		PasswordHash: string(hash),
	}
	if err := s.credentials.Create(ctx, credential); err != nil {
		return apperror.Wrap(apperror.KindInternal, "failed to store credential", err)
	}

	if err := s.profiles.Save(ctx, entity.NewProfile(request.Username, time.Now().UTC())); err != nil {
		// The credential exists; the profile is created lazily on
		// first update if this seed fails.
		s.log.Warn("auth", "failed to seed profile at registration", map[string]interface{}{
			"username": request.Username,
			"error":    err.Error(),
		})
	}

	s.log.Info("auth", "user registered", map[string]interface{}{
		"username": request.Username,
	})
	return nil
}

func (s *authService) Login(ctx context.Context, request *dto.LoginRequest) (*dto.LoginResponse, error) {
	credential, err := s.credentials.FindByUsername(ctx, request.Username)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to look up credential", err)
	}
	if credential == nil {
		return nil, apperror.Unauthenticated("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(request.Password)); err != nil {
		return nil, apperror.Unauthenticated("invalid username or password")
	}

	claims := jwt.MapClaims{
		"username": credential.Username,
		"exp":      time.Now().Add(s.authConfig.TokenExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(s.authConfig.JwtSecret))
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInternal, "failed to sign token", err)
	}

	return &dto.LoginResponse{Token: signedToken, Username: credential.Username}, nil
}
