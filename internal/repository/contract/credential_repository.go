package contract

import (
	"context"

	"bestill-chatbot-be/internal/entity"
)

// CredentialRepository backs registration and login. FindByUsername
// returns (nil, nil) when no credential exists.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.Credential, error)
	Create(ctx context.Context, credential *entity.Credential) error
}

// ProfileRepository stores the per-user support document.
type ProfileRepository interface {
	FindByUsername(ctx context.Context, username string) (*entity.Profile, error)
	Save(ctx context.Context, profile *entity.Profile) error
}
