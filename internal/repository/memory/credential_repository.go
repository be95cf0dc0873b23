package memory

import (
	"context"
	"sync"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"
)

type CredentialRepository struct {
	mu          sync.RWMutex
	credentials map[string]entity.Credential
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{credentials: make(map[string]entity.Credential)}
}

var _ contract.CredentialRepository = (*CredentialRepository)(nil)

func (r *CredentialRepository) FindByUsername(ctx context.Context, username string) (*entity.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	credential, ok := r.credentials[username]
	if !ok {
		return nil, nil
	}
	return &credential, nil
}

func (r *CredentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.credentials[credential.Username] = *credential
	return nil
}
