package memory

import (
	"context"
	"sync"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]entity.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]entity.Profile)}
}

var _ contract.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[username]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (r *ProfileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.Username] = *profile
	return nil
}
