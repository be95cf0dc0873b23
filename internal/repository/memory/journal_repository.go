package memory

import (
	"context"
	"sync"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"
)

// JournalRepository is the in-memory journal store used by the memory
// driver and by service tests.
type JournalRepository struct {
	mu      sync.RWMutex
	entries map[string][]*entity.JournalEntry
}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{entries: make(map[string][]*entity.JournalEntry)}
}

var _ contract.JournalRepository = (*JournalRepository)(nil)

func (r *JournalRepository) Record(ctx context.Context, entry *entity.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *entry
	r.entries[entry.Username] = append(r.entries[entry.Username], &copied)
	return nil
}

// FindAllByUsername returns entries newest first, matching the query
// order of the DynamoDB implementation.
func (r *JournalRepository) FindAllByUsername(ctx context.Context, username string) ([]*entity.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[username]
	out := make([]*entity.JournalEntry, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		copied := *stored[i]
		out = append(out, &copied)
	}
	return out, nil
}
