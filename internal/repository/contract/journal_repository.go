package contract

import (
	"context"

	"bestill-chatbot-be/internal/entity"
)

// EntrySink durably stores a completed journal record. Failure is reported
// to the caller, never retried here.
type EntrySink interface {
	Record(ctx context.Context, entry *entity.JournalEntry) error
}

// JournalRepository serves the journaling endpoints.
type JournalRepository interface {
	EntrySink
	FindAllByUsername(ctx context.Context, username string) ([]*entity.JournalEntry, error)
}
