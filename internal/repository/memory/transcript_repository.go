package memory

import (
	"context"
	"sync"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"
)

// TranscriptRepository is the in-process store driver. It mirrors the
// DynamoDB version semantics exactly, which also makes it the fixture the
// orchestration tests run against.
type TranscriptRepository struct {
	mu      sync.RWMutex
	records map[string]*transcriptRecord
}

type transcriptRecord struct {
	turns   []entity.Turn
	version int64
}

var _ contract.TranscriptRepository = &TranscriptRepository{}

func NewTranscriptRepository() *TranscriptRepository {
	return &TranscriptRepository{records: make(map[string]*transcriptRecord)}
}

func (r *TranscriptRepository) Read(ctx context.Context, username string) ([]entity.Turn, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[username]
	if !ok {
		return []entity.Turn{}, 0, nil
	}

	turns := make([]entity.Turn, len(record.turns))
	copy(turns, record.turns)
	return turns, record.version, nil
}

func (r *TranscriptRepository) WriteIfVersion(ctx context.Context, username string, turns []entity.Turn, expectedVersion int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := int64(0)
	if record, ok := r.records[username]; ok {
		current = record.version
	}
	if current != expectedVersion {
		return 0, contract.ErrVersionConflict
	}

	stored := make([]entity.Turn, len(turns))
	copy(stored, turns)
	r.records[username] = &transcriptRecord{turns: stored, version: expectedVersion + 1}
	return expectedVersion + 1, nil
}

func (r *TranscriptRepository) Clear(ctx context.Context, username string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	version := int64(1)
	if record, ok := r.records[username]; ok {
		version = record.version + 1
	}
	r.records[username] = &transcriptRecord{turns: []entity.Turn{}, version: version}
	return version, nil
}
