package contract

import (
	"context"
	"errors"

	"bestill-chatbot-be/internal/entity"
)

// ErrVersionConflict is returned by WriteIfVersion when another writer
// updated the transcript after the matching Read.
var ErrVersionConflict = errors.New("transcript version conflict")

// TranscriptRepository is the key-value transcript store. The store offers
// no multi-step transactions; every mutation is a version-checked
// read-modify-write.
type TranscriptRepository interface {
	// Read returns the ordered turns and the current version token.
	// A user with no record yet yields an empty slice and version 0.
	Read(ctx context.Context, username string) ([]entity.Turn, int64, error)

	// WriteIfVersion replaces the stored sequence only if the record is
	// still at expectedVersion, returning the new version. A concurrent
	// update surfaces as ErrVersionConflict.
	WriteIfVersion(ctx context.Context, username string, turns []entity.Turn, expectedVersion int64) (int64, error)

	// Clear unconditionally replaces the sequence with the empty
	// sequence and bumps the version.
	Clear(ctx context.Context, username string) (int64, error)
}
