package memory

import (
	"context"
	"testing"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUnknownUserReturnsVersionZero(t *testing.T) {
	repo := NewTranscriptRepository()

	turns, version, err := repo.Read(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, turns)
	assert.Equal(t, int64(0), version)
}

func TestWriteIfVersionHappyPath(t *testing.T) {
	repo := NewTranscriptRepository()
	ctx := context.Background()

	turns := []entity.Turn{
		{Role: entity.TurnRoleUser, Content: "hello"},
		{Role: entity.TurnRoleAssistant, Content: "hi"},
	}

	v1, err := repo.WriteIfVersion(ctx, "alice", turns, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	stored, version, err := repo.Read(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.Len(t, stored, 2)
	assert.Equal(t, "hello", stored[0].Content)
}

func TestWriteIfVersionRejectsStaleVersion(t *testing.T) {
	repo := NewTranscriptRepository()
	ctx := context.Background()

	_, err := repo.WriteIfVersion(ctx, "alice", []entity.Turn{{Role: entity.TurnRoleUser, Content: "a"}}, 0)
	require.NoError(t, err)

	// Second writer still holds version 0.
	_, err = repo.WriteIfVersion(ctx, "alice", []entity.Turn{{Role: entity.TurnRoleUser, Content: "b"}}, 0)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)

	stored, _, err := repo.Read(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "a", stored[0].Content)
}

func TestWriteIfVersionRejectsCreateWhenRecordExists(t *testing.T) {
	repo := NewTranscriptRepository()
	ctx := context.Background()

	_, err := repo.WriteIfVersion(ctx, "alice", []entity.Turn{{Role: entity.TurnRoleUser, Content: "a"}}, 0)
	require.NoError(t, err)

	_, err = repo.WriteIfVersion(ctx, "alice", nil, 0)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)
}

func TestClearBumpsVersion(t *testing.T) {
	repo := NewTranscriptRepository()
	ctx := context.Background()

	v1, err := repo.WriteIfVersion(ctx, "alice", []entity.Turn{{Role: entity.TurnRoleUser, Content: "a"}}, 0)
	require.NoError(t, err)

	v2, err := repo.Clear(ctx, "alice")
	require.NoError(t, err)
	assert.Greater(t, v2, v1)

	turns, version, err := repo.Read(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, turns)
	assert.Equal(t, v2, version)

	// A writer that read before the clear must lose.
	_, err = repo.WriteIfVersion(ctx, "alice", []entity.Turn{{Role: entity.TurnRoleUser, Content: "late"}}, v1)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)
}

func TestClearUnknownUserStillBumps(t *testing.T) {
	repo := NewTranscriptRepository()

	version, err := repo.Clear(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestReadReturnsACopy(t *testing.T) {
	repo := NewTranscriptRepository()
	ctx := context.Background()

	_, err := repo.WriteIfVersion(ctx, "alice", []entity.Turn{{Role: entity.TurnRoleUser, Content: "a"}}, 0)
	require.NoError(t, err)

	turns, _, err := repo.Read(ctx, "alice")
	require.NoError(t, err)
	turns[0].Content = "tampered"

	fresh, _, err := repo.Read(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a", fresh[0].Content)
}
