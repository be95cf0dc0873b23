package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsIdleSessionForNewUser(t *testing.T) {
	repo := NewCaptureRepository()

	session := repo.Get("alice")
	require.NotNil(t, session)
	assert.Equal(t, "alice", session.Username)
	assert.False(t, session.Active)
}

func TestSaveThenGet(t *testing.T) {
	repo := NewCaptureRepository()

	session := repo.Get("alice")
	session.Active = true
	session.StepIndex = 2
	session.Collected["date"] = "2024-03-01"
	repo.Save(session)

	loaded := repo.Get("alice")
	assert.True(t, loaded.Active)
	assert.Equal(t, 2, loaded.StepIndex)
	assert.Equal(t, "2024-03-01", loaded.Collected["date"])
}

func TestDeleteRemovesSession(t *testing.T) {
	repo := NewCaptureRepository()

	session := repo.Get("alice")
	session.Active = true
	repo.Save(session)
	repo.Delete("alice")

	assert.False(t, repo.Get("alice").Active)
}

func TestLockSerializesPerUser(t *testing.T) {
	repo := NewCaptureRepository()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := repo.Lock("alice")
			session := repo.Get("alice")
			session.StepIndex++
			repo.Save(session)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, repo.Get("alice").StepIndex)
}
