package memory

import (
	"sync"
	"time"

	"bestill-chatbot-be/internal/repository/contract"
	"bestill-chatbot-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// CaptureRepository keeps guided-capture sessions in-process. Each username
// gets its own lock so step increments stay atomic per user while unrelated
// users never contend.
type CaptureRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ contract.CaptureRepository = &CaptureRepository{}

func NewCaptureRepository() *CaptureRepository {
	// Abandoned captures expire after an hour; expired items are purged
	// every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &CaptureRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *CaptureRepository) Lock(username string) func() {
	r.mu.Lock()
	lock, ok := r.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[username] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (r *CaptureRepository) Get(username string) *store.CaptureSession {
	if x, found := r.cache.Get(username); found {
		return x.(*store.CaptureSession)
	}
	return store.NewCaptureSession(username)
}

func (r *CaptureRepository) Save(session *store.CaptureSession) {
	r.cache.Set(session.Username, session, cache.DefaultExpiration)
}

func (r *CaptureRepository) Delete(username string) {
	r.cache.Delete(username)
}
