package redisrepo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bestill-chatbot-be/internal/repository/contract"
	"bestill-chatbot-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	captureKeyPrefix = "capture:"
	captureTTL       = 1 * time.Hour
)

// CaptureRepository keeps guided-capture sessions in Redis so they survive
// a process restart. Key locks stay in-process: a single instance owns the
// capture flow, Redis only adds durability and TTL expiry.
type CaptureRepository struct {
	rdb *redis.Client

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ contract.CaptureRepository = &CaptureRepository{}

func NewCaptureRepository(rdb *redis.Client) *CaptureRepository {
	return &CaptureRepository{
		rdb:   rdb,
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
	data, err := r.rdb.Get(context.Background(), captureKeyPrefix+username).Bytes()
	if err != nil {
		return store.NewCaptureSession(username)
	}

	var session store.CaptureSession
	if err := json.Unmarshal(data, &session); err != nil {
		return store.NewCaptureSession(username)
	}
	if session.Collected == nil {
		session.Collected = make(map[string]string)
	}
	return &session
}

func (r *CaptureRepository) Save(session *store.CaptureSession) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	r.rdb.Set(context.Background(), captureKeyPrefix+session.Username, data, captureTTL)
}

func (r *CaptureRepository) Delete(username string) {
	r.rdb.Del(context.Background(), captureKeyPrefix+username)
}
