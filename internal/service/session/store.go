package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/oralabs/ora/backend/internal/model/conversation"
)

var ErrUserRequired = errors.New("user id is required")

const (
	// maxTurnsPerUser bounds the stored history; older turns are
	// discarded once the cap is reached.
	maxTurnsPerUser = 50
	defaultMaxUsers = 1024
	defaultTTL      = 24 * time.Hour
)

// Store is the per-user rolling conversation history used as
// generation context.
type Store interface {
	Append(userID string, turn conversation.Turn) error
	Get(userID string) []conversation.Turn
	Window(userID string, n int) []conversation.Turn
	Evict(userID string)
	Len(userID string) int
}

// LRUStore implements Store on a bounded, TTL-expiring LRU keyed by
// user id. Session state is volatile and process-lifetime.
type LRUStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, []conversation.Turn]
}

// NewLRUStore bootstraps the in-memory session store. Zero values fall
// back to the defaults (1024 users, 24h TTL).
func NewLRUStore(maxUsers int, ttl time.Duration) *LRUStore {
	if maxUsers <= 0 {
		maxUsers = defaultMaxUsers
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRUStore{
		cache: expirable.NewLRU[string, []conversation.Turn](maxUsers, nil, ttl),
	}
}

// Append adds a turn to the user's history, assigning an id and
// timestamp when missing and trimming to the per-user bound.
func (s *LRUStore) Append(userID string, turn conversation.Turn) error {
	if userID == "" {
		return ErrUserRequired
	}

	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	turn.UserID = userID

	s.mu.Lock()
	defer s.mu.Unlock()

	turns, _ := s.cache.Get(userID)
	turns = append(turns, turn)
	if len(turns) > maxTurnsPerUser {
		turns = turns[len(turns)-maxTurnsPerUser:]
	}
	s.cache.Add(userID, turns)
	return nil
}

// Get returns a copy of the user's stored history.
func (s *LRUStore) Get(userID string) []conversation.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.cache.Get(userID)
	if !ok {
		return nil
	}
	copied := make([]conversation.Turn, len(turns))
	copy(copied, turns)
	return copied
}

// Window returns the last n turns for the user, newest last.
func (s *LRUStore) Window(userID string, n int) []conversation.Turn {
	turns := s.Get(userID)
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// Evict drops the user's session state.
func (s *LRUStore) Evict(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(userID)
}

// Len reports how many turns are stored for the user.
func (s *LRUStore) Len(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns, _ := s.cache.Get(userID)
	return len(turns)
}
