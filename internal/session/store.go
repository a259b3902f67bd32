package session

import (
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
	"github.com/zeromicro/go-zero/core/stringx"

	"azquote-api/pkg/llm"
)

// Session holds one requirements conversation. Values stored here are copies;
// mutate a session and Save it back.
type Session struct {
	ID       string        `json:"id"`
	Messages []llm.Message `json:"messages"`
	// Done marks the question agent's handoff; proposal generation requires it.
	Done bool `json:"done"`
	// Requirements is the flattened transcript, set when Done flips.
	Requirements string    `json:"requirements"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Clone deep-copies the session so callers cannot alias stored state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Messages = make([]llm.Message, len(s.Messages))
	copy(cp.Messages, s.Messages)
	return &cp
}

// Store keeps sessions in memory with TTL eviction. Safe for concurrent use.
type Store struct {
	cache *collection.Cache
}

// NewStore builds a session store whose entries expire after ttl idle time.
func NewStore(ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	cache, err := collection.NewCache(ttl, collection.WithName("session"))
	if err != nil {
		return nil, fmt.Errorf("session: init cache: %w", err)
	}
	return &Store{cache: cache}, nil
}

// NewID returns a fresh opaque session identifier.
func NewID() string {
	return stringx.Randn(24)
}

// Get returns a copy of the stored session, if present.
func (s *Store) Get(id string) (*Session, bool) {
	value, ok := s.cache.Get(Key(id))
	if !ok {
		return nil, false
	}
	sess, ok := value.(*Session)
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// Save stores a copy of the session, refreshing its TTL.
func (s *Store) Save(sess *Session) {
	if sess == nil || sess.ID == "" {
		return
	}
	cp := sess.Clone()
	cp.UpdatedAt = time.Now()
	s.cache.Set(Key(sess.ID), cp)
}

// Delete removes the session; missing ids are a no-op.
func (s *Store) Delete(id string) {
	s.cache.Del(Key(id))
}
