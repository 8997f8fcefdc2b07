package state

import (
	"sync"
)

const defaultStripes = 64

// Option customises a memory store.
type Option func(*memoryStore)

// WithStripes sets the number of per-user lock stripes. Values below 1 are ignored.
func WithStripes(n int) Option {
	return func(m *memoryStore) {
		if n > 0 {
			m.stripes = make([]sync.Mutex, n)
		}
	}
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
	initial  Session

	// stripes serialise Update calls per user id; users sharing a stripe wait on each other.
	stripes []sync.Mutex
}

// NewMemoryStore constructs an in-process Store. Sessions live until Clear or process exit.
func NewMemoryStore(initial Session, opts ...Option) Store {
	m := &memoryStore{
		sessions: make(map[int64]Session),
		initial:  initial.Clone(),
		stripes:  make([]sync.Mutex, defaultStripes),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *memoryStore) stripe(userID int64) *sync.Mutex {
	idx := userID % int64(len(m.stripes))
	if idx < 0 {
		idx = -idx
	}
	return &m.stripes[idx]
}

// Get returns a copy of the user's session, creating the initial one on first access.
func (m *memoryStore) Get(userID int64) Session {
	m.mu.RLock()
	sess, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return sess.Clone()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok = m.sessions[userID]; !ok {
		sess = m.initial.Clone()
		m.sessions[userID] = sess
	}
	return sess.Clone()
}

// Put replaces the whole session for a user.
func (m *memoryStore) Put(userID int64, sess Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = sess.Clone()
}

// Clear resets the user's session to the initial one.
func (m *memoryStore) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = m.initial.Clone()
}

// Update runs fn on the user's current session while holding the user's stripe lock.
// The returned session is stored only when fn succeeds; on error the stored session is untouched.
func (m *memoryStore) Update(userID int64, fn func(Session) (Session, error)) (Session, error) {
	lock := m.stripe(userID)
	lock.Lock()
	defer lock.Unlock()

	current := m.Get(userID)
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	m.Put(userID, next)
	return next.Clone(), nil
}

// Len reports how many users have a session.
func (m *memoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CountByState groups sessions by their current state.
func (m *memoryStore) CountByState() map[State]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[State]int)
	for _, sess := range m.sessions {
		out[sess.State]++
	}
	return out
}
