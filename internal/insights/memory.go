package insights

import (
	"sync"
	"time"
)

// maxMemory bounds how many messages are kept per chat session.
const maxMemory = 10

// promptWindow is how many recent messages are included in the prompt.
const promptWindow = 6

// Turn is one remembered chat message.
type Turn struct {
	Role    string
	Content string
	At      time.Time
}

type sessionKey struct {
	userID    uint
	sessionID string
}

type sessionMemory struct {
	turns    []Turn
	lastSeen time.Time
}

// MemoryStore keeps short per-session conversation history so follow-up
// questions have context. Sessions are in-memory only and discarded when
// idle past their TTL.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[sessionKey]*sessionMemory
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[sessionKey]*sessionMemory)}
}

// Save appends a turn to the session, trimming to the last maxMemory turns.
func (m *MemoryStore) Save(userID uint, sessionID, role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := sessionKey{userID: userID, sessionID: sessionID}
	sess, ok := m.sessions[key]
	if !ok {
		sess = &sessionMemory{}
		m.sessions[key] = sess
	}
	sess.turns = append(sess.turns, Turn{Role: role, Content: content, At: time.Now()})
	if len(sess.turns) > maxMemory {
		sess.turns = sess.turns[len(sess.turns)-maxMemory:]
	}
	sess.lastSeen = time.Now()
}

// Load returns a copy of the session's turns, oldest first.
func (m *MemoryStore) Load(userID uint, sessionID string) []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[sessionKey{userID: userID, sessionID: sessionID}]
	if !ok {
		return nil
	}
	out := make([]Turn, len(sess.turns))
	copy(out, sess.turns)
	return out
}

// Expire drops sessions idle longer than ttl and returns how many were
// removed. Called periodically by the server janitor.
func (m *MemoryStore) Expire(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(m.sessions, key)
			removed++
		}
	}
	return removed
}
