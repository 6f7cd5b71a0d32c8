package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/openguessr/api/internal/game"
)

// SessionRegistry tracks live game sessions in memory, keyed by session id.
// The registry protects only the map; sessions themselves are single-writer
// by contract — one client drives one session sequentially. Abandoned
// sessions stay here until process exit and are never persisted.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*ownedSession
}

type ownedSession struct {
	accountID string
	sess      *game.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*ownedSession)}
}

// Start draws a fresh session from the pool and registers it under the
// creating account.
func (r *SessionRegistry) Start(accountID string, pool *game.Pool, rounds int) (string, *game.Session, error) {
	sess, err := game.NewSession(pool, rounds)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &ownedSession{accountID: accountID, sess: sess}
	r.mu.Unlock()
	return id, sess, nil
}

// Get returns the session if it exists and belongs to accountID. Sessions
// owned by other accounts are indistinguishable from missing ones.
func (r *SessionRegistry) Get(id, accountID string) (*game.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned, ok := r.sessions[id]
	if !ok || owned.accountID != accountID {
		return nil, ErrNotFound
	}
	return owned.sess, nil
}

// Remove drops a session, normally right after it has been persisted.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
