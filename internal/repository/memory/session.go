package memory

import (
	"context"
	"sync"

	"github.com/aps-extract/extract-service/internal/model"
)

// SessionRepo is the in-process session store. Each session is written by
// exactly one worker and taken by exactly one client call; the mutex only
// guards the index against concurrent insert/delete from different sessions.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func NewSessionRepo() *SessionRepo {
	return &SessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *SessionRepo) Put(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

func (r *SessionRepo) Take(ctx context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	delete(r.sessions, id)

	return session, nil
}
