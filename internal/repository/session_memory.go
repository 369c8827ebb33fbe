package repository

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

// SessionMemory is the in-memory SessionRepository. Sessions live until the
// idle TTL expires; every read or write refreshes the expiration, so an
// active practice run never gets evicted mid-session.
//
// The store keeps and hands out independent copies. Callers and the
// background evaluation goroutine never observe each other's mutations
// except through UpdateSession.
type SessionMemory struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewSessionMemory(ttl, cleanupInterval time.Duration) *SessionMemory {
	return &SessionMemory{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (r *SessionMemory) CreateSession(_ context.Context, session *entity.Session) (*entity.Session, error) {
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	r.cache.Set(session.ID, cloneSession(session), r.ttl)
	return session, nil
}

func (r *SessionMemory) GetSessionByID(_ context.Context, sessionID string) (*entity.Session, error) {
	value, found := r.cache.Get(sessionID)
	if !found {
		return nil, entity.ErrSessionNotFound
	}

	session := value.(*entity.Session)
	// Refresh the idle TTL on access.
	r.cache.Set(sessionID, session, r.ttl)
	return cloneSession(session), nil
}

func (r *SessionMemory) UpdateSession(_ context.Context, session *entity.Session) (*entity.Session, error) {
	if _, found := r.cache.Get(session.ID); !found {
		return nil, entity.ErrSessionNotFound
	}

	session.UpdatedAt = time.Now().UTC()
	r.cache.Set(session.ID, cloneSession(session), r.ttl)
	return session, nil
}

func (r *SessionMemory) DeleteSession(_ context.Context, sessionID string) error {
	if _, found := r.cache.Get(sessionID); !found {
		return entity.ErrSessionNotFound
	}

	r.cache.Delete(sessionID)
	return nil
}

// cloneSession copies the session and its containers so no struct is shared
// between the store and its callers.
func cloneSession(session *entity.Session) *entity.Session {
	clone := *session
	clone.RawQuestions = append([]string(nil), session.RawQuestions...)
	clone.Questions = append([]entity.Question(nil), session.Questions...)
	clone.Answers = append([]string(nil), session.Answers...)
	clone.Evaluations = append([]entity.EvaluationResult(nil), session.Evaluations...)
	return &clone
}
