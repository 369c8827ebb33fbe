package repository

import (
	"context"

	"github.com/prepgenie/prepgenie-backend/internal/entity"
)

// SessionRepository stores practice sessions for the lifetime of one run.
// Nothing survives a process restart by design.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *entity.Session) (*entity.Session, error)
	GetSessionByID(ctx context.Context, sessionID string) (*entity.Session, error)
	UpdateSession(ctx context.Context, session *entity.Session) (*entity.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
