package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Exchange is one prompt/response pair from an interactive session.
type Exchange struct {
	SessionID string
	Model     string
	Prompt    string
	Response  string
	Time      time.Time
}

// SessionInfo summarises a recorded session.
type SessionInfo struct {
	ID        string
	Model     string
	Exchanges int
	LastUsed  time.Time
}

// TranscriptStore persists exchanges across runs.
type TranscriptStore interface {
	Append(ctx context.Context, ex Exchange) error
	ListSessions(ctx context.Context) ([]SessionInfo, error)
	LoadSession(ctx context.Context, id string) ([]Exchange, error)
	Close() error
}

// ErrSessionNotFound is returned by LoadSession for an unknown id.
var ErrSessionNotFound = errors.New("session not found")

// Open picks the backend from the DSN: postgres:// and postgresql:// URLs
// use Postgres, anything else is a SQLite file path.
func Open(dsn string) (TranscriptStore, error) {
	if IsPostgresDSN(dsn) {
		s, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := NewSQLiteStore(dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
