package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = "2006-01-02 15:04:05"

// sqlStore holds the queries shared by both backends. Queries are written
// with ? placeholders and rebound for drivers that want $n.
type sqlStore struct {
	db     *sql.DB
	dollar bool
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

func (s *sqlStore) rebind(query string) string {
	if !s.dollar {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Append records one exchange.
func (s *sqlStore) Append(ctx context.Context, ex Exchange) error {
	if ex.Time.IsZero() {
		ex.Time = time.Now()
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO exchanges (session_id, model, prompt, response, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), ex.SessionID, ex.Model, ex.Prompt, ex.Response, ex.Time.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

// ListSessions returns every recorded session, most recently used first.
func (s *sqlStore) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, MIN(model), COUNT(*), MAX(created_at)
		FROM exchanges
		GROUP BY session_id
		ORDER BY MAX(created_at) DESC, session_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var lastUsed string
		if err := rows.Scan(&info.ID, &info.Model, &info.Exchanges, &lastUsed); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if info.LastUsed, err = parseTimestamp(lastUsed); err != nil {
			return nil, fmt.Errorf("parse last used: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// LoadSession returns a session's exchanges in the order they happened.
func (s *sqlStore) LoadSession(ctx context.Context, id string) ([]Exchange, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT session_id, model, prompt, response, created_at
		FROM exchanges
		WHERE session_id = ?
		ORDER BY id ASC
	`), id)
	if err != nil {
		return nil, fmt.Errorf("load exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		var ex Exchange
		var createdAt string
		if err := rows.Scan(&ex.SessionID, &ex.Model, &ex.Prompt, &ex.Response, &createdAt); err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		if ex.Time, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		exchanges = append(exchanges, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchanges: %w", err)
	}
	if len(exchanges) == 0 {
		return nil, ErrSessionNotFound
	}
	return exchanges, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timeFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
