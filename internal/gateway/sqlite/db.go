// Package sqlite implements the persistence gateway on an embedded
// SQLite database. It stands in for the hosted backend: each store maps
// one table, timestamps are stored as UTC nanoseconds so listing order is
// exact, and referential policy (channel deletion cascades through topics
// to posts) is enforced by the schema.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/malezi/malezi/internal/gateway"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	email      TEXT NOT NULL DEFAULT '',
	full_name  TEXT NOT NULL DEFAULT '',
	bio        TEXT NOT NULL DEFAULT '',
	avatar_url TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL DEFAULT 'member',
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS channels (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	is_public   INTEGER NOT NULL DEFAULT 1,
	created_by  TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
	id          TEXT PRIMARY KEY,
	channel_id  TEXT NOT NULL REFERENCES channels(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_by  TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_topics_channel ON topics(channel_id);

CREATE TABLE IF NOT EXISTS posts (
	id         TEXT PRIMARY KEY,
	topic_id   TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_topic ON posts(topic_id);

CREATE TABLE IF NOT EXISTS resources (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	file_type      TEXT NOT NULL,
	category       TEXT NOT NULL,
	tags           TEXT NOT NULL DEFAULT '[]',
	file_url       TEXT NOT NULL DEFAULT '',
	is_featured    INTEGER NOT NULL DEFAULT 0,
	download_count INTEGER NOT NULL DEFAULT 0,
	created_by     TEXT NOT NULL,
	created_at     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id                   TEXT PRIMARY KEY,
	title                TEXT NOT NULL,
	description          TEXT NOT NULL DEFAULT '',
	event_type           TEXT NOT NULL DEFAULT '',
	location             TEXT NOT NULL DEFAULT '',
	start_date           INTEGER NOT NULL,
	end_date             INTEGER NOT NULL,
	max_participants     INTEGER NOT NULL DEFAULT 0,
	current_participants INTEGER NOT NULL DEFAULT 0,
	created_by           TEXT NOT NULL,
	created_at           INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS event_registrations (
	id         TEXT PRIMARY KEY,
	event_id   TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	UNIQUE(event_id, user_id)
);
`

// Gateway implements gateway.Gateway on SQLite.
type Gateway struct {
	conn *sql.DB
}

// Verify *Gateway satisfies the full contract at compile time.
var _ gateway.Gateway = (*Gateway)(nil)

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Gateway, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Gateway{conn: conn}, nil
}

// Close closes the underlying database connection.
func (g *Gateway) Close() error {
	return g.conn.Close()
}

// Timestamps are persisted as UTC nanoseconds. Sub-second precision keeps
// the created_at orderings exact even for rows inserted back to back;
// ORDER BY clauses still add rowid as a tiebreak.
func nanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
