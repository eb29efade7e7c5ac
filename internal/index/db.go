// Package index maintains an optional SQLite full-text index derived from
// the normalized model. It is never consulted by the discovery pipeline;
// it only accelerates repeated searches over large histories.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/iksnae/codehist/internal"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS sessions (
    session_id    TEXT NOT NULL,
    source_file   TEXT NOT NULL,
    session_type  TEXT NOT NULL DEFAULT '',
    agent         TEXT NOT NULL DEFAULT '',
    workspace     TEXT NOT NULL DEFAULT '',
    ts            TEXT NOT NULL DEFAULT '',
    message_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (session_id, source_file)
);

CREATE TABLE IF NOT EXISTS messages (
    session_id  TEXT NOT NULL,
    source_file TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    message_id  TEXT NOT NULL DEFAULT '',
    role        TEXT NOT NULL,
    ts          TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL,
    PRIMARY KEY (session_id, source_file, seq)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    content,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, content) VALUES (new.rowid, new.content);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content) VALUES('delete', old.rowid, old.content);
    INSERT INTO messages_fts(rowid, content) VALUES (new.rowid, new.content);
END;
`

// DB wraps the index database
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at dbPath
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database
func (d *DB) Close() error {
	return d.db.Close()
}

// IndexWorkspace replaces the indexed rows for every session in data.
// Sessions are keyed by (session_id, source_file), so duplicate session
// ids originating from different files stay distinct in the index too.
func (d *DB) IndexWorkspace(data *internal.WorkspaceData) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin index transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, session := range data.ChatSessions {
		sourceFile, _ := session.Metadata["source_file"].(string)
		sessionType, _ := session.Metadata["type"].(string)

		if _, err := tx.Exec(
			"DELETE FROM messages WHERE session_id = ? AND source_file = ?",
			session.SessionID, sourceFile,
		); err != nil {
			return fmt.Errorf("clear session messages: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO sessions
			(session_id, source_file, session_type, agent, workspace, ts, message_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			session.SessionID, sourceFile, sessionType, session.Agent,
			session.Workspace, session.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			len(session.Messages),
		); err != nil {
			return fmt.Errorf("index session %s: %w", session.SessionID, err)
		}

		for i := range session.Messages {
			message := &session.Messages[i]
			if _, err := tx.Exec(`
				INSERT INTO messages
				(session_id, source_file, seq, message_id, role, ts, content)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				session.SessionID, sourceFile, i, message.ID, message.Role,
				message.Timestamp.Format("2006-01-02T15:04:05Z07:00"), message.Content,
			); err != nil {
				return fmt.Errorf("index message %d of %s: %w", i, session.SessionID, err)
			}
		}
	}

	return tx.Commit()
}

// Count returns the number of indexed sessions and messages
func (d *DB) Count() (sessions, messages int, err error) {
	if err = d.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessions); err != nil {
		return 0, 0, err
	}
	if err = d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&messages); err != nil {
		return 0, 0, err
	}
	return sessions, messages, nil
}
