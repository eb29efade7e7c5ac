package index

import (
	"fmt"
	"unicode"
)

// Hit is one indexed search result
type Hit struct {
	SessionID   string
	SourceFile  string
	SessionType string
	MessageID   string
	Role        string
	Timestamp   string
	Snippet     string
}

// containsCJK reports whether the query contains CJK ideographs, which
// the unicode61 tokenizer cannot segment; those queries fall back to LIKE.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// Search queries the index, FTS first with a LIKE fallback
func (d *DB) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 50
	}

	if containsCJK(query) {
		return d.searchLike(query, limit)
	}

	hits, err := d.searchFTS(query, limit)
	if err != nil {
		// FTS rejects queries with unbalanced quotes or bare operators
		return d.searchLike(query, limit)
	}
	return hits, nil
}

func (d *DB) searchFTS(query string, limit int) ([]Hit, error) {
	rows, err := d.db.Query(`
		SELECT
			m.session_id,
			m.source_file,
			s.session_type,
			m.message_id,
			m.role,
			m.ts,
			snippet(messages_fts, 0, '>>>', '<<<', '...', 40) AS snip
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN sessions s ON m.session_id = s.session_id AND m.source_file = s.source_file
		WHERE messages_fts MATCH ?
		ORDER BY bm25(messages_fts)
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fts query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanHits(rows)
}

func (d *DB) searchLike(query string, limit int) ([]Hit, error) {
	rows, err := d.db.Query(`
		SELECT
			m.session_id,
			m.source_file,
			s.session_type,
			m.message_id,
			m.role,
			m.ts,
			substr(m.content, 1, 120) AS snip
		FROM messages m
		JOIN sessions s ON m.session_id = s.session_id AND m.source_file = s.source_file
		WHERE m.content LIKE ?
		ORDER BY m.ts
		LIMIT ?`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("like query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanHits(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanHits(rows rowScanner) ([]Hit, error) {
	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.SessionID, &h.SourceFile, &h.SessionType, &h.MessageID, &h.Role, &h.Timestamp, &h.Snippet); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
