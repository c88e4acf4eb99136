package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ListAll returns every entry, most recent first.
// Ordering is ORDER BY created_at DESC, id DESC.
//
// The result is fully materialized. Returns an empty slice (not nil) if the
// history is empty. Failures are *ReadError.
func (s *Store) ListAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, content_type, created_at
		FROM clipboard
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, &ReadError{Op: "list entries", Err: err}
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, &ReadError{Op: "list entries", Err: err}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, &ReadError{Op: "iterate entries", Err: err}
	}

	if entries == nil {
		entries = []Entry{}
	}

	return entries, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clipboard`).Scan(&count); err != nil {
		return 0, &ReadError{Op: "count entries", Err: err}
	}
	return count, nil
}

// scanEntry scans a row into an Entry struct.
func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry     Entry
		content   sql.NullString
		createdAt int64
	)
	if err := rows.Scan(&entry.ID, &content, &entry.ContentType, &createdAt); err != nil {
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	if !content.Valid {
		return Entry{}, fmt.Errorf("scan entry %d: null content", entry.ID)
	}
	entry.Content = content.String
	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	return entry, nil
}
