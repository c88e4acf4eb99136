package store

import (
	"context"
	"time"
)

// Append inserts a new text entry and returns it as stored.
//
// created_at comes from the store's clock at the moment of the call, never
// from the caller. The insert clamps it to the newest created_at already in
// the table, so a wall clock stepping backwards cannot reorder history. The
// whole insert is one statement, so concurrent readers see either no row or
// the complete row.
//
// Append does not de-duplicate and does not retry. Failures are *WriteError.
func (s *Store) Append(ctx context.Context, content string) (Entry, error) {
	now := s.now().UTC().UnixNano()

	var (
		id        int64
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO clipboard (content, content_type, created_at)
		SELECT ?, ?, MAX(?, COALESCE((SELECT MAX(created_at) FROM clipboard), 0))
		RETURNING id, created_at
	`,
		content,
		ContentTypeText,
		now,
	).Scan(&id, &createdAt)
	if err != nil {
		return Entry{}, NewWriteError(err)
	}

	return Entry{
		ID:          id,
		Content:     content,
		ContentType: ContentTypeText,
		CreatedAt:   time.Unix(0, createdAt).UTC(),
	}, nil
}
