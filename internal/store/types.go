package store

import "time"

// ContentTypeText is the only payload kind recorded today.
const ContentTypeText = "text"

// Entry is one recorded, distinct clipboard value.
type Entry struct {
	ID          int64     `json:"id" yaml:"id"`
	Content     string    `json:"content" yaml:"content"`
	ContentType string    `json:"content_type" yaml:"content_type"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`

	// Favorite is reserved for tagging support. Nothing sets it and it is
	// not persisted, so it is always false.
	Favorite bool `json:"favorite" yaml:"favorite"`
}
