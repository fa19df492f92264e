// Package domain contains core concepts of the file-sharing chat.
// This file defines Message records and their attached file metadata.
// Messages are immutable once created and are never removed.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents an immutable chat record.
// A message carries text content, a file reference, or both.
// Nothing enforces that at least one of the two is present; the
// original system leaves that gap open on purpose.
type Message struct {
	ID        uuid.UUID // unique identifier, assigned at creation
	Sender    string
	Content   string
	File      *FileMeta
	CreatedAt time.Time
}

// FileMeta describes a file persisted by the upload sink.
// URL is the public address under which the bytes are served back.
type FileMeta struct {
	Filename string
	MimeType string
	Encoding string
	URL      string
}
