package domain

import "io"

// Upload is an in-flight file transfer attached to a message post.
// Reader streams the raw bytes exactly once; ContentType is whatever
// the client declared and may be empty.
type Upload struct {
	Filename    string
	ContentType string
	Encoding    string
	Reader      io.Reader
}
