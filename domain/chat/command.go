package chat

import (
	"time"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
)

// PostMessageCommand is the intent to append one message.
// File is optional; its Reader is drained synchronously while the
// command is handled.
type PostMessageCommand struct {
	Sender    string
	Content   string
	File      *domain.Upload
	CreatedAt time.Time
}
