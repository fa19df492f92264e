package event

import (
	"time"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
)

type DomainEvent interface {
	OccurredAt() time.Time
}

// MessagePosted is published once a message has been stored.
// It is the only event the broadcast topic carries.
type MessagePosted struct {
	Message domain.Message
}

func (m MessagePosted) OccurredAt() time.Time {
	return m.Message.CreatedAt
}
