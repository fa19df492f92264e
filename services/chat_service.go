package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/contract"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/chat"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/errors"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/repositories"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/uploads"
)

type IChatService interface {
	PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (domain.Message, error)
	GetMessages() ([]domain.Message, error)
	Subscribe(subscriberID string, sink contract.EventSink)
	Unsubscribe(subscriberID string)
}

type ChatService struct {
	log        *slog.Logger
	repository repositories.IMessageRepository
	files      uploads.ISink
	broker     contract.IBroker
	events     chan event.DomainEvent
}

func NewChatService(log *slog.Logger, repository repositories.IMessageRepository,
	files uploads.ISink, broker contract.IBroker, events chan event.DomainEvent) *ChatService {
	return &ChatService{log: log, repository: repository, files: files, broker: broker, events: events}
}

// PostMessage handles an incoming message posting intent.
// The file, if any, is streamed to disk before the record exists: a
// failed write rejects the whole mutation. The stored record is then
// published so every live subscriber receives it, and returned to the
// caller so the response carries the assigned identity.
func (s *ChatService) PostMessage(ctx context.Context, cmd chat.PostMessageCommand) (domain.Message, error) {
	if cmd.Sender == "" {
		return domain.Message{}, errors.ErrEmptySender
	}

	var file *domain.FileMeta
	if cmd.File != nil {
		meta, err := s.files.Save(ctx, *cmd.File)
		if err != nil {
			return domain.Message{}, err
		}
		file = &meta
	}

	createdAt := cmd.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	message := domain.Message{
		ID:        uuid.New(),
		Sender:    cmd.Sender,
		Content:   cmd.Content,
		File:      file,
		CreatedAt: createdAt,
	}

	if err := s.repository.StoreMessage(message); err != nil {
		return domain.Message{}, err
	}
	s.publish(event.MessagePosted{Message: message})
	return message, nil
}

func (s *ChatService) GetMessages() ([]domain.Message, error) {
	return s.repository.GetMessages()
}

func (s *ChatService) Subscribe(subscriberID string, sink contract.EventSink) {
	s.broker.Subscribe(subscriberID, sink)
}

func (s *ChatService) Unsubscribe(subscriberID string) {
	s.broker.Unsubscribe(subscriberID)
}

func (s *ChatService) publish(evt event.DomainEvent) {
	select {
	case s.events <- evt:
	default:
		s.log.Warn("Event channel full, dropping broadcast")
	}
}
