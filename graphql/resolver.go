package graphql

import (
	"context"
	"log/slog"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/chat"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/services"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/sink"
)

type Resolver struct {
	log                  *slog.Logger
	chatService          services.IChatService
	connectionBufferSize int
}

func NewResolver(log *slog.Logger, chatService services.IChatService,
	connectionBufferSize int) *Resolver {
	return &Resolver{log: log, chatService: chatService,
		connectionBufferSize: connectionBufferSize}
}

// ParseSchema binds the schema document to a resolver.
func ParseSchema(resolver *Resolver) (*graphqlgo.Schema, error) {
	return graphqlgo.ParseSchema(Schema, resolver)
}

func (r *Resolver) Messages() ([]*MessageResolver, error) {
	messages, err := r.chatService.GetMessages()
	if err != nil {
		return nil, err
	}
	return lo.Map(messages, func(item domain.Message, _ int) *MessageResolver {
		return &MessageResolver{message: item}
	}), nil
}

type PostMessageArgs struct {
	Sender  string
	Content *string
	File    *Upload
}

func (r *Resolver) PostMessage(ctx context.Context, args PostMessageArgs) (*MessageResolver, error) {
	cmd := chat.PostMessageCommand{Sender: args.Sender}
	if args.Content != nil {
		cmd.Content = *args.Content
	}
	if args.File != nil {
		cmd.File = lo.ToPtr(args.File.Upload)
	}

	message, err := r.chatService.PostMessage(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &MessageResolver{message: message}, nil
}

// MessageAdded establishes a long-lived delivery channel for one client.
// A dedicated sink is registered with the broker; whatever is published
// after this point flows through, nothing before it does. Cleanup is
// driven by the subscription context so a gone client never leaks a
// broker entry.
func (r *Resolver) MessageAdded(ctx context.Context) (<-chan *MessageResolver, error) {
	subscriberID := uuid.NewString()
	channelSink := sink.NewChannelSink(r.connectionBufferSize)
	r.chatService.Subscribe(subscriberID, channelSink)

	out := make(chan *MessageResolver)
	go func() {
		defer close(out)
		defer r.chatService.Unsubscribe(subscriberID)
		for {
			select {
			case <-ctx.Done():
				r.log.Debug("Subscriber disconnected", "subscriber_id", subscriberID)
				return
			case evt := <-channelSink.Events:
				posted, ok := evt.(event.MessagePosted)
				if !ok {
					continue
				}
				select {
				case out <- &MessageResolver{message: posted.Message}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type MessageResolver struct {
	message domain.Message
}

func (r *MessageResolver) ID() graphqlgo.ID {
	return graphqlgo.ID(r.message.ID.String())
}

func (r *MessageResolver) Sender() string {
	return r.message.Sender
}

func (r *MessageResolver) Content() *string {
	if r.message.Content == "" {
		return nil
	}
	return lo.ToPtr(r.message.Content)
}

func (r *MessageResolver) File() *FileResolver {
	if r.message.File == nil {
		return nil
	}
	return &FileResolver{file: *r.message.File}
}

type FileResolver struct {
	file domain.FileMeta
}

func (r *FileResolver) Filename() string { return r.file.Filename }
func (r *FileResolver) Mimetype() string { return r.file.MimeType }
func (r *FileResolver) Encoding() string { return r.file.Encoding }
func (r *FileResolver) URL() string      { return r.file.URL }
