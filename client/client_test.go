package client

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/graphql"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/repositories"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/runtime"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/runtime/workers"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/server"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/services"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/uploads"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	req := require.New(t)

	db, err := repositories.OpenInMemory()
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	fileSink, err := uploads.NewSink(t.TempDir(), "http://localhost:4000", slog.Default())
	req.NoError(err)

	broker := runtime.NewBroker()
	events := make(chan event.DomainEvent, 8)
	chatService := services.NewChatService(slog.Default(),
		repositories.NewMessageRepository(db, slog.Default()),
		fileSink, broker, events)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = workers.NewEventFanout(slog.Default(), broker, events, time.Second).Run(ctx)
	}()

	schema, err := graphql.ParseSchema(graphql.NewResolver(slog.Default(), chatService, 16))
	req.NoError(err)

	testServer := httptest.NewServer(server.NewRouter(server.Dependencies{
		Log:       slog.Default(),
		Schema:    schema,
		UploadDir: fileSink.Dir(),
	}))
	t.Cleanup(testServer.Close)
	return testServer
}

func newTestClient(testServer *httptest.Server, pollInterval time.Duration) *Client {
	httpURL := testServer.URL + "/graphql"
	wsURL := strings.Replace(httpURL, "http", "ws", 1)
	return New(slog.Default(), httpURL, wsURL, pollInterval)
}

func Test_Client_Post_Then_Fetch(t *testing.T) {
	req := require.New(t)
	testServer := startServer(t)
	c := newTestClient(testServer, time.Hour)

	posted, err := c.PostMessage(context.Background(), "Alice", "hi from the client")
	req.NoError(err)
	req.Equal("Alice", posted.Sender)
	req.Equal("hi from the client", posted.Content)

	fetched, err := c.FetchMessages(context.Background())
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal(posted.ID, fetched[0].ID)
}

func Test_Client_Subscription_Pushes_Into_Timeline(t *testing.T) {
	req := require.New(t)
	testServer := startServer(t)

	// Polling is effectively disabled: whatever lands in the timeline
	// after the initial poll arrived over the subscription.
	c := newTestClient(testServer, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)
	time.Sleep(300 * time.Millisecond)

	poster := newTestClient(testServer, time.Hour)
	posted, err := poster.PostMessage(context.Background(), "Bob", "pushed record")
	req.NoError(err)

	req.Eventually(func() bool {
		for _, m := range c.Timeline.Messages() {
			if m.ID == posted.ID {
				return true
			}
		}
		return false
	}, 3*time.Second, 50*time.Millisecond, "pushed record never reached the timeline")
}
