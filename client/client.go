// Package client is a small GraphQL client for the chat server.
// It mirrors the browser views: poll the full message list on a fixed
// interval, hold a messageAdded subscription over WebSocket, and merge
// both sources into a local timeline deduplicated by message id.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/sink"
)

const messageFields = "id sender content file { filename mimetype encoding url }"

type Client struct {
	log          *slog.Logger
	httpURL      string
	wsURL        string
	httpClient   *http.Client
	pollInterval time.Duration
	Timeline     *sink.Timeline
}

func New(log *slog.Logger, httpURL, wsURL string, pollInterval time.Duration) *Client {
	return &Client{
		log:          log,
		httpURL:      httpURL,
		wsURL:        wsURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		pollInterval: pollInterval,
		Timeline:     sink.NewTimeline(),
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type wireMessage struct {
	ID      string    `json:"id"`
	Sender  string    `json:"sender"`
	Content *string   `json:"content"`
	File    *wireFile `json:"file"`
}

type wireFile struct {
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Encoding string `json:"encoding"`
	URL      string `json:"url"`
}

func (c *Client) execute(ctx context.Context, request graphqlRequest, out interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.httpURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var response graphqlResponse
	if err = json.NewDecoder(res.Body).Decode(&response); err != nil {
		return err
	}
	if len(response.Errors) > 0 {
		return fmt.Errorf("graphql error: %s", response.Errors[0].Message)
	}
	return json.Unmarshal(response.Data, out)
}

// FetchMessages returns the server's full message list.
func (c *Client) FetchMessages(ctx context.Context) ([]domain.Message, error) {
	var data struct {
		Messages []wireMessage `json:"messages"`
	}
	query := fmt.Sprintf("{ messages { %s } }", messageFields)
	if err := c.execute(ctx, graphqlRequest{Query: query}, &data); err != nil {
		return nil, err
	}
	return fromWire(data.Messages)
}

// PostMessage sends a text-only message and returns the stored record.
func (c *Client) PostMessage(ctx context.Context, sender, content string) (domain.Message, error) {
	var data struct {
		PostMessage wireMessage `json:"postMessage"`
	}
	mutation := fmt.Sprintf(
		"mutation($sender: String!, $content: String) { postMessage(sender: $sender, content: $content) { %s } }",
		messageFields)
	err := c.execute(ctx, graphqlRequest{
		Query:     mutation,
		Variables: map[string]interface{}{"sender": sender, "content": content},
	}, &data)
	if err != nil {
		return domain.Message{}, err
	}
	messages, err := fromWire([]wireMessage{data.PostMessage})
	if err != nil {
		return domain.Message{}, err
	}
	return messages[0], nil
}

// Run polls and subscribes until ctx is canceled.
// Each poll overwrites the timeline; each pushed record is appended to
// it, deduplicated by id. The subscription is re-dialed after errors.
func (c *Client) Run(ctx context.Context) {
	go func() {
		for {
			if err := c.subscribe(ctx); err != nil && ctx.Err() == nil {
				c.log.Warn("Subscription lost, reconnecting", "error", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		if messages, err := c.FetchMessages(ctx); err == nil {
			c.Timeline.Replace(messages)
		} else if ctx.Err() == nil {
			c.log.Warn("Poll failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

type wsFrame struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// subscribe speaks the graphql-ws subprotocol: connection_init, then a
// single start frame, then data frames until the connection drops.
func (c *Client) subscribe(ctx context.Context) error {
	dialer := websocket.Dialer{Subprotocols: []string{"graphql-ws"}}
	conn, _, err := dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	if err = conn.WriteJSON(wsFrame{Type: "connection_init", Payload: json.RawMessage("{}")}); err != nil {
		return err
	}
	start, err := json.Marshal(graphqlRequest{
		Query: fmt.Sprintf("subscription { messageAdded { %s } }", messageFields),
	})
	if err != nil {
		return err
	}
	if err = conn.WriteJSON(wsFrame{ID: "1", Type: "start", Payload: start}); err != nil {
		return err
	}

	for {
		var frame wsFrame
		if err = conn.ReadJSON(&frame); err != nil {
			return err
		}
		switch frame.Type {
		case "data":
			var payload struct {
				Data struct {
					MessageAdded wireMessage `json:"messageAdded"`
				} `json:"data"`
			}
			if err = json.Unmarshal(frame.Payload, &payload); err != nil {
				return err
			}
			messages, err := fromWire([]wireMessage{payload.Data.MessageAdded})
			if err != nil {
				return err
			}
			c.Timeline.Append(messages[0])
		case "complete", "error":
			return fmt.Errorf("subscription ended: %s", frame.Type)
		default:
			// connection_ack and keepalive frames
		}
	}
}

func fromWire(messages []wireMessage) ([]domain.Message, error) {
	result := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			return nil, fmt.Errorf("parsing message id %q: %w", m.ID, err)
		}
		result = append(result, domain.Message{
			ID:      id,
			Sender:  m.Sender,
			Content: lo.FromPtr(m.Content),
			File: lo.TernaryF(m.File == nil,
				func() *domain.FileMeta { return nil },
				func() *domain.FileMeta {
					return &domain.FileMeta{
						Filename: m.File.Filename,
						MimeType: m.File.Mimetype,
						Encoding: m.File.Encoding,
						URL:      m.File.URL,
					}
				}),
		})
	}
	return result, nil
}
