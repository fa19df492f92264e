package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/google/uuid"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/client"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/internal"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerURL    string        `env:"CHAT_SERVER_URL,default=http://localhost:4000/graphql"`
	Sender       string        `env:"CHAT_SENDER,default=terminal"`
	PollInterval time.Duration `env:"CHAT_POLL_INTERVAL,default=3s"`
	LogLevel     string        `env:"LOG_LEVEL,default=info"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run handles the client lifecycle: configuration, the poll/subscribe
// loop, and posting lines typed on stdin.
func run() (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := internal.LoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wsURL := strings.Replace(config.ServerURL, "http", "ws", 1)
	c := client.New(log, config.ServerURL, wsURL, config.PollInterval)
	go c.Run(ctx)

	fmt.Printf(">>> Connected to %s as %q. Type a message, Ctrl+C to quit.\n",
		config.ServerURL, config.Sender)

	// Print records as they land in the timeline.
	printed := make(map[uuid.UUID]struct{})
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, m := range c.Timeline.Messages() {
					if _, seen := printed[m.ID]; seen {
						continue
					}
					printed[m.ID] = struct{}{}
					line := fmt.Sprintf("[%s] %s", m.Sender, m.Content)
					if m.File != nil {
						line += fmt.Sprintf(" (file: %s)", m.File.URL)
					}
					fmt.Println(line)
				}
			}
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		content := strings.TrimSpace(scanner.Text())
		if content == "" {
			continue
		}
		if _, err := c.PostMessage(ctx, config.Sender, content); err != nil {
			if ctx.Err() != nil {
				return exitOK, nil
			}
			log.Warn("Post failed", "error", err)
		}
	}

	<-ctx.Done()
	return exitOK, nil
}
