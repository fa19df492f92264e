package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/graphql"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/internal"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/repositories"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/runtime"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/runtime/workers"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/server"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/services"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/uploads"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer executes before exit.
func run() error {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	log := internal.LoggerFromString(config.LogLevel)

	// 2. Message store (in-memory Badger, process lifetime)
	db, err := repositories.OpenInMemory()
	if err != nil {
		return fmt.Errorf("store opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing message store...")
		_ = db.Close()
	}()

	// 3. Core wiring: repository, file sink, broker, fanout
	messageRepository := repositories.NewMessageRepository(db, log)
	fileSink, err := uploads.NewSink(config.UploadDir, config.PublicBaseURL, log)
	if err != nil {
		return err
	}
	broker := runtime.NewBroker()
	events := make(chan event.DomainEvent, config.BufferSize)
	chatService := services.NewChatService(log, messageRepository, fileSink, broker, events)

	sup := workers.NewSupervisor(log)
	sup.Add(workers.NewEventFanout(log, broker, events, config.SinkTimeout))

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sup.Run(ctx)

	// 5. GraphQL schema & HTTP server
	resolver := graphql.NewResolver(log, chatService, config.ConnectionBufferSize)
	schema, err := graphql.ParseSchema(resolver)
	if err != nil {
		return fmt.Errorf("schema parsing failed: %w", err)
	}

	address := fmt.Sprintf(":%d", config.Port)
	httpServer := &http.Server{
		Addr: address,
		Handler: server.NewRouter(server.Dependencies{
			Log:       log,
			Schema:    schema,
			UploadDir: fileSink.Dir(),
		}),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
