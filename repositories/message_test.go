package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
)

func Test_Record_Multiple_Messages_In_Order(t *testing.T) {
	req := require.New(t)
	db, err := OpenInMemory()
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default())
	at := time.Now().UTC().Truncate(time.Nanosecond)
	messages := []domain.Message{
		{ID: uuid.New(), Sender: "Alice", Content: "first", CreatedAt: at},
		{ID: uuid.New(), Sender: "Bob", Content: "second", CreatedAt: at.Add(1 * time.Minute)},
		{ID: uuid.New(), Sender: "Clara", Content: "third", CreatedAt: at.Add(2 * time.Minute)},
	}
	for _, m := range messages {
		req.NoError(repository.StoreMessage(m))
	}

	fetched, err := repository.GetMessages()
	req.NoError(err)
	req.Len(fetched, len(messages))
	req.Equal(messages, fetched)
}

func Test_Record_Message_With_File(t *testing.T) {
	req := require.New(t)
	db, err := OpenInMemory()
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default())
	message := domain.Message{
		ID:     uuid.New(),
		Sender: "Alice",
		File: &domain.FileMeta{
			Filename: "a.txt",
			MimeType: "text/plain",
			Encoding: "7bit",
			URL:      "http://localhost:4000/uploads/a.txt",
		},
		CreatedAt: time.Now().UTC(),
	}
	req.NoError(repository.StoreMessage(message))

	fetched, err := repository.GetMessages()
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal(message, fetched[0])
}

func Test_Duplicate_Content_Keeps_Both_Records(t *testing.T) {
	req := require.New(t)
	db, err := OpenInMemory()
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default())
	at := time.Now().UTC()
	first := domain.Message{ID: uuid.New(), Sender: "Alice", Content: "hi", CreatedAt: at}
	second := domain.Message{ID: uuid.New(), Sender: "Alice", Content: "hi", CreatedAt: at}
	req.NoError(repository.StoreMessage(first))
	req.NoError(repository.StoreMessage(second))

	fetched, err := repository.GetMessages()
	req.NoError(err)
	req.Len(fetched, 2)
	req.NotEqual(fetched[0].ID, fetched[1].ID)
	req.Equal(first.ID, fetched[0].ID)
	req.Equal(second.ID, fetched[1].ID)
}

func Test_Empty_Store_Returns_Empty_List(t *testing.T) {
	req := require.New(t)
	db, err := OpenInMemory()
	req.NoError(err)
	defer db.Close()

	repository := NewMessageRepository(db, slog.Default())
	fetched, err := repository.GetMessages()
	req.NoError(err)
	req.Empty(fetched)
}
