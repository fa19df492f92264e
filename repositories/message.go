package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessages() ([]domain.Message, error)
}

// MessageRepository keeps the whole chat in an in-memory Badger instance.
// The store lives exactly as long as the process; nothing survives a restart.
type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq atomic.Uint64
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) *MessageRepository {
	return &MessageRepository{db: db, log: log}
}

// OpenInMemory returns a Badger instance holding data in RAM only.
// Badger logging is silenced; its INFO output is compaction noise here.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil))
}

type diskMessage struct {
	ID        string        `json:"id"`
	Sender    string        `json:"sender"`
	Content   string        `json:"content,omitempty"`
	File      *diskFileMeta `json:"file,omitempty"`
	CreatedAt int64         `json:"created_at"`
}

type diskFileMeta struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimetype"`
	Encoding string `json:"encoding"`
	URL      string `json:"url"`
}

// StoreMessage appends a message.
// The key is formatted as "msg:{seq_padded}:{uuid}" to:
//  1. Ensure insertion order using 19-digit zero padding (lexicographical order).
//  2. Keep keys unique via UUID even if the sequence ever restarted.
func (m *MessageRepository) StoreMessage(message domain.Message) error {
	key := fmt.Sprintf("msg:%019d:%s", m.seq.Add(1), message.ID)
	bytes, err := json.Marshal(fromDomain(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetMessages returns every stored message, oldest first.
// Thanks to the padded sequence in the key, a forward prefix scan is
// already in insertion order; no sorting pass is needed.
func (m *MessageRepository) GetMessages() ([]domain.Message, error) {
	var raw [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte("msg:")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, b := range raw {
		var disk diskMessage
		if err = json.Unmarshal(b, &disk); err != nil {
			return nil, err
		}
		message, err := toDomain(disk)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func fromDomain(message domain.Message) diskMessage {
	return diskMessage{
		ID:      message.ID.String(),
		Sender:  message.Sender,
		Content: message.Content,
		File: lo.TernaryF(message.File == nil,
			func() *diskFileMeta { return nil },
			func() *diskFileMeta {
				return &diskFileMeta{
					Filename: message.File.Filename,
					MimeType: message.File.MimeType,
					Encoding: message.File.Encoding,
					URL:      message.File.URL,
				}
			}),
		CreatedAt: message.CreatedAt.UnixNano(),
	}
}

func toDomain(disk diskMessage) (domain.Message, error) {
	parsedID, err := uuid.Parse(disk.ID)
	if err != nil {
		return domain.Message{}, err
	}
	var file *domain.FileMeta
	if disk.File != nil {
		file = &domain.FileMeta{
			Filename: disk.File.Filename,
			MimeType: disk.File.MimeType,
			Encoding: disk.File.Encoding,
			URL:      disk.File.URL,
		}
	}
	return domain.Message{
		ID:        parsedID,
		Sender:    disk.Sender,
		Content:   disk.Content,
		File:      file,
		CreatedAt: time.Unix(0, disk.CreatedAt).UTC(),
	}, nil
}
