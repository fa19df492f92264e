// Package uploads writes attached file streams to local disk and
// hands back the public URL they will be served under.
package uploads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/errors"
)

type ISink interface {
	Save(ctx context.Context, upload domain.Upload) (domain.FileMeta, error)
}

// Sink stores uploads under a single flat directory, keeping the
// original filename. Collisions overwrite and names are not sanitized;
// the original system behaves the same way and that gap is kept as-is.
type Sink struct {
	dir           string
	publicBaseURL string
	log           *slog.Logger
}

func NewSink(dir, publicBaseURL string, log *slog.Logger) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return &Sink{dir: dir, publicBaseURL: publicBaseURL, log: log}, nil
}

// Dir returns the directory files are written to, for static serving.
func (s *Sink) Dir() string { return s.dir }

// Save drains the upload stream to disk before returning.
// A write failure removes the partial file and fails the whole save,
// which in turn fails the enclosing mutation.
func (s *Sink) Save(ctx context.Context, upload domain.Upload) (domain.FileMeta, error) {
	if upload.Filename == "" {
		return domain.FileMeta{}, errors.ErrEmptyFilename
	}
	if err := ctx.Err(); err != nil {
		return domain.FileMeta{}, err
	}

	path := filepath.Join(s.dir, upload.Filename)
	dest, err := os.Create(path)
	if err != nil {
		return domain.FileMeta{}, fmt.Errorf("creating %s: %w", path, err)
	}

	written, err := io.Copy(dest, upload.Reader)
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return domain.FileMeta{}, fmt.Errorf("writing %s: %w", path, err)
	}

	mimeType := upload.ContentType
	if mimeType == "" {
		detected, err := mimetype.DetectFile(path)
		if err != nil {
			return domain.FileMeta{}, fmt.Errorf("detecting type of %s: %w", path, err)
		}
		mimeType = detected.String()
	}

	s.log.Debug("File stored", "filename", upload.Filename, "bytes", written, "mimetype", mimeType)
	return domain.FileMeta{
		Filename: upload.Filename,
		MimeType: mimeType,
		Encoding: upload.Encoding,
		URL:      s.publicBaseURL + "/uploads/" + url.PathEscape(upload.Filename),
	}, nil
}
