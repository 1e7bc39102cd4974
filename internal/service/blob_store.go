package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"docspot/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedDocument = errors.New("document must be a PDF, PNG or JPEG file")
	ErrDocumentTooLarge    = errors.New("document exceeds the upload size limit")
	ErrEmptyDocument       = errors.New("document is empty")
)

// PublicUploadPrefix is the URL path stored documents are served under
const PublicUploadPrefix = "/uploads/"

var allowedDocumentTypes = []string{"application/pdf", "image/png", "image/jpeg"}

// BlobStore keeps uploaded documents and hands back a reference to them
type BlobStore interface {
	Save(ctx context.Context, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

type localBlobStore struct {
	dir      string
	maxBytes int64
}

func NewLocalBlobStore(cfg config.UploadConfig) (BlobStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", cfg.Dir, err)
	}
	return &localBlobStore{dir: cfg.Dir, maxBytes: cfg.MaxBytes}, nil
}

// Save sniffs the content type, writes the file under a random name and returns
// its public reference "/uploads/<name>".
func (s *localBlobStore) Save(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrDocumentTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedDocumentTypes...) {
		return "", ErrUnsupportedDocument
	}

	name := uuid.New().String() + mtype.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}

	return PublicUploadPrefix + name, nil
}

// Delete removes a document by the reference Save returned. A missing file is not an error.
func (s *localBlobStore) Delete(_ context.Context, ref string) error {
	name := strings.TrimPrefix(ref, PublicUploadPrefix)
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return fmt.Errorf("invalid document reference %q", ref)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
