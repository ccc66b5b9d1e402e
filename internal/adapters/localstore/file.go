// Package localstore provides credential stores that live on the client host:
// a file store for normal use and an in-process store for development.
package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domainauth "github.com/recruitdesk/recruit-web/internal/domain/auth"
	"github.com/recruitdesk/recruit-web/internal/ports"
)

var (
	_ ports.CredentialStore = (*FileStore)(nil)
	_ ports.CredentialStore = (*MemoryStore)(nil)
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// FileStore persists the credential in a single file readable only by the owner.
// Writes go to a temp file in the same directory and are renamed into place.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store writing to path. The parent directory is created on first save.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file store: path is required")
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (domainauth.Credential, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ports.ErrNoCredential
		}
		return "", fmt.Errorf("read credential file: %w", err)
	}
	cred := strings.TrimSpace(string(b))
	if cred == "" {
		return "", ports.ErrNoCredential
	}
	return domainauth.Credential(cred), nil
}

func (s *FileStore) Save(ctx context.Context, cred domainauth.Credential, _ domainauth.Claims) error {
	if cred == "" {
		return errors.New("credential cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod credential file: %w", err)
	}
	if _, err := tmp.WriteString(string(cred)); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close credential file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
