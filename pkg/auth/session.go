// Package auth persists Garmin Connect sessions and decides between
// session restore and fresh login.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"garminexport/pkg/connect"
)

// ErrNoSession indicates there is no usable stored session. A missing,
// unreadable, or undecodable session file all report this; absence is a
// signal for the authenticator, not a failure.
var ErrNoSession = errors.New("no stored session")

// FileStore persists session token material as a single JSON file.
type FileStore struct {
	Path string
}

// NewFileStore creates a store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the stored session. Any way the file fails to yield a usable
// session maps to ErrNoSession.
func (s *FileStore) Load() (*connect.Session, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	var session connect.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if !session.Valid() {
		return nil, ErrNoSession
	}

	return &session, nil
}

// Save writes the session with owner-only permissions, creating the
// parent directory when needed. Token material is a secret.
func (s *FileStore) Save(session *connect.Session) error {
	if !session.Valid() {
		return fmt.Errorf("refusing to save empty session")
	}

	if dir := filepath.Dir(s.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session directory: %w", err)
		}
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}
