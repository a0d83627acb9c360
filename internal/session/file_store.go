package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	tokenFile   = "token"
	profileFile = "profile.json"
)

// FileStore persists the session as two small files under a directory,
// mirroring the two-key device storage the mobile build used. No encryption;
// token validity is judged only by server responses.
type FileStore struct {
	dir string
}

// NewFileStore creates the session directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// SetToken persists the auth token.
func (s *FileStore) SetToken(_ context.Context, token string) error {
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	return nil
}

// Token returns the persisted token, or "" when absent or unreadable.
func (s *FileStore) Token(_ context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to read session token", slog.Any("err", err))
		}
		return "", nil
	}
	return string(data), nil
}

// SetProfile persists the user profile as JSON.
func (s *FileStore) SetProfile(_ context.Context, profile *Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, profileFile), data, 0o600); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// Profile returns the persisted profile, or nil when absent or unreadable.
func (s *FileStore) Profile(_ context.Context) (*Profile, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to read session profile", slog.Any("err", err))
		}
		return nil, nil
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		slog.Error("failed to decode session profile", slog.Any("err", err))
		return nil, nil
	}
	return &profile, nil
}

// Clear removes the token and the profile together.
func (s *FileStore) Clear(_ context.Context) error {
	var firstErr error
	for _, name := range []string{tokenFile, profileFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("clearing session: %w", err)
		}
	}
	return firstErr
}
