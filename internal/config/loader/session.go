package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Session is the on-disk form of a registry snapshot. Values are raw:
// literal content, file:// addresses or removal sentinels.
type Session struct {
	Saved    time.Time         `toml:"saved"`
	Settings map[string]string `toml:"settings"`
}

// SessionStore persists sessions to a TOML file.
type SessionStore struct {
	fs   FileSystem
	path string
	now  func() time.Time
}

// NewSessionStore creates a store for the session file at path.
func NewSessionStore(path string) *SessionStore {
	return NewSessionStoreWithFS(DefaultFS(), path)
}

// NewSessionStoreWithFS creates a session store with a custom file system.
func NewSessionStoreWithFS(fs FileSystem, path string) *SessionStore {
	return &SessionStore{fs: fs, path: path, now: time.Now}
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.path
}

// Load reads the saved settings. A missing file yields nil, nil.
func (s *SessionStore) Load() (map[string]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session %s: %w", s.path, err)
	}

	var sess Session
	if err := decode(s.path, data, &sess); err != nil {
		return nil, err
	}
	return sess.Settings, nil
}

// Save replaces the session file with values.
func (s *SessionStore) Save(values map[string]string) error {
	data, err := toml.Marshal(Session{Saved: s.now().UTC().Truncate(time.Second), Settings: values})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.fs.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session %s: %w", s.path, err)
	}
	return nil
}
