package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Session holds the admin bearer token. The zero value is an anonymous session.
type Session struct {
	mu    sync.RWMutex
	token string
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) Clear() { s.SetToken("") }

func (s *Session) LoggedIn() bool { return s.Token() != "" }

type sessionFile struct {
	Token string `json:"token"`
}

// Save writes the session to path with owner-only permissions.
func (s *Session) Save(path string) error {
	raw, err := json.Marshal(sessionFile{Token: s.Token()})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// LoadSession reads a session saved by Save. A missing file is an anonymous session.
func LoadSession(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, err
	}
	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &Session{token: f.Token}, nil
}
