package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// TokenStore - where the client keeps the token pair between requests
type TokenStore interface {
	Tokens() (access, refresh string)
	SetAccess(access string) error
	SetPair(access, refresh string) error
	Clear() error
}

// MemoryStore - process-lifetime storage; everything is gone on restart
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh
}

func (s *MemoryStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	return nil
}

func (s *MemoryStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}

type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileStore - durable storage in a 0600 JSON file; survives restarts,
// which is what "remember me" means here
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.read()
	if err != nil {
		return "", ""
	}
	return tokens.AccessToken, tokens.RefreshToken
}

func (s *FileStore) SetAccess(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.read()
	if err != nil {
		tokens = storedTokens{}
	}
	tokens.AccessToken = access
	return s.write(tokens)
}

func (s *FileStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(storedTokens{AccessToken: access, RefreshToken: refresh})
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) read() (storedTokens, error) {
	var tokens storedTokens

	data, err := os.ReadFile(s.path)
	if err != nil {
		return tokens, err
	}
	if err := json.Unmarshal(data, &tokens); err != nil {
		return tokens, err
	}
	return tokens, nil
}

func (s *FileStore) write(tokens storedTokens) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
