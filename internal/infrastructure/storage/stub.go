package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// StubDocumentStore keeps documents in process memory. It backs the
// simulated mode and tests; nothing survives a restart.
type StubDocumentStore struct {
	// BaseURL is the base URL for generated download links
	BaseURL string

	mu   sync.RWMutex
	docs map[string][]byte
}

// NewStubDocumentStore creates a new in-memory document store
func NewStubDocumentStore() *StubDocumentStore {
	return &StubDocumentStore{
		BaseURL: "https://storage.example.com",
		docs:    make(map[string][]byte),
	}
}

// Upload stores a document under the given key
func (s *StubDocumentStore) Upload(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = data
	return nil
}

// DownloadURL returns a fake time-limited link
func (s *StubDocumentStore) DownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + key + "?expires=" + expiresAt.Format(time.RFC3339)
	return url, expiresAt, nil
}

// Delete removes a document
func (s *StubDocumentStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

// Exists checks whether a document is present
func (s *StubDocumentStore) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[key]
	return ok, nil
}

var _ DocumentStore = (*StubDocumentStore)(nil)
