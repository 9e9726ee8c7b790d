package session

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks mdtable-dashboard/internal/session Store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"mdtable-dashboard/internal/dataset"
	"mdtable-dashboard/internal/markdown"
)

var (
	// ErrNotFound is returned when a session does not exist or has expired.
	ErrNotFound = errors.New("session not found")
)

// Document holds everything derived from one uploaded markdown document.
// It is never mutated after it is stored.
type Document struct {
	ID        string
	Filename  string
	Title     string
	Metadata  markdown.FrontMatter
	Table     *markdown.Table
	Dataset   *dataset.Dataset
	Images    *markdown.ImageMap
	CreatedAt time.Time
}

// Store holds derived documents for the duration of their display.
type Store interface {
	// Put stores doc under a new ID and returns that ID.
	Put(ctx context.Context, doc *Document) (string, error)
	// Get returns the document with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)
	// Delete discards the document. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
	// Len returns the number of live documents.
	Len(ctx context.Context) int
}

// MemoryStore is an in-process Store with expiry and a size cap.
type MemoryStore struct {
	mu         sync.Mutex
	docs       map[string]*Document
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore creates a MemoryStore. A zero ttl disables expiry and a
// zero maxEntries disables the cap.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{
		docs:       make(map[string]*Document),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Put stores doc, evicting expired documents first and then the oldest ones
// if the store is full.
func (s *MemoryStore) Put(ctx context.Context, doc *Document) (string, error) {
	if doc == nil {
		return "", errors.New("nil document")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpiredLocked(now)
	if s.maxEntries > 0 {
		for len(s.docs) >= s.maxEntries {
			s.evictOldestLocked()
		}
	}

	stored := *doc
	stored.ID = uuid.New().String()
	stored.CreatedAt = now
	s.docs[stored.ID] = &stored

	return stored.ID, nil
}

// Get returns the document with the given ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(doc, s.now()) {
		delete(s.docs, id)
		return nil, ErrNotFound
	}
	return doc, nil
}

// Delete discards the document with the given ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, id)
	return nil
}

// Len returns the number of documents that have not expired.
func (s *MemoryStore) Len(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpiredLocked(s.now())
	return len(s.docs)
}

func (s *MemoryStore) expired(doc *Document, now time.Time) bool {
	return s.ttl > 0 && now.Sub(doc.CreatedAt) >= s.ttl
}

func (s *MemoryStore) evictExpiredLocked(now time.Time) {
	for id, doc := range s.docs {
		if s.expired(doc, now) {
			delete(s.docs, id)
		}
	}
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, doc := range s.docs {
		if oldestID == "" || doc.CreatedAt.Before(oldest) {
			oldestID = id
			oldest = doc.CreatedAt
		}
	}
	delete(s.docs, oldestID)
}
