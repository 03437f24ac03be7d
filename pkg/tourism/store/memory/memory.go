package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-tourism/pkg/tourism"
)

// ErrUnavailable is returned by Ping after SetAvailable(false)
var ErrUnavailable = errors.New("memory store marked unavailable")

// Store is an in-memory implementation of tourism.DocumentStore and
// tourism.DocumentWriter
type Store struct {
	mu          sync.RWMutex
	collections map[tourism.CollectionName][]tourism.Record
	failures    map[tourism.CollectionName]error
	available   bool
}

// New creates a new, available, empty in-memory store
func New() *Store {
	return &Store{
		collections: make(map[tourism.CollectionName][]tourism.Record),
		failures:    make(map[tourism.CollectionName]error),
		available:   true,
	}
}

// Ping reports whether the store is marked available
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.available {
		return ErrUnavailable
	}
	return nil
}

// ReadCollection returns a copy of the records of a collection. Unknown
// collections read as empty.
func (s *Store) ReadCollection(ctx context.Context, name tourism.CollectionName) ([]tourism.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.failures[name]; err != nil {
		return nil, err
	}

	records := s.collections[name]
	out := make([]tourism.Record, len(records))
	for i, rec := range records {
		out[i] = copyRecord(rec)
	}
	return out, nil
}

// WriteCollection replaces a collection
func (s *Store) WriteCollection(ctx context.Context, name tourism.CollectionName, records []tourism.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]tourism.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, withID(copyRecord(rec)))
	}
	s.collections[name] = out
	return nil
}

// Put appends one document and returns its ID, generating one when the
// document has none
func (s *Store) Put(name tourism.CollectionName, id string, fields map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := withID(copyRecord(tourism.Record{ID: id, Fields: fields}))
	s.collections[name] = append(s.collections[name], rec)
	return rec.ID
}

// SetAvailable toggles the result of Ping
func (s *Store) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = available
}

// FailCollection makes reads of a collection return err. A nil err clears it.
func (s *Store) FailCollection(name tourism.CollectionName, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, name)
		return
	}
	s.failures[name] = err
}

func withID(rec tourism.Record) tourism.Record {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	return rec
}

func copyRecord(rec tourism.Record) tourism.Record {
	return tourism.Record{ID: rec.ID, Fields: copyFields(rec.Fields)}
}

// copyFields copies nested maps and slices so no document value is shared
// with the caller.
func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return copyFields(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
