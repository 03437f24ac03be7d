package tourism_test

import (
	"context"
	"sync/atomic"

	"github.com/stretchr/testify/mock"
	"github.com/tendant/simple-tourism/pkg/tourism"
	"github.com/tendant/simple-tourism/pkg/tourism/store/memory"
)

// countingStore wraps a store and counts calls
type countingStore struct {
	tourism.DocumentStore
	pings atomic.Int32
	reads atomic.Int32
}

func (s *countingStore) Ping(ctx context.Context) error {
	s.pings.Add(1)
	return s.DocumentStore.Ping(ctx)
}

func (s *countingStore) ReadCollection(ctx context.Context, name tourism.CollectionName) ([]tourism.Record, error) {
	s.reads.Add(1)
	return s.DocumentStore.ReadCollection(ctx, name)
}

// blockingStore never answers a read until its context ends
type blockingStore struct{}

func (blockingStore) Ping(ctx context.Context) error { return nil }

func (blockingStore) ReadCollection(ctx context.Context, name tourism.CollectionName) ([]tourism.Record, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// panickingStore panics on read
type panickingStore struct{}

func (panickingStore) Ping(ctx context.Context) error { return nil }

func (panickingStore) ReadCollection(ctx context.Context, name tourism.CollectionName) ([]tourism.Record, error) {
	panic("driver exploded")
}

// mockSource is a testify mock of tourism.ContentSource
type mockSource struct {
	mock.Mock
}

func (m *mockSource) FetchCollection(ctx context.Context, name tourism.CollectionName) tourism.Envelope {
	args := m.Called(ctx, name)
	return args.Get(0).(tourism.Envelope)
}

func (m *mockSource) FetchTopRated(ctx context.Context, name tourism.CollectionName, n int) tourism.Envelope {
	args := m.Called(ctx, name, n)
	return args.Get(0).(tourism.Envelope)
}

func ptr(f float64) *float64 {
	return &f
}

func item(id, name, location string) tourism.ContentItem {
	return tourism.ContentItem{ID: id, Name: name, Location: location}
}

func ok(items ...tourism.ContentItem) tourism.Envelope {
	if items == nil {
		items = []tourism.ContentItem{}
	}
	return tourism.Envelope{Success: true, Data: items}
}

func failed(msg string) tourism.Envelope {
	return tourism.Envelope{Success: false, Data: []tourism.ContentItem{}, Error: msg}
}

func seededStore(docs map[tourism.CollectionName][]map[string]any) *memory.Store {
	store := memory.New()
	for name, list := range docs {
		for _, fields := range list {
			id, _ := fields["id"].(string)
			store.Put(name, id, fields)
		}
	}
	return store
}
