package tourism

import (
	"context"
	"time"
)

// DocumentStore defines the interface for remote document backends
type DocumentStore interface {
	// Ping is the lightweight capability probe run before every read
	Ping(ctx context.Context) error

	// ReadCollection performs one bulk read of the named collection
	ReadCollection(ctx context.Context, name CollectionName) ([]Record, error)
}

// DocumentWriter is implemented by stores that can be seeded
type DocumentWriter interface {
	// WriteCollection replaces the contents of the named collection
	WriteCollection(ctx context.Context, name CollectionName, records []Record) error
}

// ContentSource is the remote side consumed by a Resolver. *Gateway
// implements it.
type ContentSource interface {
	FetchCollection(ctx context.Context, name CollectionName) Envelope
	FetchTopRated(ctx context.Context, name CollectionName, n int) Envelope
}

// Recorder receives fetch and resolution observations
type Recorder interface {
	// ObserveFetch is called once per FetchCollection with outcome
	// "success", "empty", "unavailable" or "failed"
	ObserveFetch(collection CollectionName, outcome string, elapsed time.Duration)

	// ObserveResolution is called once per resolved section
	ObserveResolution(section Section, outcome Outcome)
}
