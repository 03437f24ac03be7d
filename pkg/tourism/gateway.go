package tourism

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Gateway reads collections from a DocumentStore and converts every outcome
// into an Envelope. It never returns an error and never panics.
type Gateway struct {
	store    DocumentStore
	logger   *slog.Logger
	timeout  time.Duration
	recorder Recorder
}

// GatewayOption represents a functional option for configuring the gateway
type GatewayOption func(*Gateway)

// WithStore sets the document store the gateway reads from
func WithStore(store DocumentStore) GatewayOption {
	return func(g *Gateway) {
		g.store = store
	}
}

// WithGatewayLogger sets the logger used for degraded fetches
func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithFetchTimeout bounds each fetch (probe plus read). Zero means no deadline.
func WithFetchTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithGatewayRecorder sets the metrics recorder
func WithGatewayRecorder(r Recorder) GatewayOption {
	return func(g *Gateway) {
		if r != nil {
			g.recorder = r
		}
	}
}

// NewGateway creates a gateway with the given options
func NewGateway(options ...GatewayOption) (*Gateway, error) {
	g := &Gateway{
		logger:   slog.Default(),
		recorder: NewNoopRecorder(),
	}

	for _, option := range options {
		option(g)
	}

	if g.store == nil {
		return nil, ErrStoreRequired
	}

	return g, nil
}

// FetchCollection probes the store and, when it is available, reads the whole
// named collection.
func (g *Gateway) FetchCollection(ctx context.Context, name CollectionName) (env Envelope) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			env = failureEnvelope(fetchFailed(name, fmt.Errorf("store panic: %v", r)))
		}
		g.observe(name, env, time.Since(start))
	}()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.store.Ping(ctx); err != nil {
		return failureEnvelope(unavailable(name, err))
	}

	records, err := g.store.ReadCollection(ctx, name)
	if err != nil {
		return failureEnvelope(fetchFailed(name, err))
	}

	items := make([]ContentItem, 0, len(records))
	for _, rec := range records {
		item, err := decodeRecord(rec)
		if err != nil {
			return failureEnvelope(fetchFailed(name, fmt.Errorf("decode document %s: %w", rec.ID, err)))
		}
		items = append(items, item)
	}

	return successEnvelope(items)
}

// FetchTopRated fetches the collection and keeps the n best rated active items.
func (g *Gateway) FetchTopRated(ctx context.Context, name CollectionName, n int) Envelope {
	return g.derive(ctx, name, func(items []ContentItem) []ContentItem {
		return TopRated(items, n)
	})
}

// SearchByText fetches the collection and keeps items whose name or location
// contains term.
func (g *Gateway) SearchByText(ctx context.Context, name CollectionName, term string) Envelope {
	return g.derive(ctx, name, func(items []ContentItem) []ContentItem {
		return MatchingText(items, term)
	})
}

// FetchByLocation fetches the collection and keeps items whose location
// contains loc.
func (g *Gateway) FetchByLocation(ctx context.Context, name CollectionName, loc string) Envelope {
	return g.derive(ctx, name, func(items []ContentItem) []ContentItem {
		return MatchingLocation(items, loc)
	})
}

func (g *Gateway) derive(ctx context.Context, name CollectionName, fn func([]ContentItem) []ContentItem) Envelope {
	env := g.FetchCollection(ctx, name)
	if !env.Success {
		return env
	}
	return successEnvelope(fn(env.Data))
}

func (g *Gateway) observe(name CollectionName, env Envelope, elapsed time.Duration) {
	outcome := "success"
	switch {
	case env.Success && len(env.Data) == 0:
		outcome = "empty"
	case !env.Success && isUnavailable(env.Err):
		outcome = "unavailable"
	case !env.Success:
		outcome = "failed"
	}

	if !env.Success {
		g.logger.Warn("Collection fetch degraded", "collection", name, "outcome", outcome, "err", env.Err)
	}
	g.recorder.ObserveFetch(name, outcome, elapsed)
}

var imageRefType = reflect.TypeOf(ImageRef{})

// imageHook lets a document store an image as a bare URL string.
func imageHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to == imageRefType && from.Kind() == reflect.String {
		return ImageRef{URI: reflect.ValueOf(data).String()}, nil
	}
	return data, nil
}

func decodeRecord(rec Record) (ContentItem, error) {
	var item ContentItem
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       imageHook,
		WeaklyTypedInput: true,
		Result:           &item,
	})
	if err != nil {
		return ContentItem{}, err
	}
	if err := decoder.Decode(rec.Fields); err != nil {
		return ContentItem{}, err
	}

	if rec.ID != "" {
		item.ID = rec.ID
	}
	return item, nil
}
