package tourism

import (
	"fmt"
)

// CollectionName identifies a partition of the remote document store.
type CollectionName string

// Collection name constants (typed).
const (
	CollectionAttractions  CollectionName = "attractions"
	CollectionRestaurants  CollectionName = "restaurants"
	CollectionBeaches      CollectionName = "beaches"
	CollectionDestinations CollectionName = "destinations"
)

// Collections lists every known collection in a stable order.
var Collections = []CollectionName{
	CollectionAttractions,
	CollectionRestaurants,
	CollectionBeaches,
	CollectionDestinations,
}

// ParseCollectionName converts a user supplied name into a CollectionName.
func ParseCollectionName(s string) (CollectionName, error) {
	for _, c := range Collections {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

// ItemStatus is the publication state of a content item.
type ItemStatus string

// Item status constants (typed).
const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// CategoryAll is the facet value that matches every category.
const CategoryAll = "All"

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat" mapstructure:"lat"`
	Lng float64 `json:"lng" yaml:"lng" mapstructure:"lng"`
}

// ImageRef points at an image either bundled with the app (Asset) or hosted
// remotely (URI).
type ImageRef struct {
	Asset string `json:"asset,omitempty" yaml:"asset,omitempty" mapstructure:"asset"`
	URI   string `json:"uri,omitempty" yaml:"uri,omitempty" mapstructure:"uri"`
}

// ContentItem is a single displayable piece of tourism content.
//
// ID is unique within one collection only; items from different collections
// (or from the static catalog) may share an ID.
type ContentItem struct {
	ID          string       `json:"id" yaml:"id" mapstructure:"id"`
	Name        string       `json:"name" yaml:"name" mapstructure:"name"`
	Location    string       `json:"location" yaml:"location" mapstructure:"location"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty" mapstructure:"category"`
	Rating      *float64     `json:"rating,omitempty" yaml:"rating,omitempty" mapstructure:"rating"`
	Status      ItemStatus   `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty" mapstructure:"coordinates"`
	Address     string       `json:"address,omitempty" yaml:"address,omitempty" mapstructure:"address"`
	Image       ImageRef     `json:"image" yaml:"image" mapstructure:"image"`
}

// RatingOrZero returns the item's rating, treating a missing rating as 0.
func (c ContentItem) RatingOrZero() float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

// Inactive reports whether the item has been explicitly deactivated.
func (c ContentItem) Inactive() bool {
	return c.Status == ItemStatusInactive
}

// Envelope is the uniform result of every remote fetch. It is never partially
// valid: Success=false always comes with empty Data.
type Envelope struct {
	Success bool          `json:"success"`
	Data    []ContentItem `json:"data"`
	Error   string        `json:"error,omitempty"`

	// Err carries the typed failure (a *FetchError) behind Error.
	Err error `json:"-"`
}

// OK reports whether the envelope holds usable, non-empty data.
func (e Envelope) OK() bool {
	return e.Success && len(e.Data) > 0
}

func successEnvelope(items []ContentItem) Envelope {
	if items == nil {
		items = []ContentItem{}
	}
	return Envelope{Success: true, Data: items}
}

func failureEnvelope(err *FetchError) Envelope {
	return Envelope{Success: false, Data: []ContentItem{}, Error: err.message(), Err: err}
}

// Record is one raw document read from a DocumentStore.
type Record struct {
	ID     string
	Fields map[string]any
}

// CategorySet is the resolved content for the home screen sections.
type CategorySet struct {
	Featured   []ContentItem `json:"featured"`
	Popular    []ContentItem `json:"popular"`
	Delicacies []ContentItem `json:"delicacies"`
}
