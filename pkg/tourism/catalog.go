package tourism

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/catalog.yaml
var embeddedCatalog string

// Catalog is the static fallback dataset. It is read-only after loading and
// safe to share between goroutines.
type Catalog struct {
	version  int
	featured []ContentItem
	popular  []ContentItem
}

type catalogFile struct {
	Version  int           `yaml:"version"`
	Featured []ContentItem `yaml:"featured"`
	Popular  []ContentItem `yaml:"popular"`
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := LoadCatalog(strings.NewReader(embeddedCatalog))
	if err != nil {
		panic(fmt.Sprintf("tourism: embedded catalog: %v", err))
	}
	return c
})

// DefaultCatalog returns the catalog built from the embedded fixture.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

// LoadCatalog parses a YAML catalog fixture.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if f.Version < 1 {
		return nil, fmt.Errorf("catalog version must be >= 1, got %d", f.Version)
	}
	for _, set := range [][]ContentItem{f.Featured, f.Popular} {
		for i, item := range set {
			if item.ID == "" {
				return nil, fmt.Errorf("catalog item %d (%q) has no id", i, item.Name)
			}
		}
	}

	return &Catalog{
		version:  f.Version,
		featured: f.Featured,
		popular:  f.Popular,
	}, nil
}

// LoadCatalogFile parses the catalog fixture at path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Version returns the fixture version.
func (c *Catalog) Version() int {
	return c.version
}

// Featured returns the featured attractions in fixture order.
func (c *Catalog) Featured() []ContentItem {
	return clone(c.featured)
}

// Popular returns the popular destinations in fixture order.
func (c *Catalog) Popular() []ContentItem {
	return clone(c.popular)
}

// ByID looks an item up in the featured set, then the popular set.
func (c *Catalog) ByID(id string) (ContentItem, bool) {
	for _, set := range [][]ContentItem{c.featured, c.popular} {
		for _, item := range set {
			if item.ID == id {
				return cloneItem(item), true
			}
		}
	}
	return ContentItem{}, false
}

// ByLocation returns items from both sets whose location contains substr,
// ignoring case. Featured items come first.
func (c *Catalog) ByLocation(substr string) []ContentItem {
	all := append(clone(c.featured), clone(c.popular)...)
	return MatchingLocation(all, substr)
}

// TopRated ranks the featured set only; popular destinations carry no rating.
func (c *Catalog) TopRated(n int) []ContentItem {
	return TopRated(clone(c.featured), n)
}

// clone copies items deeply enough that callers cannot mutate the catalog
// through the Rating or Coordinates pointers.
func clone(items []ContentItem) []ContentItem {
	out := make([]ContentItem, len(items))
	for i, item := range items {
		out[i] = cloneItem(item)
	}
	return out
}

func cloneItem(item ContentItem) ContentItem {
	if item.Rating != nil {
		r := *item.Rating
		item.Rating = &r
	}
	if item.Coordinates != nil {
		c := *item.Coordinates
		item.Coordinates = &c
	}
	return item
}
