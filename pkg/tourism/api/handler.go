package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-tourism/pkg/tourism"
)

// CollectionReader is the remote read surface exposed under /collections.
// *tourism.Gateway implements it.
type CollectionReader interface {
	FetchCollection(ctx context.Context, name tourism.CollectionName) tourism.Envelope
	FetchTopRated(ctx context.Context, name tourism.CollectionName, n int) tourism.Envelope
	SearchByText(ctx context.Context, name tourism.CollectionName, term string) tourism.Envelope
	FetchByLocation(ctx context.Context, name tourism.CollectionName, loc string) tourism.Envelope
}

// SearchResponse is the response body for a unified search
type SearchResponse struct {
	Items      []tourism.ContentItem `json:"items"`
	Categories []string              `json:"categories"`
}

// ErrorResponse is the response body for a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

const defaultTopRated = 10

// ContentHandler handles HTTP requests for resolved tourism content
type ContentHandler struct {
	resolver *tourism.Resolver
	reader   CollectionReader
}

// NewContentHandler creates a new content handler. reader may be nil, in
// which case the /collections routes answer 503.
func NewContentHandler(resolver *tourism.Resolver, reader CollectionReader) *ContentHandler {
	return &ContentHandler{
		resolver: resolver,
		reader:   reader,
	}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/categories", h.GetCategories)
	r.Get("/search", h.Search)

	r.Route("/collections/{name}", func(r chi.Router) {
		r.Get("/", h.GetCollection)
		r.Get("/top-rated", h.GetTopRated)
		r.Get("/search", h.SearchCollection)
		r.Get("/by-location", h.GetByLocation)
	})

	r.Get("/catalog/featured", h.GetStaticFeatured)
	r.Get("/catalog/popular", h.GetStaticPopular)
	r.Get("/catalog/items/{id}", h.GetStaticItem)

	return r
}

// GetCategories returns the featured, popular and delicacies sections
func (h *ContentHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.resolver.LoadCategorySet(r.Context()))
}

// Search filters the unified search set by q and category
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if category == "" {
		category = tourism.CategoryAll
	}

	items := h.resolver.LoadUnifiedSearchSet(r.Context())
	render.JSON(w, r, SearchResponse{
		Items:      tourism.Filter(items, query, category),
		Categories: tourism.Categories(items),
	})
}

// GetCollection returns the raw envelope for one collection
func (h *ContentHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	name, ok := h.collection(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, h.reader.FetchCollection(r.Context(), name))
}

// GetTopRated returns the n best rated items of one collection
func (h *ContentHandler) GetTopRated(w http.ResponseWriter, r *http.Request) {
	name, ok := h.collection(w, r)
	if !ok {
		return
	}

	n := defaultTopRated
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			slog.Warn("Invalid top-rated count", "n", raw, "err", err)
			writeError(w, r, http.StatusBadRequest, "n must be a non-negative integer")
			return
		}
		n = parsed
	}

	render.JSON(w, r, h.reader.FetchTopRated(r.Context(), name, n))
}

// SearchCollection returns items of one collection matching term
func (h *ContentHandler) SearchCollection(w http.ResponseWriter, r *http.Request) {
	name, ok := h.collection(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, h.reader.SearchByText(r.Context(), name, r.URL.Query().Get("term")))
}

// GetByLocation returns items of one collection located in loc
func (h *ContentHandler) GetByLocation(w http.ResponseWriter, r *http.Request) {
	name, ok := h.collection(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, h.reader.FetchByLocation(r.Context(), name, r.URL.Query().Get("loc")))
}

// GetStaticFeatured returns the static featured set
func (h *ContentHandler) GetStaticFeatured(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.resolver.Catalog().Featured())
}

// GetStaticPopular returns the static popular set
func (h *ContentHandler) GetStaticPopular(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.resolver.Catalog().Popular())
}

// GetStaticItem returns one static item by ID
func (h *ContentHandler) GetStaticItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, ok := h.resolver.Catalog().ByID(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, tourism.ErrItemNotFound.Error())
		return
	}
	render.JSON(w, r, item)
}

func (h *ContentHandler) collection(w http.ResponseWriter, r *http.Request) (tourism.CollectionName, bool) {
	if h.reader == nil {
		writeError(w, r, http.StatusServiceUnavailable, "remote collections are disabled")
		return "", false
	}

	raw := chi.URLParam(r, "name")
	name, err := tourism.ParseCollectionName(raw)
	if err != nil {
		slog.Warn("Invalid collection name", "name", raw, "err", err)
		writeError(w, r, http.StatusBadRequest, err.Error())
		return "", false
	}
	return name, true
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}
