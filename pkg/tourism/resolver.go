package tourism

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Mode selects whether a Resolver consults the remote source at all.
type Mode string

// Resolver modes (typed).
const (
	ModeRemoteFirst Mode = "remote-first"
	ModeStaticOnly  Mode = "static-only"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRemoteFirst, ModeStaticOnly:
		return Mode(s), nil
	case "":
		return ModeRemoteFirst, nil
	}
	return "", fmt.Errorf("invalid resolver mode %q (use %q or %q)", s, ModeRemoteFirst, ModeStaticOnly)
}

// Section names one independently resolved list.
type Section string

// Section constants (typed).
const (
	SectionFeatured   Section = "featured"
	SectionPopular    Section = "popular"
	SectionDelicacies Section = "delicacies"

	SectionSearchAttractions  Section = "search_attractions"
	SectionSearchDestinations Section = "search_destinations"
	SectionSearchBeaches      Section = "search_beaches"
)

// Source tells where a section's items came from.
type Source string

// Source constants (typed).
const (
	SourceRemote Source = "remote"
	SourceStatic Source = "static"
	SourceNone   Source = "none"
)

// Reason tells why a section took its source.
type Reason string

// Reason constants (typed).
const (
	ReasonOK                 Reason = "ok"
	ReasonBackendUnavailable Reason = "backend_unavailable"
	ReasonFetchFailed        Reason = "fetch_failed"
	ReasonEmptyResult        Reason = "empty_result"
	ReasonStaticOnly         Reason = "static_only"
	ReasonDegraded           Reason = "degraded"
)

// Outcome is the branch taken for one section.
type Outcome struct {
	Source Source `json:"source"`
	Reason Reason `json:"reason"`
}

// Report maps every resolved section to its outcome.
type Report map[Section]Outcome

// Default section sizes for the category set.
const (
	DefaultFeaturedLimit   = 6
	DefaultPopularLimit    = 6
	DefaultDelicaciesLimit = 6
)

// Limits caps the ranked sections of the category set.
type Limits struct {
	Featured   int
	Popular    int
	Delicacies int
}

// Resolver applies the per-section fallback policy. It holds no per-call state
// and may be shared.
type Resolver struct {
	source   ContentSource
	catalog  *Catalog
	mode     Mode
	limits   Limits
	logger   *slog.Logger
	recorder Recorder
}

// ResolverOption represents a functional option for configuring the resolver
type ResolverOption func(*Resolver)

// WithContentSource sets the remote source (usually a *Gateway)
func WithContentSource(source ContentSource) ResolverOption {
	return func(r *Resolver) {
		r.source = source
	}
}

// WithCatalog sets the static fallback catalog
func WithCatalog(catalog *Catalog) ResolverOption {
	return func(r *Resolver) {
		if catalog != nil {
			r.catalog = catalog
		}
	}
}

// WithMode selects remote-first or static-only resolution
func WithMode(mode Mode) ResolverOption {
	return func(r *Resolver) {
		r.mode = mode
	}
}

// WithLimits sets the section sizes of the category set
func WithLimits(limits Limits) ResolverOption {
	return func(r *Resolver) {
		r.limits = limits
	}
}

// WithLogger sets the resolver logger
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(rec Recorder) ResolverOption {
	return func(r *Resolver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewResolver creates a resolver. Remote-first mode requires a content source.
func NewResolver(options ...ResolverOption) (*Resolver, error) {
	r := &Resolver{
		catalog: DefaultCatalog(),
		mode:    ModeRemoteFirst,
		limits: Limits{
			Featured:   DefaultFeaturedLimit,
			Popular:    DefaultPopularLimit,
			Delicacies: DefaultDelicaciesLimit,
		},
		logger:   slog.Default(),
		recorder: NewNoopRecorder(),
	}

	for _, option := range options {
		option(r)
	}

	if _, err := ParseMode(string(r.mode)); err != nil {
		return nil, err
	}
	if r.mode == ModeRemoteFirst && r.source == nil {
		return nil, errors.New("content source is required in remote-first mode")
	}

	return r, nil
}

// Mode returns the configured mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Catalog returns the static catalog used for fallbacks.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// LoadCategorySet resolves the featured, popular and delicacies sections.
func (r *Resolver) LoadCategorySet(ctx context.Context) CategorySet {
	set, _ := r.ResolveCategorySet(ctx)
	return set
}

// ResolveCategorySet is LoadCategorySet plus the per-section report.
func (r *Resolver) ResolveCategorySet(ctx context.Context) (CategorySet, Report) {
	plans := []sectionPlan{
		{
			section:    SectionFeatured,
			collection: CollectionAttractions,
			fetch:      r.topRated(CollectionAttractions, r.limits.Featured),
			fallback:   r.catalog.Featured,
		},
		{
			section:    SectionPopular,
			collection: CollectionDestinations,
			fetch:      r.topRated(CollectionDestinations, r.limits.Popular),
			fallback:   r.catalog.Popular,
		},
		{
			section:    SectionDelicacies,
			collection: CollectionRestaurants,
			fetch:      r.topRated(CollectionRestaurants, r.limits.Delicacies),
		},
	}

	lists, report := r.resolve(ctx, plans)
	return CategorySet{
		Featured:   lists[0],
		Popular:    lists[1],
		Delicacies: lists[2],
	}, report
}

// LoadUnifiedSearchSet returns attractions, destinations and beaches
// concatenated in that order. Duplicate IDs across collections are kept.
func (r *Resolver) LoadUnifiedSearchSet(ctx context.Context) []ContentItem {
	items, _ := r.ResolveUnifiedSearchSet(ctx)
	return items
}

// ResolveUnifiedSearchSet is LoadUnifiedSearchSet plus the per-section report.
func (r *Resolver) ResolveUnifiedSearchSet(ctx context.Context) ([]ContentItem, Report) {
	plans := []sectionPlan{
		{
			section:    SectionSearchAttractions,
			collection: CollectionAttractions,
			fetch:      r.collection(CollectionAttractions),
			fallback:   r.catalog.Featured,
		},
		{
			section:    SectionSearchDestinations,
			collection: CollectionDestinations,
			fetch:      r.collection(CollectionDestinations),
			fallback:   r.catalog.Popular,
		},
		{
			section:    SectionSearchBeaches,
			collection: CollectionBeaches,
			fetch:      r.collection(CollectionBeaches),
		},
	}

	lists, report := r.resolve(ctx, plans)
	merged := make([]ContentItem, 0, len(lists[0])+len(lists[1])+len(lists[2]))
	for _, list := range lists {
		merged = append(merged, list...)
	}
	return merged, report
}

type sectionPlan struct {
	section    Section
	collection CollectionName
	fetch      func(ctx context.Context) Envelope
	// fallback is nil when the section has no static substitute
	fallback func() []ContentItem
}

func (r *Resolver) topRated(name CollectionName, n int) func(context.Context) Envelope {
	return func(ctx context.Context) Envelope {
		return r.source.FetchTopRated(ctx, name, n)
	}
}

func (r *Resolver) collection(name CollectionName) func(context.Context) Envelope {
	return func(ctx context.Context) Envelope {
		return r.source.FetchCollection(ctx, name)
	}
}

func (r *Resolver) resolve(ctx context.Context, plans []sectionPlan) ([][]ContentItem, Report) {
	lists := make([][]ContentItem, len(plans))
	report := make(Report, len(plans))

	if r.mode == ModeStaticOnly {
		for i, p := range plans {
			lists[i], report[p.section] = r.substitute(p, ReasonStaticOnly)
		}
		return lists, report
	}

	envs := make([]Envelope, len(plans))
	var g errgroup.Group
	for i, p := range plans {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("fetch %s: %v", p.collection, rec)
				}
			}()
			envs[i] = p.fetch(ctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.logger.Error("Content resolution failed, serving static content", "err", err)
		for i, p := range plans {
			lists[i], report[p.section] = r.substitute(p, ReasonDegraded)
		}
		return lists, report
	}

	for i, p := range plans {
		lists[i], report[p.section] = r.decide(p, envs[i])
	}
	return lists, report
}

func (r *Resolver) decide(p sectionPlan, env Envelope) ([]ContentItem, Outcome) {
	if env.OK() {
		outcome := Outcome{Source: SourceRemote, Reason: ReasonOK}
		r.recorder.ObserveResolution(p.section, outcome)
		return env.Data, outcome
	}

	reason := ReasonEmptyResult
	switch {
	case !env.Success && isUnavailable(env.Err):
		reason = ReasonBackendUnavailable
	case !env.Success:
		reason = ReasonFetchFailed
	}
	return r.substitute(p, reason)
}

func (r *Resolver) substitute(p sectionPlan, reason Reason) ([]ContentItem, Outcome) {
	var (
		items   []ContentItem
		outcome Outcome
	)
	if p.fallback != nil {
		items = p.fallback()
		outcome = Outcome{Source: SourceStatic, Reason: reason}
	} else {
		items = []ContentItem{}
		outcome = Outcome{Source: SourceNone, Reason: reason}
	}

	if reason != ReasonStaticOnly {
		r.logger.Info("Section fell back", "section", p.section, "collection", p.collection, "source", outcome.Source, "reason", reason)
	}
	r.recorder.ObserveResolution(p.section, outcome)
	return items, outcome
}
