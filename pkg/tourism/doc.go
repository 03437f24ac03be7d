// Package tourism provides the data-acquisition and fallback-resolution layer
// for browsing tourism content (attractions, destinations, beaches and
// restaurants).
//
// A Gateway reads named collections from a pluggable DocumentStore and always
// answers with an Envelope instead of an error. A Catalog holds the static
// dataset used when the remote store is unavailable or empty. A Resolver
// combines the two per section, and Filter narrows a resolved set by free text
// and category facet.
//
// Fallback Policy
//
// Each section is decided on its own. A failed fetch, an unavailable backend
// and an empty collection are treated alike: the section takes its static
// substitute when one exists and is left empty otherwise. Callers receive
// plain item lists; the branch taken for every section is available through
// the Resolve* variants for diagnostics and tests.
package tourism
