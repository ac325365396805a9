// Package routes derives canonical URL paths for validated documents and
// enforces route uniqueness across the whole document set.
package routes

import (
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/doctree/internal/collection"
	"git.home.luguber.info/inful/doctree/internal/errors"
)

// RootRoute is the canonical route of a root-level index document.
const RootRoute = "/"

// Resolve assigns a Route to every document and checks for collisions.
//
// Default rule: relative path minus extension, segments lower-cased. An
// explicit slug replaces the computed path entirely. A file named `index`
// (any case) collapses to its parent directory's route.
//
// Routes must be bijective with documents; collisions are fatal to the build
// and each one names both source files. All routes are resolved before the
// collision check so every conflict is reported, not just the first.
func Resolve(docs []collection.Document) ([]collection.Document, []error) {
	resolved := make([]collection.Document, len(docs))
	for i, doc := range docs {
		doc.Route = RouteFor(&doc)
		resolved[i] = doc
	}

	// Deterministic collision reporting: documents arrive path-sorted, so the
	// first claimant of a route is stable across builds.
	var collisions []error
	byRoute := make(map[string]string, len(docs)) // route -> first path
	for _, doc := range resolved {
		if first, taken := byRoute[doc.Route]; taken {
			a, b := first, doc.Path
			if a > b {
				a, b = b, a
			}
			collisions = append(collisions, errors.RouteCollision(doc.Route, a, b))
			continue
		}
		byRoute[doc.Route] = doc.Path
	}

	return resolved, collisions
}

// RouteFor computes the canonical route for a single document.
func RouteFor(doc *collection.Document) string {
	if doc.Meta.Slug != "" {
		return normalize(doc.Meta.Slug)
	}
	return FromPath(doc.Path)
}

// FromPath derives a route from a relative content path. A root-level index
// file collapses to "/", the site root, so every leaf carries a non-empty
// route.
func FromPath(rel string) string {
	trimmed := strings.TrimSuffix(rel, path.Ext(rel))
	segments := strings.Split(trimmed, "/")

	last := segments[len(segments)-1]
	if strings.EqualFold(last, "index") {
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		return RootRoute
	}

	for i, s := range segments {
		segments[i] = strings.ToLower(s)
	}
	return strings.Join(segments, "/")
}

// Table returns a sorted route -> path listing, for reporting and artifacts.
func Table(docs []collection.Document) map[string]string {
	table := make(map[string]string, len(docs))
	for _, doc := range docs {
		table[doc.Route] = doc.Path
	}
	return table
}

// SortedRoutes returns all routes in lexical order.
func SortedRoutes(docs []collection.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.Route)
	}
	sort.Strings(out)
	return out
}

// normalize lower-cases each slug segment so explicit slugs obey the same
// casing rule as derived routes.
func normalize(slug string) string {
	segments := strings.Split(slug, "/")
	for i, s := range segments {
		segments[i] = strings.ToLower(s)
	}
	return strings.Join(segments, "/")
}
