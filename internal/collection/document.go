package collection

import (
	"git.home.luguber.info/inful/doctree/internal/markdown"
)

// Document is the in-memory record for one content file.
//
// The loader owns Path, Frontmatter, Body and BodyHash. Meta is populated by
// the validator, Route by the route resolver, Headings by the loader's body
// analysis. Downstream stages treat earlier stages' fields as read-only.
type Document struct {
	// Path is the file path relative to the content root, slash separated.
	// Immutable once assigned.
	Path string `json:"path"`

	// Frontmatter holds the raw parsed frontmatter mapping. Unknown keys are
	// preserved verbatim for forward compatibility.
	Frontmatter map[string]any `json:"frontmatter"`

	// Body is the raw Markdown body, opaque to the pipeline and handed to the
	// external renderer unchanged.
	Body []byte `json:"-"`

	// BodyHash is the hex sha256 of Body, used by the document index to
	// detect unchanged content between builds.
	BodyHash string `json:"body_hash"`

	// Headings is the document's heading outline for the rendering layer.
	Headings []markdown.Heading `json:"headings,omitempty"`

	// Meta is the typed metadata extracted during validation.
	Meta Metadata `json:"meta"`

	// Route is the canonical URL path, derived by the route resolver.
	Route string `json:"route"`
}

// Metadata is the validated, typed view of a document's frontmatter.
// Raw frontmatter stays dynamic; everything after validation works off this.
type Metadata struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Slug         string `json:"slug,omitempty"`
	Draft        bool   `json:"draft,omitempty"`
	SidebarOrder *int   `json:"sidebar_order,omitempty"`
	SidebarLabel string `json:"sidebar_label,omitempty"`
}

// Dir returns the slash-separated directory portion of Path, or "" for a
// document at the content root.
func (d *Document) Dir() string {
	for i := len(d.Path) - 1; i >= 0; i-- {
		if d.Path[i] == '/' {
			return d.Path[:i]
		}
	}
	return ""
}
