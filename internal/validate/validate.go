// Package validate checks document frontmatter against the metadata schema
// and produces the typed Metadata the rest of the pipeline works off.
//
// Validation is fail-soft per document (a bad document does not abort the
// build) and fail-hard per build (any error-severity issue flips the build
// verdict).
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/doctree/internal/collection"
	"git.home.luguber.info/inful/doctree/internal/markdown"
)

// MaxTitleLength is the upper bound for frontmatter titles.
const MaxTitleLength = 200

// Code identifies a validation rule.
type Code string

const (
	CodeMissingTitle       Code = "MissingTitle"
	CodeTitleTooLong       Code = "TitleTooLong"
	CodeInvalidOrder       Code = "InvalidOrder"
	CodeInvalidSlug        Code = "InvalidSlug"
	CodeMissingDescription Code = "MissingDescription"
)

// Severity distinguishes verdict-flipping errors from advisory warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one validation finding for one document.
type Issue struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Detail   string   `json:"detail,omitempty"`
}

func (i Issue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s: %s [%s]", i.Path, i.Code, i.Severity)
	}
	return fmt.Sprintf("%s: %s (%s) [%s]", i.Path, i.Code, i.Detail, i.Severity)
}

// Result carries the validated subset plus every finding. Failures are never
// silently dropped.
type Result struct {
	Valid  []collection.Document
	Issues []Issue
}

// HasErrors reports whether any issue has error severity.
func (r Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns only the warning-severity issues.
func (r Result) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}
	return out
}

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9/-]*$`)

// Validate checks every document and populates Meta on the ones that pass.
// Documents with error-severity issues are excluded from the valid subset;
// warnings do not exclude.
func Validate(docs []collection.Document) Result {
	result := Result{Valid: make([]collection.Document, 0, len(docs))}

	for _, doc := range docs {
		meta, issues := extractMetadata(&doc)
		result.Issues = append(result.Issues, issues...)

		hadError := false
		for _, issue := range issues {
			if issue.Severity == SeverityError {
				hadError = true
				break
			}
		}
		if hadError {
			continue
		}

		doc.Meta = meta
		result.Valid = append(result.Valid, doc)
	}

	return result
}

// extractMetadata converts raw frontmatter into typed Metadata, recording an
// issue per violated rule. The dynamic-shape handling is confined here.
func extractMetadata(doc *collection.Document) (collection.Metadata, []Issue) {
	var meta collection.Metadata
	var issues []Issue

	fm := doc.Frontmatter

	title := stringField(fm, "title")
	if title == "" {
		// Fall back to a leading H1 before declaring the title missing.
		title = markdown.ExtractTitle(doc.Body)
	}
	// The cap counts characters, not bytes; multibyte titles must not hit it
	// early.
	titleLen := utf8.RuneCountInString(title)
	switch {
	case title == "":
		issues = append(issues, Issue{Code: CodeMissingTitle, Severity: SeverityError, Path: doc.Path})
	case titleLen > MaxTitleLength:
		issues = append(issues, Issue{
			Code:     CodeTitleTooLong,
			Severity: SeverityError,
			Path:     doc.Path,
			Detail:   fmt.Sprintf("%d characters, max %d", titleLen, MaxTitleLength),
		})
	default:
		meta.Title = title
	}

	meta.Description = stringField(fm, "description")
	if meta.Description == "" {
		issues = append(issues, Issue{Code: CodeMissingDescription, Severity: SeverityWarning, Path: doc.Path})
	}

	if slug, present := fm["slug"]; present {
		s, ok := slug.(string)
		if !ok || !slugPattern.MatchString(strings.Trim(s, "/")) {
			issues = append(issues, Issue{
				Code:     CodeInvalidSlug,
				Severity: SeverityError,
				Path:     doc.Path,
				Detail:   fmt.Sprintf("%v", slug),
			})
		} else {
			meta.Slug = strings.Trim(s, "/")
		}
	}

	if draft, ok := fm["draft"].(bool); ok {
		meta.Draft = draft
	}

	order, label, orderIssue := sidebarFields(fm, doc.Path)
	if orderIssue != nil {
		issues = append(issues, *orderIssue)
	}
	meta.SidebarOrder = order
	meta.SidebarLabel = label

	return meta, issues
}

// sidebarFields reads the nested `sidebar:` mapping (order, label).
func sidebarFields(fm map[string]any, path string) (*int, string, *Issue) {
	raw, present := fm["sidebar"]
	if !present {
		return nil, "", nil
	}

	sidebar, ok := raw.(map[string]any)
	if !ok {
		return nil, "", &Issue{
			Code:     CodeInvalidOrder,
			Severity: SeverityError,
			Path:     path,
			Detail:   "sidebar must be a mapping",
		}
	}

	label, _ := sidebar["label"].(string)

	rawOrder, present := sidebar["order"]
	if !present {
		return nil, label, nil
	}
	order, ok := rawOrder.(int)
	if !ok || order < 0 {
		return nil, label, &Issue{
			Code:     CodeInvalidOrder,
			Severity: SeverityError,
			Path:     path,
			Detail:   fmt.Sprintf("sidebar.order must be an integer >= 0, got %v", rawOrder),
		}
	}
	return &order, label, nil
}

func stringField(fm map[string]any, key string) string {
	if v, ok := fm[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
