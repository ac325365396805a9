// Package markdown provides read-only analysis of Markdown bodies: fallback
// title extraction and heading outlines for the rendering layer. It never
// rewrites content.
package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a document's heading outline.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// ExtractTitle returns the text of the document's leading H1, or "" when the
// document does not start with one. Content before the H1 disqualifies it,
// matching the convention that a page title must open the page.
func ExtractTitle(body []byte) string {
	root := parse(body)

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*gmast.Heading)
		if !ok {
			// HTML comments and blank lines parse away; any other leading
			// block means the H1 is not a page title.
			return ""
		}
		if h.Level != 1 {
			return ""
		}
		return strings.TrimSpace(string(headingText(h, body)))
	}
	return ""
}

// ExtractHeadings walks the body and returns all headings in document order
// with slugified anchors. Duplicate anchors get a numeric suffix, matching
// common renderer behavior.
func ExtractHeadings(body []byte) []Heading {
	root := parse(body)

	seen := map[string]int{}
	headings := make([]Heading, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		txt := strings.TrimSpace(string(headingText(h, body)))
		anchor := Slugify(txt)
		if c, dup := seen[anchor]; dup {
			seen[anchor] = c + 1
			anchor = anchor + "-" + strconv.Itoa(c)
		} else {
			seen[anchor] = 1
		}
		headings = append(headings, Heading{Level: h.Level, Text: txt, Anchor: anchor})
		return gmast.WalkSkipChildren, nil
	})
	return headings
}

// Slugify lowercases s and replaces runs of non-alphanumeric characters with
// a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func parse(body []byte) gmast.Node {
	md := goldmark.New()
	return md.Parser().Parse(text.NewReader(body))
}

// headingText concatenates the literal text of a heading's inline children.
func headingText(h *gmast.Heading, source []byte) []byte {
	var out []byte
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			out = append(out, node.Segment.Value(source)...)
		case *gmast.CodeSpan:
			for g := node.FirstChild(); g != nil; g = g.NextSibling() {
				if t, ok := g.(*gmast.Text); ok {
					out = append(out, t.Segment.Value(source)...)
				}
			}
		default:
			if t, ok := node.(interface {
				Text(source []byte) []byte
			}); ok {
				out = append(out, t.Text(source)...)
			}
		}
	}
	return out
}
