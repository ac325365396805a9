// Package navtree assembles the ordered, hierarchical navigation structure
// consumed by the rendering layer.
//
// The tree is built once per build pass from the complete, validated and
// route-resolved document set, and is immutable after construction. Content
// changes trigger a full rebuild; there is no incremental mutation.
package navtree

import (
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/doctree/internal/collection"
)

// UnorderedOrder is the sentinel placing nodes without an explicit
// sidebar.order after all ordered siblings.
const UnorderedOrder = 1 << 30

// Node is one entry of the navigation tree: a folder (category) or a leaf
// (document). Route is set only on leaves.
type Node struct {
	Label    string  `json:"label"`
	Order    int     `json:"order"`
	Route    string  `json:"route,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node references a document rather than a folder.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 && n.Route != "" }

var titleCaser = cases.Title(language.English)

// Build groups documents by directory and produces the root node.
//
// Sibling ordering, applied independently at every depth:
//  1. explicit sidebar.order ascending,
//  2. unordered nodes after all ordered ones,
//  3. ties alphabetically by label (case-insensitive).
//
// A directory node adopts order and label preferences from its index
// document when one exists; the index document itself stays a leaf so routes
// appear only on leaves.
func Build(docs []collection.Document) *Node {
	root := &Node{Order: UnorderedOrder}
	folders := map[string]*Node{"": root}

	// Documents arrive path-sorted, which makes folder creation order (and
	// therefore the pre-sort tree shape) deterministic.
	for i := range docs {
		doc := &docs[i]
		parent := folderFor(folders, doc.Dir())

		leaf := &Node{
			Label: leafLabel(doc),
			Order: orderOf(doc),
			Route: doc.Route,
		}
		parent.Children = append(parent.Children, leaf)

		if isIndex(doc.Path) {
			// The directory-level document speaks for its folder.
			parent.Order = orderOf(doc)
			if label := explicitLabel(doc); label != "" {
				parent.Label = label
			}
		}
	}

	sortTree(root)
	return root
}

// folderFor returns the node for a directory path, creating it and any
// missing ancestors.
func folderFor(folders map[string]*Node, dir string) *Node {
	if node, ok := folders[dir]; ok {
		return node
	}

	parent := folderFor(folders, parentDir(dir))
	node := &Node{
		Label: TitleCaseSegment(path.Base(dir)),
		Order: UnorderedOrder,
	}
	parent.Children = append(parent.Children, node)
	folders[dir] = node
	return node
}

func parentDir(dir string) string {
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		return dir[:i]
	}
	return ""
}

// leafLabel applies the label fallback chain: sidebar.label, title,
// title-cased last path segment.
func leafLabel(doc *collection.Document) string {
	if label := explicitLabel(doc); label != "" {
		return label
	}
	base := path.Base(doc.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	return TitleCaseSegment(base)
}

func explicitLabel(doc *collection.Document) string {
	if doc.Meta.SidebarLabel != "" {
		return doc.Meta.SidebarLabel
	}
	return doc.Meta.Title
}

func orderOf(doc *collection.Document) int {
	if doc.Meta.SidebarOrder != nil {
		return *doc.Meta.SidebarOrder
	}
	return UnorderedOrder
}

func isIndex(rel string) bool {
	base := path.Base(rel)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.EqualFold(base, "index")
}

// TitleCaseSegment converts a path segment into a human label
// ("spring-cloud" -> "Spring Cloud").
func TitleCaseSegment(segment string) string {
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return titleCaser.String(segment)
}

// sortTree orders children recursively; the same rule applies at every depth.
func sortTree(node *Node) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		la, lb := strings.ToLower(a.Label), strings.ToLower(b.Label)
		if la != lb {
			return la < lb
		}
		// Final tiebreak keeps repeated builds byte-identical.
		return a.Route < b.Route
	})
	for _, child := range node.Children {
		sortTree(child)
	}
}
