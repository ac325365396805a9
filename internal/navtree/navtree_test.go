package navtree

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doctree/internal/collection"
)

func doc(path, title string, order *int, label string) collection.Document {
	return collection.Document{
		Path:  path,
		Route: routeFor(path),
		Meta: collection.Metadata{
			Title:        title,
			SidebarOrder: order,
			SidebarLabel: label,
		},
	}
}

// routeFor mirrors the route resolver's default rule closely enough for tree
// tests (lowercase, strip extension, collapse index, "/" for the site root).
func routeFor(path string) string {
	out := strings.ToLower(strings.TrimSuffix(path, ".md"))
	out = strings.TrimSuffix(out, "index")
	out = strings.TrimSuffix(out, "/")
	if out == "" {
		return "/"
	}
	return out
}

func intPtr(n int) *int { return &n }

func labels(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestBuild_ExplicitOrderAscending(t *testing.T) {
	// Scenario: sibling sidebar.order values 2, 0, 1 appear as 0, 1, 2.
	root := Build([]collection.Document{
		doc("guides/charlie.md", "Charlie", intPtr(2), ""),
		doc("guides/alpha.md", "Alpha", intPtr(0), ""),
		doc("guides/bravo.md", "Bravo", intPtr(1), ""),
	})

	require.Len(t, root.Children, 1)
	guides := root.Children[0]
	require.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, labels(guides.Children))
}

func TestBuild_OrderZeroBeforeUnordered(t *testing.T) {
	root := Build([]collection.Document{
		doc("a.md", "Unordered", nil, ""),
		doc("b.md", "Zeroth", intPtr(0), ""),
		doc("c.md", "First", intPtr(1), ""),
	})

	require.Equal(t, []string{"Zeroth", "First", "Unordered"}, labels(root.Children))
}

func TestBuild_UnorderedSortAlphabeticallyCaseInsensitive(t *testing.T) {
	root := Build([]collection.Document{
		doc("one.md", "banana", nil, ""),
		doc("two.md", "Apple", nil, ""),
		doc("three.md", "cherry", nil, ""),
	})

	require.Equal(t, []string{"Apple", "banana", "cherry"}, labels(root.Children))
}

func TestBuild_ExplicitOrderTiesBreakByLabel(t *testing.T) {
	root := Build([]collection.Document{
		doc("one.md", "Zeta", intPtr(5), ""),
		doc("two.md", "Alpha", intPtr(5), ""),
	})

	require.Equal(t, []string{"Alpha", "Zeta"}, labels(root.Children))
}

func TestBuild_LabelFallbackChain(t *testing.T) {
	root := Build([]collection.Document{
		doc("a.md", "Title A", nil, "Label A"), // sidebar.label wins
		doc("b.md", "Title B", nil, ""),        // title next
		doc("spring-cloud.md", "", nil, ""),    // segment, title-cased
	})

	require.ElementsMatch(t, []string{"Label A", "Title B", "Spring Cloud"}, labels(root.Children))
}

func TestBuild_FolderLabelFromSegment(t *testing.T) {
	root := Build([]collection.Document{
		doc("design-patterns/factory.md", "Factory", nil, ""),
	})

	require.Len(t, root.Children, 1)
	require.Equal(t, "Design Patterns", root.Children[0].Label)
	require.False(t, root.Children[0].IsLeaf())
}

func TestBuild_FolderAdoptsIndexOrderAndLabel(t *testing.T) {
	root := Build([]collection.Document{
		doc("zz/page.md", "Page", nil, ""),
		doc("aa/index.md", "Ignored Title", intPtr(0), "Pinned Section"),
		doc("aa/other.md", "Other", nil, ""),
	})

	require.Len(t, root.Children, 2)
	first := root.Children[0]
	require.Equal(t, "Pinned Section", first.Label)
	require.Equal(t, 0, first.Order)
	// The index document stays a leaf so routes appear only on leaves.
	require.Empty(t, first.Route)
	require.Len(t, first.Children, 2)
}

func TestBuild_OrderingIndependentPerDepth(t *testing.T) {
	root := Build([]collection.Document{
		doc("s/one.md", "One", intPtr(1), ""),
		doc("s/two.md", "Two", intPtr(0), ""),
		doc("t/three.md", "Three", intPtr(9), ""),
		doc("t/four.md", "Four", intPtr(0), ""),
	})

	require.Equal(t, []string{"S", "T"}, labels(root.Children))
	require.Equal(t, []string{"Two", "One"}, labels(root.Children[0].Children))
	require.Equal(t, []string{"Four", "Three"}, labels(root.Children[1].Children))
}

func TestBuild_RouteOnlyOnLeaves(t *testing.T) {
	root := Build([]collection.Document{
		doc("guides/kotlin/basics.md", "Basics", nil, ""),
	})

	var walk func(n *Node)
	walk = func(n *Node) {
		if len(n.Children) > 0 {
			require.Empty(t, n.Route, "folder %q has a route", n.Label)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	leaf := root.Children[0].Children[0].Children[0]
	require.True(t, leaf.IsLeaf())
	require.Equal(t, "guides/kotlin/basics", leaf.Route)
}

func TestBuild_RootIndexIsLeafWithRootRoute(t *testing.T) {
	root := Build([]collection.Document{
		doc("index.md", "Home", intPtr(0), ""),
		doc("about.md", "About", nil, ""),
	})

	require.Len(t, root.Children, 2)
	home := root.Children[0]
	require.Equal(t, "Home", home.Label)
	require.Equal(t, "/", home.Route)
	require.True(t, home.IsLeaf())
}

func TestBuild_Idempotent(t *testing.T) {
	docs := []collection.Document{
		doc("guides/b.md", "B", nil, ""),
		doc("guides/a.md", "A", intPtr(3), ""),
		doc("guides/index.md", "Guides", intPtr(1), ""),
		doc("api/reference.md", "Reference", nil, ""),
	}

	first, err := json.Marshal(Build(docs))
	require.NoError(t, err)
	second, err := json.Marshal(Build(docs))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestTitleCaseSegment(t *testing.T) {
	require.Equal(t, "Spring Cloud", TitleCaseSegment("spring-cloud"))
	require.Equal(t, "Design Patterns", TitleCaseSegment("design_patterns"))
	require.Equal(t, "Api", TitleCaseSegment("api"))
}
