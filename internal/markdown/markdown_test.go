package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTitle_LeadingH1(t *testing.T) {
	title := ExtractTitle([]byte("# Spring Cloud Config\n\nBody text.\n"))
	require.Equal(t, "Spring Cloud Config", title)
}

func TestExtractTitle_NoH1_ReturnsEmpty(t *testing.T) {
	require.Empty(t, ExtractTitle([]byte("Just a paragraph.\n")))
}

func TestExtractTitle_TextBeforeH1_Disqualifies(t *testing.T) {
	require.Empty(t, ExtractTitle([]byte("intro paragraph\n\n# Late Heading\n")))
}

func TestExtractTitle_H2First_ReturnsEmpty(t *testing.T) {
	require.Empty(t, ExtractTitle([]byte("## Section\n")))
}

func TestExtractHeadings_OutlineWithAnchors(t *testing.T) {
	body := []byte("# Guide\n\n## Setup\n\ntext\n\n## Usage\n\n### CLI Flags\n")

	headings := ExtractHeadings(body)
	require.Len(t, headings, 4)
	require.Equal(t, Heading{Level: 1, Text: "Guide", Anchor: "guide"}, headings[0])
	require.Equal(t, Heading{Level: 2, Text: "Setup", Anchor: "setup"}, headings[1])
	require.Equal(t, Heading{Level: 2, Text: "Usage", Anchor: "usage"}, headings[2])
	require.Equal(t, Heading{Level: 3, Text: "CLI Flags", Anchor: "cli-flags"}, headings[3])
}

func TestExtractHeadings_DuplicateAnchorsGetSuffix(t *testing.T) {
	body := []byte("## Setup\n\n## Setup\n")

	headings := ExtractHeadings(body)
	require.Len(t, headings, 2)
	require.Equal(t, "setup", headings[0].Anchor)
	require.Equal(t, "setup-1", headings[1].Anchor)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Spring Cloud Config": "spring-cloud-config",
		"What's New?":         "what-s-new",
		"  padded  ":          "padded",
		"CamelCase":           "camelcase",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}
