package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: MongoDB Guide\n---\n# Intro\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: MongoDB Guide\n"), fm)
	require.Equal(t, []byte("# Intro\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\ntitle: broken\n# Intro\n")

	_, _, had, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\ntitle: x\r\n---\r\n# Intro\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\r\n"), fm)
	require.Equal(t, []byte("# Intro\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	input := []byte("---\n---\n# Intro\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Intro\n"), body)
}

func TestParseYAML_UnknownKeysPreserved(t *testing.T) {
	fields, err := ParseYAML([]byte("title: x\ncustom_widget: spinny\nsidebar:\n  order: 3\n"))
	require.NoError(t, err)
	require.Equal(t, "x", fields["title"])
	require.Equal(t, "spinny", fields["custom_widget"])
	require.Equal(t, map[string]any{"order": 3}, fields["sidebar"])
}

func TestParseYAML_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseYAML(nil)
	require.NoError(t, err)
	require.NotNil(t, fields)
	require.Empty(t, fields)
}

func TestParseYAML_Invalid_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte("title: [unclosed\n"))
	require.Error(t, err)
}
