package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocTreeError_ErrorString(t *testing.T) {
	err := New(CategoryValidation, SeverityError, "bad metadata")
	require.Equal(t, "validation (error): bad metadata", err.Error())

	wrapped := Wrap(fmt.Errorf("boom"), CategoryBuild, SeverityFatal, "stage failed")
	require.Equal(t, "build (fatal): stage failed: boom", wrapped.Error())
}

func TestDocTreeError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(cause, CategoryFileSystem, SeverityFatal, "read failed")
	require.True(t, stderrors.Is(err, cause))
}

func TestIsCategory(t *testing.T) {
	err := RouteCollision("guides/a", "guides/a.md", "guides/b.md")
	require.True(t, IsCategory(err, CategoryRoute))
	require.False(t, IsCategory(err, CategoryConfig))
	require.False(t, IsCategory(fmt.Errorf("plain"), CategoryRoute))
}

func TestRouteCollision_Context(t *testing.T) {
	err := RouteCollision("guides/a", "guides/a.md", "guides/b.md")
	require.Equal(t, "guides/a", err.Context["route"])
	require.Equal(t, "guides/a.md", err.Context["first"])
	require.Equal(t, "guides/b.md", err.Context["second"])
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	require.Equal(t, 0, adapter.ExitCodeFor(nil))
	require.Equal(t, 1, adapter.ExitCodeFor(fmt.Errorf("plain")))
	require.Equal(t, 2, adapter.ExitCodeFor(New(CategoryValidation, SeverityFatal, "x")))
	require.Equal(t, 3, adapter.ExitCodeFor(New(CategoryRoute, SeverityFatal, "x")))
	require.Equal(t, 7, adapter.ExitCodeFor(New(CategoryConfig, SeverityFatal, "x")))
	require.Equal(t, 11, adapter.ExitCodeFor(New(CategoryBuild, SeverityFatal, "x")))
}

func TestCLIErrorAdapter_Format(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	require.Equal(t, "configuration file not found", adapter.FormatError(ConfigNotFound("x.yaml")))
	require.Equal(t, "route: route collision", adapter.FormatError(RouteCollision("r", "a", "b")))
}
