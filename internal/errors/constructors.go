package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocTreeError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *DocTreeError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Content loading errors

func ContentRootNotFound(root string) *DocTreeError {
	return New(CategoryFileSystem, SeverityFatal, "content root not found").
		WithContext("root", root)
}

func MalformedFrontmatter(path string, cause error) *DocTreeError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "malformed frontmatter").
		WithContext("path", path)
}

// Route errors

func RouteCollision(route, firstPath, secondPath string) *DocTreeError {
	return New(CategoryRoute, SeverityFatal, "route collision").
		WithContext("route", route).
		WithContext("first", firstPath).
		WithContext("second", secondPath)
}

// Build pipeline errors

func BuildFailed(stage string, cause error) *DocTreeError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func ArtifactWriteError(path string, cause error) *DocTreeError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "artifact write failed").
		WithContext("path", path)
}

// Daemon errors

func DaemonStartError(component string, cause error) *DocTreeError {
	return Wrap(cause, CategoryDaemon, SeverityFatal, "daemon component failed to start").
		WithContext("component", component)
}

// Internal errors

func InternalError(message string, cause error) *DocTreeError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
