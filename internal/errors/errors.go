// Package errors provides a lightweight structured error type (DocTreeError)
// for category-based classification across the build pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a doctree error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content loading and resolution errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRoute      ErrorCategory = "route"

	// Build and infrastructure errors
	CategoryBuild    ErrorCategory = "build"
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// DocTreeError is a structured error with category, severity, and context
type DocTreeError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocTreeError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocTreeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DocTreeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocTreeError) WithContext(key string, value any) *DocTreeError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocTreeError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocTreeError {
	return &DocTreeError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocTreeError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocTreeError {
	return &DocTreeError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dte, ok := err.(*DocTreeError); ok {
		return dte.Category == category
	}
	return false
}
