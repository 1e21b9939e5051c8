package mergeerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a decoding failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrEmptyInput indicates an engine call received zero documents.
	ErrEmptyInput = errors.New("empty input")

	// ErrEndpointResolution indicates a rule or mapping references an
	// endpoint that cannot be resolved against the loaded documents.
	ErrEndpointResolution = errors.New("endpoint resolution error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode an interface document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Source is the document identifier (title, file path, or input label)
	Source string
	// Message describes the decoding failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
// This includes missing sibling documents, missing fragment paths,
// and reference cycles.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// DocumentID identifies the document the reference was resolved against
	DocumentID string
	// IsCircular is true if this error is due to a reference cycle
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.DocumentID != "" {
		msg += " (in " + e.DocumentID + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// EmptyInputError represents an engine call made with zero input documents.
// This is the only fatal condition in the aggregation pipeline; all other
// failures degrade to warnings.
type EmptyInputError struct {
	// Operation names the engine call that received empty input
	Operation string
}

// Error returns a human-readable error message.
func (e *EmptyInputError) Error() string {
	msg := "empty input"
	if e.Operation != "" {
		msg += ": " + e.Operation + " requires at least one document"
	}
	return msg
}

// Unwrap returns nil as EmptyInputError has no underlying cause.
func (e *EmptyInputError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

// EndpointResolutionError represents a rule or mapping reference that cannot
// be resolved against the loaded document set. Callers skip the affected rule
// or source and continue; this error surfaces in warnings, not as a fatal
// condition.
type EndpointResolutionError struct {
	// Ref is the serialized endpoint reference (e.g. "0:GET:/users/{id}")
	Ref string
	// Reason describes why resolution failed
	Reason string
}

// Error returns a human-readable error message.
func (e *EndpointResolutionError) Error() string {
	msg := "endpoint resolution error"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns nil as EndpointResolutionError has no underlying cause.
func (e *EndpointResolutionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *EndpointResolutionError) Is(target error) bool {
	return target == ErrEndpointResolution
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when reference resolution exceeds configured limits.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "ref_depth", "document_count"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
