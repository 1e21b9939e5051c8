package mergeerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "message only",
			err:  &ParseError{Message: "unexpected node"},
			want: "parse error: unexpected node",
		},
		{
			name: "with source",
			err:  &ParseError{Source: "users-api", Message: "missing paths"},
			want: "parse error in users-api: missing paths",
		},
		{
			name: "with cause",
			err:  &ParseError{Source: "billing-api", Cause: errors.New("bad yaml")},
			want: "parse error in billing-api: bad yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrParse)
			assert.NotErrorIs(t, tt.err, ErrReference)
		})
	}
}

func TestReferenceError(t *testing.T) {
	t.Run("missing fragment", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "#/components/schemas/User",
			DocumentID: "users-api",
			Message:    "fragment not found",
		}
		assert.Equal(t, "reference error: #/components/schemas/User (in users-api): fragment not found", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.NotErrorIs(t, err, ErrCircularReference)
	})

	t.Run("circular", func(t *testing.T) {
		err := &ReferenceError{
			Ref:        "./a.yaml#/components/schemas/Node",
			IsCircular: true,
		}
		assert.Contains(t, err.Error(), "circular reference")
		assert.ErrorIs(t, err, ErrReference)
		assert.ErrorIs(t, err, ErrCircularReference)
	})

	t.Run("unwraps cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := &ReferenceError{Ref: "#/x", Cause: cause}
		assert.ErrorIs(t, err, cause)
	})
}

func TestEmptyInputError(t *testing.T) {
	err := &EmptyInputError{Operation: "aggregate"}
	assert.Equal(t, "empty input: aggregate requires at least one document", err.Error())
	assert.ErrorIs(t, err, ErrEmptyInput)

	// Wrapped through fmt.Errorf it should still match via errors.As.
	wrapped := fmt.Errorf("engine failed: %w", err)
	var target *EmptyInputError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "aggregate", target.Operation)
	assert.ErrorIs(t, wrapped, ErrEmptyInput)
}

func TestEndpointResolutionError(t *testing.T) {
	err := &EndpointResolutionError{
		Ref:    "2:GET:/users/{id}",
		Reason: "document index out of range",
	}
	assert.Equal(t, "endpoint resolution error: 2:GET:/users/{id}: document index out of range", err.Error())
	assert.ErrorIs(t, err, ErrEndpointResolution)
	assert.NotErrorIs(t, err, ErrEmptyInput)
}

func TestResourceLimitError(t *testing.T) {
	tests := []struct {
		name string
		err  *ResourceLimitError
		want string
	}{
		{
			name: "with limit and actual",
			err: &ResourceLimitError{
				ResourceType: "ref_depth",
				Limit:        100,
				Actual:       101,
				Message:      "structure too deeply nested",
			},
			want: "resource limit exceeded: ref_depth (limit: 100, actual: 101): structure too deeply nested",
		},
		{
			name: "limit only",
			err:  &ResourceLimitError{ResourceType: "document_count", Limit: 50},
			want: "resource limit exceeded: document_count (limit: 50)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrResourceLimit)
		})
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Option:  "ResponsePolicy",
		Value:   "middle-wins",
		Message: "unknown policy",
	}
	assert.Equal(t, "configuration error for ResponsePolicy (value: middle-wins): unknown policy", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
}

// TestSentinelsAreDistinct guards against accidental aliasing of sentinel errors.
func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrParse, ErrReference, ErrCircularReference, ErrEmptyInput,
		ErrEndpointResolution, ErrResourceLimit, ErrConfig,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}
