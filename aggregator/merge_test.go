package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specfuse/specfuse/document"
)

func TestMergeOperationsDescriptions(t *testing.T) {
	first := &document.Operation{
		Method: "get", Path: "/x",
		Description: "From the first.",
		SourceAPI:   "First API",
	}
	second := &document.Operation{
		Method: "get", Path: "/x",
		Description: "From the second.",
		SourceAPI:   "Second API",
	}

	out, warnings := MergeOperations(first, second, ResponseLastWins)
	assert.Empty(t, warnings)
	assert.Equal(t, "From the first.\n\n(merged from Second API) From the second.", out.Description)

	// An identical description is not duplicated.
	second.Description = first.Description
	out, _ = MergeOperations(first, second, ResponseLastWins)
	assert.Equal(t, "From the first.", out.Description)
}

func TestMergeOperationsBodyFallback(t *testing.T) {
	first := &document.Operation{Method: "post", Path: "/x"}
	second := &document.Operation{
		Method: "post", Path: "/x",
		RequestBody: &document.RequestBody{
			Required: true,
			Schema:   &document.Schema{Type: "object"},
		},
	}

	out, _ := MergeOperations(first, second, ResponseLastWins)
	require.NotNil(t, out.RequestBody)
	assert.True(t, out.RequestBody.Required)

	// The adopted body is a copy, not a shared pointer.
	out.RequestBody.Schema.Type = "string"
	assert.Equal(t, "object", second.RequestBody.Schema.Type)
}
