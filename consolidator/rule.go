package consolidator

import (
	"github.com/google/uuid"

	"github.com/specfuse/specfuse/document"
)

// MergedField is one user-edited entry of a consolidation rule's merged
// parameter, payload, or response lists.
type MergedField struct {
	// Name is the field or parameter name.
	Name string `yaml:"name" json:"name"`
	// Enabled toggles inclusion; nil means enabled. Entries with a false
	// value are filtered out of the synthetic operation.
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	// Required marks the field required in the merged schema.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
	// Description overrides the field description.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// DefaultValue is an optional default carried into the merged schema.
	DefaultValue any `yaml:"defaultValue,omitempty" json:"defaultValue,omitempty"`
	// Schema optionally types the field; a string schema is assumed when nil.
	Schema *document.Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	// Source names the single contributing source document.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	// Sources names both contributors when the field collided during merge.
	Sources []string `yaml:"sources,omitempty" json:"sources,omitempty"`
}

// Active reports whether the field participates in the merge.
func (f *MergedField) Active() bool {
	return f.Enabled == nil || *f.Enabled
}

// ExecutionRules are declarative hints consumed by downstream code emitters.
// They control the generated orchestration code's runtime behavior, not the
// engine's own execution.
type ExecutionRules struct {
	// ParallelCalls requests that the two source calls run concurrently.
	ParallelCalls bool `yaml:"parallelCalls" json:"parallelCalls"`
	// AddSourceTracking requests provenance tags on merged fields and enables
	// the rename-on-collision policy for request-body properties.
	AddSourceTracking bool `yaml:"addSourceTracking" json:"addSourceTracking"`
}

// Rule describes one 2-to-1 consolidation. A rule with any populated merged
// list is "user-edited" and rebuilt from those lists; an empty rule is "auto"
// and the engine computes the merge from the two source operations.
type Rule struct {
	// ID uniquely identifies the rule across edits.
	ID string `yaml:"id" json:"id"`
	// Endpoint1 and Endpoint2 reference the two source operations.
	Endpoint1 document.EndpointRef `yaml:"endpoint1" json:"endpoint1"`
	Endpoint2 document.EndpointRef `yaml:"endpoint2" json:"endpoint2"`
	// Path and Method locate the synthetic operation.
	Path   string `yaml:"path" json:"path"`
	Method string `yaml:"method" json:"method"`

	MergedHeaders           []*MergedField `yaml:"mergedHeaders,omitempty" json:"mergedHeaders,omitempty"`
	MergedQueryParams       []*MergedField `yaml:"mergedQueryParams,omitempty" json:"mergedQueryParams,omitempty"`
	MergedPathParams        []*MergedField `yaml:"mergedPathParams,omitempty" json:"mergedPathParams,omitempty"`
	MergedRequestBodyFields []*MergedField `yaml:"mergedRequestBodyFields,omitempty" json:"mergedRequestBodyFields,omitempty"`
	MergedResponseFields    []*MergedField `yaml:"mergedResponseFields,omitempty" json:"mergedResponseFields,omitempty"`

	Rules ExecutionRules `yaml:"rules" json:"rules"`
}

// NewRule creates a rule with a fresh identifier.
func NewRule(e1, e2 document.EndpointRef, method, path string) *Rule {
	return &Rule{
		ID:        uuid.NewString(),
		Endpoint1: e1,
		Endpoint2: e2,
		Method:    method,
		Path:      path,
	}
}

// UserEdited reports whether any merged-field list is populated; such rules
// take the user-data path instead of the auto-merge path.
func (r *Rule) UserEdited() bool {
	return len(r.MergedHeaders) > 0 ||
		len(r.MergedQueryParams) > 0 ||
		len(r.MergedPathParams) > 0 ||
		len(r.MergedRequestBodyFields) > 0 ||
		len(r.MergedResponseFields) > 0
}
