package combiner

import "strings"

// ConflictStrategy resolves a response-field name collision in the view.
type ConflictStrategy string

const (
	// ConflictMerge shallow-merges object properties, first side winning per
	// key. Non-object collisions keep the first-seen field. Default.
	ConflictMerge ConflictStrategy = "merge"
	// ConflictFirst keeps the first-seen field unconditionally.
	ConflictFirst ConflictStrategy = "first"
	// ConflictLast replaces the field with the latest sighting.
	ConflictLast ConflictStrategy = "last"
	// ConflictArray collects colliding values into an array of the first-seen
	// schema.
	ConflictArray ConflictStrategy = "array"
)

// TargetAll routes a request field to every source endpoint.
const TargetAll = "all"

// FieldRule is one field-level override. All overrides are optional; a nil
// rule means the field passes through unchanged.
type FieldRule struct {
	// Enabled excludes the field from the view when explicitly false.
	// Nil means enabled.
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	// Rename replaces the field's display name.
	Rename string `yaml:"rename,omitempty" json:"rename,omitempty"`
	// Target routes a request field to "all" sources or one named source.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
	// Conflict selects the response-field collision strategy.
	Conflict ConflictStrategy `yaml:"conflict,omitempty" json:"conflict,omitempty"`
}

// Active reports whether the field stays in the view.
func (r *FieldRule) Active() bool {
	return r == nil || r.Enabled == nil || *r.Enabled
}

// FieldConfig maps "kind:fieldName" keys (kind one of header, query, path,
// body, response; name lowercase) to field-level overrides. The builder reads
// it and never mutates it.
type FieldConfig map[string]*FieldRule

// Kind segments of a FieldConfig key.
const (
	KindHeader   = "header"
	KindQuery    = "query"
	KindPath     = "path"
	KindBody     = "body"
	KindResponse = "response"
)

func (c FieldConfig) rule(kind, name string) *FieldRule {
	if c == nil {
		return nil
	}
	return c[kind+":"+strings.ToLower(name)]
}

func (c FieldConfig) conflict(name string) ConflictStrategy {
	r := c.rule(KindResponse, name)
	if r == nil || r.Conflict == "" {
		return ConflictMerge
	}
	return r.Conflict
}
