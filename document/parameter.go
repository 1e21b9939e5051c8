package document

import "strings"

// Parameter locations recognized by the engine.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
)

// Parameter describes a single operation parameter. Two parameters sharing
// the key in + ":" + lowercase(name) are the same parameter for merge
// purposes regardless of source document.
type Parameter struct {
	Name        string  `yaml:"name" json:"name"`
	In          string  `yaml:"in" json:"in"` // "path", "query", or "header"
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`

	// Extra captures extension fields (x-source, x-sources).
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Key returns the parameter's identity key: in + ":" + lowercase(name).
func (p *Parameter) Key() string {
	return p.In + ":" + strings.ToLower(p.Name)
}

// Clone returns a deep copy of the parameter.
func (p *Parameter) Clone() *Parameter {
	if p == nil {
		return nil
	}
	out := &Parameter{
		Name:        p.Name,
		In:          p.In,
		Description: p.Description,
		Required:    p.Required,
		Schema:      p.Schema.Clone(),
	}
	if p.Extra != nil {
		out.Extra = cloneAnyMap(p.Extra)
	}
	return out
}
