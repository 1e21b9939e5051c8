package document

// Schema is a JSON-Schema-like type node. Only the subset the merge engine
// reasons about is modeled; anything else rides along in Extra.
type Schema struct {
	Ref         string             `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type        string             `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string             `yaml:"format,omitempty" json:"format,omitempty"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Properties  map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required    []string           `yaml:"required,omitempty" json:"required,omitempty"`
	Enum        []any              `yaml:"enum,omitempty" json:"enum,omitempty"`
	Items       *Schema            `yaml:"items,omitempty" json:"items,omitempty"`
	Default     any                `yaml:"default,omitempty" json:"default,omitempty"`

	// Extra captures extension fields (x-source and friends).
	Extra map[string]any `yaml:",inline" json:"-"`
}

// IsObject reports whether the schema declares object type.
func (s *Schema) IsObject() bool {
	return s != nil && s.Type == "object"
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{
		Ref:         s.Ref,
		Type:        s.Type,
		Format:      s.Format,
		Description: s.Description,
		Default:     s.Default,
		Items:       s.Items.Clone(),
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.Clone()
		}
	}
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Enum != nil {
		out.Enum = append([]any(nil), s.Enum...)
	}
	if s.Extra != nil {
		out.Extra = cloneAnyMap(s.Extra)
	}
	return out
}

// SchemaDef is a named schema definition. Identity key is the exact name.
type SchemaDef struct {
	Name   string  `yaml:"name" json:"name"`
	Schema *Schema `yaml:"schema" json:"schema"`
}

// Clone returns a deep copy of the schema definition.
func (d *SchemaDef) Clone() *SchemaDef {
	if d == nil {
		return nil
	}
	return &SchemaDef{
		Name:   d.Name,
		Schema: d.Schema.Clone(),
	}
}

// cloneAnyMap deep-copies a decoded map tree (maps, slices, scalars).
func cloneAnyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAnyValue(v)
	}
	return out
}

func cloneAnyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneAnyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneAnyValue(item)
		}
		return out
	default:
		return val
	}
}
