package combiner

import (
	"slices"
	"strings"

	"github.com/specfuse/specfuse/document"
	"github.com/specfuse/specfuse/internal/maputil"
)

// Field is one deduplicated request field of a CombinedView.
type Field struct {
	// Name is the display name, after any Rename override.
	Name string `yaml:"name" json:"name"`
	// Required is OR'd across every sighting.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`
	// Description comes from the first sighting that has one.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Schema is the first-seen schema; later sightings never replace it.
	Schema *document.Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	// Sources lists the contributing document titles in sighting order.
	Sources []string `yaml:"sources" json:"sources"`
	// Target routes the field to "all" sources or one named source.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

// ResponseField is one response-body property of a CombinedView. Response
// fields are namespaced downstream rather than merged, so provenance is a
// single source, not a list.
type ResponseField struct {
	Name   string           `yaml:"name" json:"name"`
	Schema *document.Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
	Source string           `yaml:"source" json:"source"`
}

// CombinedView is the ephemeral preview of an N-to-1 mapping. It is a pure
// function of (refs, docs, fieldConfig); callers rebuild it on every render
// and never persist it.
type CombinedView struct {
	Headers     []*Field         `yaml:"headers" json:"headers"`
	QueryParams []*Field         `yaml:"queryParams" json:"queryParams"`
	PathParams  []*Field         `yaml:"pathParams" json:"pathParams"`
	Payload     []*Field         `yaml:"payload" json:"payload"`
	Responses   []*ResponseField `yaml:"responses" json:"responses"`
	// SourceCount is the number of refs that resolved.
	SourceCount int `yaml:"sourceCount" json:"sourceCount"`
}

// BuildView folds the operations behind refs into one CombinedView. A zero
// ref or one that fails to resolve is skipped silently and does not count
// toward SourceCount; entries from refs already processed are kept.
func BuildView(refs []document.EndpointRef, docs document.Set, cfg FieldConfig) *CombinedView {
	view := &CombinedView{
		Headers:     []*Field{},
		QueryParams: []*Field{},
		PathParams:  []*Field{},
		Payload:     []*Field{},
		Responses:   []*ResponseField{},
	}
	tables := map[string]*fieldTable{
		document.InHeader: newFieldTable(KindHeader, cfg),
		document.InQuery:  newFieldTable(KindQuery, cfg),
		document.InPath:   newFieldTable(KindPath, cfg),
	}
	payload := newFieldTable(KindBody, cfg)
	responses := newResponseTable(cfg)

	for _, ref := range refs {
		if ref.IsZero() {
			continue
		}
		doc, op, err := ref.Resolve(docs)
		if err != nil {
			continue
		}
		view.SourceCount++
		source := doc.Title

		for _, p := range op.Parameters {
			table, ok := tables[p.In]
			if !ok {
				continue
			}
			table.add(p.Name, p.Required, p.Description, p.Schema, source)
		}

		if op.RequestBody != nil && op.RequestBody.Schema != nil {
			body := op.RequestBody.Schema
			required := make(map[string]bool, len(body.Required))
			for _, name := range body.Required {
				required[name] = true
			}
			for _, name := range maputil.SortedKeys(body.Properties) {
				prop := body.Properties[name]
				payload.add(name, required[name], prop.Description, prop, source)
			}
		}

		if success := firstSuccessSchema(op); success != nil {
			for _, name := range maputil.SortedKeys(success.Properties) {
				responses.add(name, success.Properties[name], source)
			}
		}
	}

	view.Headers = tables[document.InHeader].fields
	view.QueryParams = tables[document.InQuery].fields
	view.PathParams = tables[document.InPath].fields
	view.Payload = payload.fields
	view.Responses = responses.fields
	return view
}

// fieldTable accumulates request fields keyed by lowercase name, preserving
// first-sighting order.
type fieldTable struct {
	kind   string
	cfg    FieldConfig
	byKey  map[string]*Field
	fields []*Field
}

func newFieldTable(kind string, cfg FieldConfig) *fieldTable {
	return &fieldTable{kind: kind, cfg: cfg, byKey: make(map[string]*Field), fields: []*Field{}}
}

func (t *fieldTable) add(name string, required bool, description string, schema *document.Schema, source string) {
	rule := t.cfg.rule(t.kind, name)
	if !rule.Active() {
		return
	}

	key := strings.ToLower(name)
	existing, ok := t.byKey[key]
	if !ok {
		f := &Field{
			Name:        name,
			Required:    required,
			Description: description,
			Schema:      schema.Clone(),
			Sources:     []string{source},
		}
		if rule != nil {
			if rule.Rename != "" {
				f.Name = rule.Rename
			}
			f.Target = rule.Target
		}
		t.byKey[key] = f
		t.fields = append(t.fields, f)
		return
	}

	existing.Required = existing.Required || required
	if existing.Description == "" {
		existing.Description = description
	}
	if !slices.Contains(existing.Sources, source) {
		existing.Sources = append(existing.Sources, source)
	}
}

// responseTable accumulates response fields keyed by lowercase name, applying
// the per-field conflict strategy on collisions.
type responseTable struct {
	cfg    FieldConfig
	byKey  map[string]*ResponseField
	fields []*ResponseField
}

func newResponseTable(cfg FieldConfig) *responseTable {
	return &responseTable{cfg: cfg, byKey: make(map[string]*ResponseField), fields: []*ResponseField{}}
}

func (t *responseTable) add(name string, schema *document.Schema, source string) {
	rule := t.cfg.rule(KindResponse, name)
	if !rule.Active() {
		return
	}

	key := strings.ToLower(name)
	existing, ok := t.byKey[key]
	if !ok {
		f := &ResponseField{Name: name, Schema: schema.Clone(), Source: source}
		if rule != nil && rule.Rename != "" {
			f.Name = rule.Rename
		}
		t.byKey[key] = f
		t.fields = append(t.fields, f)
		return
	}

	switch t.cfg.conflict(name) {
	case ConflictFirst:
		// first-seen wins
	case ConflictLast:
		existing.Schema = schema.Clone()
		existing.Source = source
	case ConflictArray:
		if existing.Schema == nil || existing.Schema.Type != "array" {
			existing.Schema = &document.Schema{Type: "array", Items: existing.Schema}
		}
	default: // ConflictMerge
		if existing.Schema.IsObject() && schema.IsObject() {
			if existing.Schema.Properties == nil {
				existing.Schema.Properties = make(map[string]*document.Schema)
			}
			for _, prop := range maputil.SortedKeys(schema.Properties) {
				if _, seen := existing.Schema.Properties[prop]; !seen {
					existing.Schema.Properties[prop] = schema.Properties[prop].Clone()
				}
			}
		}
	}
}

// firstSuccessSchema extracts the schema of an operation's first 2xx response.
func firstSuccessSchema(op *document.Operation) *document.Schema {
	for _, code := range []string{"200", "201", "202", "204"} {
		if r, ok := op.Responses[code]; ok && r.Schema != nil {
			return r.Schema
		}
	}
	return nil
}
