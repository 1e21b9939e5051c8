package combiner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/specfuse/specfuse/document"
	"github.com/specfuse/specfuse/internal/naming"
)

// MergeStrategy declares how downstream emitters combine the source
// responses. The builder records it as metadata and does not interpret it.
type MergeStrategy string

const (
	// StrategyCombine merges all source responses into one namespaced object.
	StrategyCombine MergeStrategy = "combine"
	// StrategyWrap wraps each source response under its own key.
	StrategyWrap MergeStrategy = "wrap"
	// StrategyFirst returns only the first source's response.
	StrategyFirst MergeStrategy = "first"
)

// Mapping is one user-authored N-to-1 aggregation. Its endpoint references
// are resolved against the caller's document set on every build; the mapping
// never owns a copy of the operations it points at.
type Mapping struct {
	// ID is a stable identifier for the mapping.
	ID string `yaml:"id" json:"id"`
	// Name is the mapping's display name; it becomes the operation summary.
	Name string `yaml:"name" json:"name"`
	// SourceEndpoints are the references to the source operations.
	SourceEndpoints []document.EndpointRef `yaml:"sourceEndpoints" json:"sourceEndpoints"`
	// ConsolidatedPath is the path of the synthetic operation.
	ConsolidatedPath string `yaml:"consolidatedPath" json:"consolidatedPath"`
	// Method is the HTTP method of the synthetic operation.
	Method string `yaml:"method" json:"method"`
	// MergeStrategy declares the downstream response combination.
	MergeStrategy MergeStrategy `yaml:"mergeStrategy" json:"mergeStrategy"`
	// Parallel declares that the source calls may run concurrently.
	Parallel bool `yaml:"parallel" json:"parallel"`
	// FieldConfig carries field-level overrides; read-only to the builder.
	FieldConfig FieldConfig `yaml:"fieldConfig,omitempty" json:"fieldConfig,omitempty"`
}

// NewMapping creates a mapping with a fresh ID and the combine strategy.
func NewMapping(name, method, path string, refs ...document.EndpointRef) *Mapping {
	return &Mapping{
		ID:               uuid.NewString(),
		Name:             name,
		SourceEndpoints:  refs,
		ConsolidatedPath: path,
		Method:           method,
		MergeStrategy:    StrategyCombine,
	}
}

// View builds the mapping's CombinedView against docs.
func (m *Mapping) View(docs document.Set) *CombinedView {
	return BuildView(m.SourceEndpoints, docs, m.FieldConfig)
}

// SourceInfo identifies one resolved source of a path item.
type SourceInfo struct {
	// Client is the source document's title.
	Client string `yaml:"client" json:"client"`
	// Endpoint is the source operation's identity key.
	Endpoint string `yaml:"endpoint" json:"endpoint"`
}

// ResolveSources collects SourceInfo entries for the mapping's refs that
// still resolve against docs, in ref order.
func (m *Mapping) ResolveSources(docs document.Set) []SourceInfo {
	var sources []SourceInfo
	for _, ref := range m.SourceEndpoints {
		if ref.IsZero() {
			continue
		}
		doc, op, err := ref.Resolve(docs)
		if err != nil {
			continue
		}
		sources = append(sources, SourceInfo{Client: doc.Title, Endpoint: op.Key()})
	}
	return sources
}

// BuildPathItem renders a view as one OpenAPI path-item object keyed by the
// mapping's lowercase method, ready to splice into a caller-supplied
// document. The x-consolidation block records provenance, execution mode,
// and merge strategy for downstream emitters.
func BuildPathItem(view *CombinedView, m *Mapping, sources []SourceInfo) map[string]any {
	op := map[string]any{
		"summary":   m.Name,
		"responses": buildResponses(view, m, sources),
	}

	var params []any
	params = appendParameters(params, view.Headers, "header")
	params = appendParameters(params, view.QueryParams, "query")
	params = appendParameters(params, view.PathParams, "path")
	if len(params) > 0 {
		op["parameters"] = params
	}

	if len(view.Payload) > 0 {
		op["requestBody"] = map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": payloadSchema(view.Payload),
				},
			},
		}
	}

	sourceList := make([]any, len(sources))
	for i, s := range sources {
		sourceList[i] = map[string]any{"client": s.Client, "endpoint": s.Endpoint}
	}
	op["x-consolidation"] = map[string]any{
		"type":          "2-to-1",
		"sources":       sourceList,
		"execution":     executionMode(m.Parallel),
		"mergeStrategy": string(m.MergeStrategy),
	}

	return map[string]any{strings.ToLower(m.Method): op}
}

func executionMode(parallel bool) string {
	if parallel {
		return "parallel"
	}
	return "sequential"
}

func appendParameters(params []any, fields []*Field, in string) []any {
	for _, f := range fields {
		p := map[string]any{
			"name": f.Name,
			"in":   in,
		}
		if f.Required || in == "path" {
			p["required"] = true
		}
		if f.Description != "" {
			p["description"] = f.Description
		}
		if f.Schema != nil {
			p["schema"] = f.Schema
		}
		if len(f.Sources) > 0 {
			p["x-sources"] = append([]string(nil), f.Sources...)
		}
		if f.Target != "" && f.Target != TargetAll {
			p["x-target"] = f.Target
		}
		params = append(params, p)
	}
	return params
}

func payloadSchema(fields []*Field) map[string]any {
	properties := make(map[string]any, len(fields))
	var required []string
	for _, f := range fields {
		schema := any(f.Schema)
		if f.Schema == nil {
			schema = map[string]any{"type": "string"}
		}
		properties[f.Name] = schema
		if f.Required {
			required = append(required, f.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func buildResponses(view *CombinedView, m *Mapping, sources []SourceInfo) map[string]any {
	properties := map[string]any{
		"success":   map[string]any{"type": "boolean"},
		"timestamp": map[string]any{"type": "string", "format": "date-time"},
	}
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		wrapper := naming.WrapperField(s.Client, "Data")
		if seen[wrapper] {
			continue
		}
		seen[wrapper] = true
		properties[wrapper] = map[string]any{
			"type":        "object",
			"description": "Response payload from " + s.Client,
		}
	}
	for _, f := range view.Responses {
		if _, taken := properties[f.Name]; taken {
			continue
		}
		if f.Schema != nil {
			properties[f.Name] = f.Schema
			continue
		}
		properties[f.Name] = map[string]any{"type": "string", "x-source": f.Source}
	}

	errorSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"error": map[string]any{"type": "string"},
		},
	}
	return map[string]any{
		"200": map[string]any{
			"description": "Combined response",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{
						"type":       "object",
						"properties": properties,
						"required":   []string{"success", "timestamp"},
					},
				},
			},
		},
		"400": map[string]any{
			"description": "Invalid request parameters",
			"content": map[string]any{
				"application/json": map[string]any{"schema": errorSchema},
			},
		},
		"500": map[string]any{
			"description": "Upstream call failed",
			"content": map[string]any{
				"application/json": map[string]any{"schema": errorSchema},
			},
		},
	}
}
