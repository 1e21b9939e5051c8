package consolidator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/specfuse/specfuse/document"
	"github.com/specfuse/specfuse/internal/maputil"
	"github.com/specfuse/specfuse/internal/naming"
	"github.com/specfuse/specfuse/mergeerrors"
)

// consolidatorLogger is used for warnings in consolidation functions.
// Tests can replace this with a discard logger to suppress expected warnings.
var consolidatorLogger = slog.Default()

// Input carries everything one Consolidate call needs. The two operations
// and their source titles are resolved by the caller; Consolidate itself
// performs no lookups and holds no state.
type Input struct {
	// Endpoint1 and Endpoint2 are the two source operations.
	Endpoint1 *document.Operation
	Endpoint2 *document.Operation
	// Source1 and Source2 are the titles of the contributing documents.
	Source1 string
	Source2 string
	// Rule selects the merge path and locates the synthetic operation.
	Rule *Rule
	// CO2Enabled attaches the x-co2-impact estimate when true.
	CO2Enabled bool
}

// ConsolidateRule resolves a rule's endpoint references against docs and
// consolidates them. A reference that cannot be resolved returns an
// EndpointResolutionError; callers skip the rule and continue with others.
func ConsolidateRule(docs document.Set, rule *Rule, co2Enabled bool) (*document.Operation, error) {
	doc1, op1, err := rule.Endpoint1.Resolve(docs)
	if err != nil {
		return nil, err
	}
	doc2, op2, err := rule.Endpoint2.Resolve(docs)
	if err != nil {
		return nil, err
	}
	return Consolidate(Input{
		Endpoint1:  op1,
		Endpoint2:  op2,
		Source1:    doc1.Title,
		Source2:    doc2.Title,
		Rule:       rule,
		CO2Enabled: co2Enabled,
	})
}

// Consolidate synthesizes one operation representing the two source
// operations called together. The rule's merged-field lists, when populated,
// drive the user-data path; otherwise the auto-merge path computes the merge
// from the raw operations.
func Consolidate(in Input) (*document.Operation, error) {
	if in.Rule == nil {
		return nil, &mergeerrors.ConfigError{Option: "Rule", Message: "consolidation rule is required"}
	}
	if in.Endpoint1 == nil || in.Endpoint2 == nil {
		return nil, &mergeerrors.EndpointResolutionError{
			Ref:    in.Rule.ID,
			Reason: "both source endpoints are required",
		}
	}

	rule := in.Rule
	op := &document.Operation{
		OperationID: operationID(rule.Method, rule.Path),
		Method:      rule.Method,
		Path:        rule.Path,
		Summary:     fmt.Sprintf("Consolidated call to %s and %s", in.Source1, in.Source2),
		Description: fmt.Sprintf("Synthesized from %s %s (%s) and %s %s (%s).",
			strings.ToUpper(in.Endpoint1.Method), in.Endpoint1.Path, in.Source1,
			strings.ToUpper(in.Endpoint2.Method), in.Endpoint2.Path, in.Source2),
		Tags: []string{"consolidated"},
	}

	if rule.UserEdited() {
		applyUserData(in, op)
	} else {
		applyAutoMerge(in, op)
	}

	op.Extra = map[string]any{
		"x-consolidation": map[string]any{
			"type": "2-to-1",
			"sources": []any{
				map[string]any{"client": in.Source1, "endpoint": in.Endpoint1.Key()},
				map[string]any{"client": in.Source2, "endpoint": in.Endpoint2.Key()},
			},
			"execution": executionMode(rule.Rules.ParallelCalls),
		},
	}
	if in.CO2Enabled {
		e1 := EstimateCO2(in.Endpoint1)
		e2 := EstimateCO2(in.Endpoint2)
		op.Extra["x-co2-impact"] = map[string]any{
			"endpoint1":    e1,
			"endpoint2":    e2,
			"consolidated": ConsolidatedCO2(e1, e2),
			"unit":         "g",
		}
	}

	return op, nil
}

func executionMode(parallel bool) string {
	if parallel {
		return "parallel"
	}
	return "sequential"
}

// applyUserData rebuilds the synthetic operation directly from the rule's
// merged-field lists, filtering out disabled entries.
func applyUserData(in Input, op *document.Operation) {
	rule := in.Rule

	op.Parameters = append(op.Parameters, fieldParameters(rule.MergedHeaders, document.InHeader)...)
	op.Parameters = append(op.Parameters, fieldParameters(rule.MergedQueryParams, document.InQuery)...)
	op.Parameters = append(op.Parameters, fieldParameters(rule.MergedPathParams, document.InPath)...)

	if schema := fieldObjectSchema(rule.MergedRequestBodyFields); schema != nil {
		op.RequestBody = &document.RequestBody{
			Required: len(schema.Required) > 0,
			Schema:   schema,
		}
	}

	success := baseResponseSchema()
	addSourceWrapper(success, in.Source1, "Data", nil)
	addSourceWrapper(success, in.Source2, "Data", nil)
	for _, f := range rule.MergedResponseFields {
		if !f.Active() {
			continue
		}
		success.Properties[f.Name] = fieldSchema(f)
	}
	op.Responses = syntheticResponses(success)
}

// applyAutoMerge computes the merge from the two raw operations.
func applyAutoMerge(in Input, op *document.Operation) {
	op.Parameters = mergeParameters(in.Endpoint1.Parameters, in.Endpoint2.Parameters, in.Source1, in.Source2)

	if body := mergeRequestBodies(in); body != nil {
		op.RequestBody = body
	}

	success := baseResponseSchema()
	addSourceWrapper(success, in.Source1, "Response", successSchema(in.Endpoint1))
	addSourceWrapper(success, in.Source2, "Response", successSchema(in.Endpoint2))
	op.Responses = syntheticResponses(success)
}

// fieldParameters converts active merged fields into parameters at the given
// location.
func fieldParameters(fields []*MergedField, in string) []*document.Parameter {
	var params []*document.Parameter
	for _, f := range fields {
		if !f.Active() {
			continue
		}
		p := &document.Parameter{
			Name:        f.Name,
			In:          in,
			Required:    f.Required,
			Description: f.Description,
			Schema:      fieldSchema(f),
		}
		switch {
		case len(f.Sources) > 0:
			p.Extra = map[string]any{"x-sources": append([]string(nil), f.Sources...)}
		case f.Source != "":
			p.Extra = map[string]any{"x-source": f.Source}
		}
		params = append(params, p)
	}
	return params
}

// fieldSchema returns the field's schema, defaulting to string.
func fieldSchema(f *MergedField) *document.Schema {
	s := f.Schema.Clone()
	if s == nil {
		s = &document.Schema{Type: "string"}
	}
	if f.Description != "" && s.Description == "" {
		s.Description = f.Description
	}
	if f.DefaultValue != nil {
		s.Default = f.DefaultValue
	}
	return s
}

// fieldObjectSchema builds an object schema from active merged body fields.
// Returns nil when no field is active.
func fieldObjectSchema(fields []*MergedField) *document.Schema {
	schema := &document.Schema{
		Type:       "object",
		Properties: make(map[string]*document.Schema),
	}
	for _, f := range fields {
		if !f.Active() {
			continue
		}
		schema.Properties[f.Name] = fieldSchema(f)
		if f.Required {
			schema.Required = append(schema.Required, f.Name)
		}
	}
	if len(schema.Properties) == 0 {
		return nil
	}
	return schema
}

// mergeParameters deduplicates two parameter lists by (in, lowercase name).
// Surviving parameters carry x-source (single contributor) or x-sources
// (collision). On collision required is OR'd and description/schema fall back
// to whichever side already has a non-empty value, first side winning ties.
func mergeParameters(first, second []*document.Parameter, src1, src2 string) []*document.Parameter {
	merged := make(map[string]*document.Parameter)
	var order []string

	for _, p := range first {
		c := p.Clone()
		c.Extra = map[string]any{"x-source": src1}
		merged[p.Key()] = c
		order = append(order, p.Key())
	}
	for _, p := range second {
		key := p.Key()
		existing, ok := merged[key]
		if !ok {
			c := p.Clone()
			c.Extra = map[string]any{"x-source": src2}
			merged[key] = c
			order = append(order, key)
			continue
		}
		existing.Required = existing.Required || p.Required
		if existing.Description == "" {
			existing.Description = p.Description
		}
		if existing.Schema == nil {
			existing.Schema = p.Schema.Clone()
		}
		existing.Extra = map[string]any{"x-sources": []string{src1, src2}}
	}

	out := make([]*document.Parameter, len(order))
	for i, key := range order {
		out[i] = merged[key]
	}
	return out
}

// mergeRequestBodies unions the JSON-schema properties of both request
// bodies. On a property-name collision, the second body's property is renamed
// "<prop>_<sanitizedSource>" when source tracking is enabled; with tracking
// disabled the second property silently overwrites the first (explicit
// last-write-wins).
func mergeRequestBodies(in Input) *document.RequestBody {
	b1, b2 := in.Endpoint1.RequestBody, in.Endpoint2.RequestBody
	if b1 == nil && b2 == nil {
		return nil
	}

	schema := &document.Schema{
		Type:       "object",
		Properties: make(map[string]*document.Schema),
	}
	required := make(map[string]bool)
	var requiredOrder []string
	addRequired := func(name string) {
		if !required[name] {
			required[name] = true
			requiredOrder = append(requiredOrder, name)
		}
	}

	if b1 != nil && b1.Schema != nil {
		for name, prop := range b1.Schema.Properties {
			schema.Properties[name] = prop.Clone()
		}
		for _, name := range b1.Schema.Required {
			addRequired(name)
		}
	}
	if b2 != nil && b2.Schema != nil {
		requiredIn2 := make(map[string]bool, len(b2.Schema.Required))
		for _, name := range b2.Schema.Required {
			requiredIn2[name] = true
		}
		for _, name := range maputil.SortedKeys(b2.Schema.Properties) {
			prop := b2.Schema.Properties[name]
			target := name
			if _, collides := schema.Properties[name]; collides {
				if in.Rule.Rules.AddSourceTracking {
					target = name + "_" + naming.SourceSuffix(in.Source2)
				} else {
					consolidatorLogger.Warn("consolidator: request body property overwritten",
						"property", name, "source", in.Source2)
				}
			}
			schema.Properties[target] = prop.Clone()
			if requiredIn2[name] {
				addRequired(target)
			}
		}
	}

	schema.Required = requiredOrder
	return &document.RequestBody{
		Required: (b1 != nil && b1.Required) || (b2 != nil && b2.Required),
		Schema:   schema,
	}
}

// baseResponseSchema is the fixed frame every synthetic 200 response carries.
func baseResponseSchema() *document.Schema {
	return &document.Schema{
		Type: "object",
		Properties: map[string]*document.Schema{
			"success":   {Type: "boolean"},
			"timestamp": {Type: "string", Format: "date-time"},
		},
		Required: []string{"success", "timestamp"},
	}
}

// addSourceWrapper attaches one namespaced wrapper field per source endpoint.
// payload, when non-nil, becomes the wrapper's schema; otherwise the wrapper
// is an opaque object.
func addSourceWrapper(schema *document.Schema, source, suffix string, payload *document.Schema) {
	wrapper := payload.Clone()
	if wrapper == nil {
		wrapper = &document.Schema{Type: "object"}
	}
	if wrapper.Description == "" {
		wrapper.Description = fmt.Sprintf("Response payload from %s", source)
	}
	schema.Properties[naming.WrapperField(source, suffix)] = wrapper
}

// successSchema extracts the schema of an operation's first 2xx response.
func successSchema(op *document.Operation) *document.Schema {
	for _, code := range []string{"200", "201", "202", "204"} {
		if r, ok := op.Responses[code]; ok && r.Schema != nil {
			return r.Schema
		}
	}
	return nil
}

// syntheticResponses assembles the fixed response set of a synthetic
// operation: the merged 200 plus the 400/500 error entries.
func syntheticResponses(success *document.Schema) map[string]*document.Response {
	return map[string]*document.Response{
		"200": {Description: "Consolidated response", Schema: success},
		"400": {Description: "Invalid request parameters", Schema: errorSchema()},
		"500": {Description: "Upstream call failed", Schema: errorSchema()},
	}
}

func errorSchema() *document.Schema {
	return &document.Schema{
		Type: "object",
		Properties: map[string]*document.Schema{
			"error": {Type: "string"},
		},
	}
}

// operationID derives a camelCase identifier for the synthetic operation
// from its method and path.
func operationID(method, path string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(path, "/") {
		if s := naming.Sanitize(seg); s != "" {
			parts = append(parts, s)
		}
	}
	return naming.ToCamelCase(strings.Join(parts, " ")) + "Consolidated"
}
