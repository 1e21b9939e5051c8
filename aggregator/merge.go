package aggregator

import (
	"fmt"

	"github.com/specfuse/specfuse/document"
	"github.com/specfuse/specfuse/internal/maputil"
	"github.com/specfuse/specfuse/internal/naming"
)

// ResponsePolicy selects how colliding response status codes are resolved
// when two operations merge.
type ResponsePolicy int

const (
	// ResponseLastWins replaces an existing response entry with the incoming
	// one. This is the default.
	ResponseLastWins ResponsePolicy = iota
	// ResponseFirstWins keeps the first-seen response entry and discards the
	// incoming one.
	ResponseFirstWins
)

// MergeOperations merges second into a copy of first. Neither input is
// mutated. First's scalar fields win; second fills in absent ones.
// Descriptions from both sides are kept, joined with a provenance marker.
// Parameters are deduplicated by (in, lowercase name) with required OR'd and
// description/schema taken from whichever side has a value first. Colliding
// response codes are resolved per policy, each collision emitting a warning.
func MergeOperations(first, second *document.Operation, policy ResponsePolicy) (*document.Operation, Warnings) {
	out := first.Clone()
	var warnings Warnings

	if out.OperationID == "" {
		out.OperationID = second.OperationID
	}
	if out.Summary == "" {
		out.Summary = second.Summary
	}
	switch {
	case out.Description == "":
		out.Description = second.Description
	case second.Description != "" && second.Description != out.Description:
		out.Description = fmt.Sprintf("%s\n\n(merged from %s) %s",
			out.Description, second.SourceAPI, second.Description)
	}

	tagSeen := make(map[string]bool, len(out.Tags))
	for _, t := range out.Tags {
		tagSeen[t] = true
	}
	for _, t := range second.Tags {
		if !tagSeen[t] {
			tagSeen[t] = true
			out.Tags = append(out.Tags, t)
		}
	}

	byKey := make(map[string]*document.Parameter, len(out.Parameters))
	for _, p := range out.Parameters {
		byKey[p.Key()] = p
	}
	for _, p := range second.Parameters {
		existing, ok := byKey[p.Key()]
		if !ok {
			c := p.Clone()
			byKey[p.Key()] = c
			out.Parameters = append(out.Parameters, c)
			continue
		}
		existing.Required = existing.Required || p.Required
		if existing.Description == "" {
			existing.Description = p.Description
		}
		if existing.Schema == nil {
			existing.Schema = p.Schema.Clone()
		}
	}

	if out.RequestBody == nil {
		out.RequestBody = second.RequestBody.Clone()
	}

	if out.Responses == nil && len(second.Responses) > 0 {
		out.Responses = make(map[string]*document.Response, len(second.Responses))
	}
	for _, code := range maputil.SortedKeys(second.Responses) {
		if _, collides := out.Responses[code]; !collides {
			out.Responses[code] = second.Responses[code].Clone()
			continue
		}
		if policy == ResponseFirstWins {
			warnings = append(warnings, newResponseWarning(
				WarnResponseKept, out.Key(), code, first.SourceAPI, second.SourceAPI))
			continue
		}
		out.Responses[code] = second.Responses[code].Clone()
		warnings = append(warnings, newResponseWarning(
			WarnResponseOverwritten, out.Key(), code, first.SourceAPI, second.SourceAPI))
	}

	return out, warnings
}

// MergeSchemaDefs folds def into the named-schema table. Collision policy:
//   - type differs: the incoming schema is kept under a renamed key
//     "<name>_<sanitizedSourceTitle>", the original stays put.
//   - both object: properties are shallow-merged with the incoming side
//     overwriting, required names set-unioned in insertion order.
//   - same non-object type: the first definition wins unconditionally.
func MergeSchemaDefs(schemas map[string]*document.Schema, def *document.SchemaDef, source string) Warnings {
	incoming := def.Schema
	existing, ok := schemas[def.Name]
	if !ok {
		schemas[def.Name] = incoming.Clone()
		return nil
	}

	if existing.Type != incoming.Type {
		renamed := def.Name + "_" + naming.SourceSuffix(source)
		schemas[renamed] = incoming.Clone()
		return Warnings{newSchemaRenamedWarning(def.Name, renamed, source)}
	}

	if existing.IsObject() && incoming.IsObject() {
		var warnings Warnings
		if existing.Properties == nil && len(incoming.Properties) > 0 {
			existing.Properties = make(map[string]*document.Schema, len(incoming.Properties))
		}
		for _, name := range maputil.SortedKeys(incoming.Properties) {
			if _, collides := existing.Properties[name]; collides {
				warnings = append(warnings, newPropertyOverwrittenWarning(def.Name, name, source))
			}
			existing.Properties[name] = incoming.Properties[name].Clone()
		}
		requiredSeen := make(map[string]bool, len(existing.Required))
		for _, name := range existing.Required {
			requiredSeen[name] = true
		}
		for _, name := range incoming.Required {
			if !requiredSeen[name] {
				requiredSeen[name] = true
				existing.Required = append(existing.Required, name)
			}
		}
		return warnings
	}

	return Warnings{newSchemaKeptWarning(def.Name, source)}
}
