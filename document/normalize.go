package document

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/specfuse/specfuse/internal/maputil"
	"github.com/specfuse/specfuse/mergeerrors"
)

// httpMethods are the path-item keys recognized as operations,
// in canonical emission order.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// Parse decodes raw JSON or YAML document bytes and normalizes them.
// The YAML decoder accepts both formats. label identifies the source in
// errors and is the fallback title for documents without info.title.
func Parse(data []byte, label string) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &mergeerrors.ParseError{
			Source: label,
			Cause:  err,
		}
	}
	if raw == nil {
		return nil, &mergeerrors.ParseError{
			Source:  label,
			Message: "document is empty",
		}
	}
	return Normalize(raw, label), nil
}

// Normalize extracts the flat Document view from a decoded document tree.
// Field extraction is lenient: missing or mistyped sections yield an empty
// slice rather than an error, since grammar validation is out of scope.
func Normalize(raw map[string]any, label string) *Document {
	doc := &Document{Raw: raw}

	info := asMap(raw["info"])
	doc.Title = stringOr(info["title"], label)
	doc.Version = asString(info["version"])

	if servers := asSlice(raw["servers"]); len(servers) > 0 {
		doc.BaseURL = asString(asMap(servers[0])["url"])
	}

	paths := asMap(raw["paths"])
	for _, path := range maputil.SortedKeys(paths) {
		item := asMap(paths[path])
		for _, method := range httpMethods {
			rawOp, ok := item[method]
			if !ok {
				continue
			}
			doc.Operations = append(doc.Operations, normalizeOperation(method, path, asMap(rawOp), doc.Title))
		}
	}

	components := asMap(raw["components"])
	schemas := asMap(components["schemas"])
	for _, name := range maputil.SortedKeys(schemas) {
		doc.Schemas = append(doc.Schemas, &SchemaDef{
			Name:   name,
			Schema: normalizeSchema(asMap(schemas[name])),
		})
	}

	return doc
}

func normalizeOperation(method, path string, raw map[string]any, sourceAPI string) *Operation {
	op := &Operation{
		OperationID: asString(raw["operationId"]),
		Method:      method,
		Path:        path,
		Summary:     asString(raw["summary"]),
		Description: asString(raw["description"]),
		SourceAPI:   sourceAPI,
	}
	for _, t := range asSlice(raw["tags"]) {
		if tag := asString(t); tag != "" {
			op.Tags = append(op.Tags, tag)
		}
	}
	for _, p := range asSlice(raw["parameters"]) {
		op.Parameters = append(op.Parameters, normalizeParameter(asMap(p)))
	}
	if body := asMap(raw["requestBody"]); len(body) > 0 {
		op.RequestBody = &RequestBody{
			Description: asString(body["description"]),
			Required:    asBool(body["required"]),
			Schema:      normalizeSchema(contentSchema(body)),
		}
	}
	if responses := asMap(raw["responses"]); len(responses) > 0 {
		op.Responses = make(map[string]*Response, len(responses))
		for code, r := range responses {
			rm := asMap(r)
			op.Responses[code] = &Response{
				Description: asString(rm["description"]),
				Schema:      normalizeSchema(contentSchema(rm)),
			}
		}
	}
	return op
}

func normalizeParameter(raw map[string]any) *Parameter {
	return &Parameter{
		Name:        asString(raw["name"]),
		In:          asString(raw["in"]),
		Description: asString(raw["description"]),
		Required:    asBool(raw["required"]),
		Schema:      normalizeSchema(asMap(raw["schema"])),
	}
}

// contentSchema digs the JSON-schema node out of an OpenAPI content block,
// preferring application/json and falling back to the first media type.
func contentSchema(raw map[string]any) map[string]any {
	content := asMap(raw["content"])
	if len(content) == 0 {
		return nil
	}
	if mt, ok := content["application/json"]; ok {
		return asMap(asMap(mt)["schema"])
	}
	for _, name := range maputil.SortedKeys(content) {
		return asMap(asMap(content[name])["schema"])
	}
	return nil
}

// knownSchemaKeys are the fields extracted into typed Schema fields;
// everything else rides along in Extra.
var knownSchemaKeys = map[string]bool{
	"$ref": true, "type": true, "format": true, "description": true,
	"properties": true, "required": true, "enum": true, "items": true,
	"default": true,
}

func normalizeSchema(raw map[string]any) *Schema {
	if len(raw) == 0 {
		return nil
	}
	s := &Schema{
		Ref:         asString(raw["$ref"]),
		Type:        asString(raw["type"]),
		Format:      asString(raw["format"]),
		Description: asString(raw["description"]),
		Default:     raw["default"],
		Items:       normalizeSchema(asMap(raw["items"])),
	}
	if props := asMap(raw["properties"]); len(props) > 0 {
		s.Properties = make(map[string]*Schema, len(props))
		for name, prop := range props {
			s.Properties[name] = normalizeSchema(asMap(prop))
		}
	}
	for _, req := range asSlice(raw["required"]) {
		if name := asString(req); name != "" {
			s.Required = append(s.Required, name)
		}
	}
	if enum := asSlice(raw["enum"]); len(enum) > 0 {
		s.Enum = append([]any(nil), enum...)
	}
	for k, v := range raw {
		if knownSchemaKeys[k] {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}
		s.Extra[k] = v
	}
	return s
}

// asMap coerces a decoded value to a string-keyed map. The yaml/v4 decoder
// produces map[string]any directly, but map[any]any is handled for safety.
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out
	default:
		return nil
	}
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func stringOr(v any, fallback string) string {
	if s := asString(v); s != "" {
		return s
	}
	return fallback
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
