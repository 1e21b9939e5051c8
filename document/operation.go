package document

import "strings"

// Operation is one HTTP method+path entry with its parameters, body, and
// responses. Identity key is method+path with the method upper-cased.
// Operations are immutable once extracted from a document; merge functions
// always produce a new Operation rather than mutating in place.
type Operation struct {
	OperationID string                `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Method      string                `yaml:"method" json:"method"`
	Path        string                `yaml:"path" json:"path"`
	Summary     string                `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Parameters  []*Parameter          `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	RequestBody *RequestBody          `yaml:"requestBody,omitempty" json:"requestBody,omitempty"`
	Responses   map[string]*Response  `yaml:"responses,omitempty" json:"responses,omitempty"`
	Tags        []string              `yaml:"tags,omitempty" json:"tags,omitempty"`
	SourceAPI   string                `yaml:"sourceAPI,omitempty" json:"sourceAPI,omitempty"`

	// Extra captures extension fields (x-consolidation, x-co2-impact,
	// x-source, x-sources).
	Extra map[string]any `yaml:",inline" json:"-"`
}

// operationKey builds the canonical identity key for a method+path pair.
func operationKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// lowerMethod normalizes a method for use as a path-item key.
func lowerMethod(method string) string {
	return strings.ToLower(method)
}

// Key returns the operation's identity key (method upper-cased).
// Two operations sharing a key are merge candidates.
func (o *Operation) Key() string {
	return operationKey(o.Method, o.Path)
}

// Clone returns a deep copy of the operation.
func (o *Operation) Clone() *Operation {
	if o == nil {
		return nil
	}
	out := &Operation{
		OperationID: o.OperationID,
		Method:      o.Method,
		Path:        o.Path,
		Summary:     o.Summary,
		Description: o.Description,
		SourceAPI:   o.SourceAPI,
		RequestBody: o.RequestBody.Clone(),
	}
	if o.Parameters != nil {
		out.Parameters = make([]*Parameter, len(o.Parameters))
		for i, p := range o.Parameters {
			out.Parameters[i] = p.Clone()
		}
	}
	if o.Responses != nil {
		out.Responses = make(map[string]*Response, len(o.Responses))
		for code, r := range o.Responses {
			out.Responses[code] = r.Clone()
		}
	}
	if o.Tags != nil {
		out.Tags = append([]string(nil), o.Tags...)
	}
	if o.Extra != nil {
		out.Extra = cloneAnyMap(o.Extra)
	}
	return out
}

// RequestBody describes an operation's request payload, normalized to a
// single JSON-schema body.
type RequestBody struct {
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Clone returns a deep copy of the request body.
func (b *RequestBody) Clone() *RequestBody {
	if b == nil {
		return nil
	}
	return &RequestBody{
		Description: b.Description,
		Required:    b.Required,
		Schema:      b.Schema.Clone(),
	}
}

// Response describes one status-code entry of an operation.
type Response struct {
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Schema      *Schema `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Clone returns a deep copy of the response.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	return &Response{
		Description: r.Description,
		Schema:      r.Schema.Clone(),
	}
}
