package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specfuse/specfuse/mergeerrors"
)

// EndpointRef is a tagged reference to one operation inside a loaded document
// set. It is a reference, not an owned copy: resolution happens against the
// Set passed in at call time, so a ref can go stale when the caller removes
// the document or operation it points at.
//
// The serialized form is "{documentIndex}:{httpMethod}:{path}". Paths may
// themselves contain colons; ParseEndpointRef and String are the only
// conversion boundary and rejoin trailing segments accordingly.
type EndpointRef struct {
	Doc    int    `yaml:"doc" json:"doc"`
	Method string `yaml:"method" json:"method"`
	Path   string `yaml:"path" json:"path"`
}

// ParseEndpointRef parses the serialized "idx:METHOD:/path" form.
func ParseEndpointRef(s string) (EndpointRef, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 3 {
		return EndpointRef{}, &mergeerrors.EndpointResolutionError{
			Ref:    s,
			Reason: "expected format documentIndex:method:path",
		}
	}
	idx, err := strconv.Atoi(parts[0])
	if err != nil || idx < 0 {
		return EndpointRef{}, &mergeerrors.EndpointResolutionError{
			Ref:    s,
			Reason: fmt.Sprintf("invalid document index %q", parts[0]),
		}
	}
	if parts[1] == "" || parts[2] == "" {
		return EndpointRef{}, &mergeerrors.EndpointResolutionError{
			Ref:    s,
			Reason: "method and path must be non-empty",
		}
	}
	return EndpointRef{Doc: idx, Method: parts[1], Path: parts[2]}, nil
}

// String returns the serialized "idx:METHOD:/path" form.
func (r EndpointRef) String() string {
	return fmt.Sprintf("%d:%s:%s", r.Doc, r.Method, r.Path)
}

// IsZero reports whether the ref is the zero value.
func (r EndpointRef) IsZero() bool {
	return r.Method == "" && r.Path == ""
}

// Resolve looks the referenced operation up in docs. A missing document or
// operation yields an EndpointResolutionError; callers typically skip the
// affected rule or source and continue.
func (r EndpointRef) Resolve(docs Set) (*Document, *Operation, error) {
	if r.Doc < 0 || r.Doc >= len(docs) {
		return nil, nil, &mergeerrors.EndpointResolutionError{
			Ref:    r.String(),
			Reason: fmt.Sprintf("document index out of range (have %d documents)", len(docs)),
		}
	}
	doc := docs[r.Doc]
	op := doc.FindOperation(r.Method, r.Path)
	if op == nil {
		return nil, nil, &mergeerrors.EndpointResolutionError{
			Ref:    r.String(),
			Reason: fmt.Sprintf("operation not found in %q", doc.Title),
		}
	}
	return doc, op, nil
}
