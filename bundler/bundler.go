package bundler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/specfuse/specfuse/mergeerrors"
)

// bundlerLogger is used for warnings during resolution.
// Tests can replace this with a discard logger to suppress expected warnings.
var bundlerLogger = slog.Default()

// MaxResolveDepth is the maximum depth allowed for nested $ref resolution.
// This bounds deeply nested (but non-circular) reference chains.
const MaxResolveDepth = 100

// WarningCategory identifies the type of resolution warning.
type WarningCategory string

const (
	// WarnMissingSibling indicates a relative $ref names an unknown sibling document.
	WarnMissingSibling WarningCategory = "missing_sibling"
	// WarnMissingFragment indicates a fragment path does not exist in its target document.
	WarnMissingFragment WarningCategory = "missing_fragment"
)

// Warning records a non-fatal resolution failure. The original $ref node is
// preserved unresolved wherever a warning is reported.
type Warning struct {
	// Category identifies the failure type.
	Category WarningCategory
	// Ref is the $ref value that failed to resolve.
	Ref string
	// DocumentID is the document the reference was found in.
	DocumentID string
	// Message is a human-readable description.
	Message string
}

// String returns a formatted warning message.
func (w Warning) String() string {
	return fmt.Sprintf("%s: $ref %q in %s: %s", w.Category, w.Ref, w.DocumentID, w.Message)
}

// resolver carries the state of one Resolve call.
type resolver struct {
	siblings map[string]map[string]any
	// resolving tracks references on the current recursion stack,
	// keyed by documentID + "#" + fragment. A repeat sighting is a cycle.
	resolving map[string]bool
	warnings  []Warning
}

// Resolve inlines every supported $ref in main, looking relative references
// up in siblings (keyed by document id, e.g. "billing.yaml"). It returns a
// new document tree; main and siblings are never mutated.
//
// Unresolvable references degrade to warnings. A reference cycle returns a
// *mergeerrors.ReferenceError with IsCircular set; nesting beyond
// MaxResolveDepth returns a *mergeerrors.ResourceLimitError.
func Resolve(main map[string]any, mainID string, siblings map[string]map[string]any) (map[string]any, []Warning, error) {
	r := &resolver{
		siblings:  siblings,
		resolving: make(map[string]bool),
	}
	resolved, err := r.resolveNode(mainID, main, main, 0)
	if err != nil {
		return nil, r.warnings, err
	}
	out, ok := resolved.(map[string]any)
	if !ok {
		return nil, r.warnings, &mergeerrors.ParseError{
			Source:  mainID,
			Message: fmt.Sprintf("document root must be an object, got %T", resolved),
		}
	}
	return out, r.warnings, nil
}

// resolveNode walks one node of the tree, returning its resolved copy.
// docID and doc identify the document fragments are navigated against.
func (r *resolver) resolveNode(docID string, doc map[string]any, node any, depth int) (any, error) {
	if depth > MaxResolveDepth {
		return nil, &mergeerrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        MaxResolveDepth,
			Actual:       int64(depth),
			Message:      "structure too deeply nested",
		}
	}

	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok {
			switch {
			case strings.HasPrefix(ref, "#/"):
				return r.resolveFragment(docID, doc, v, ref, strings.TrimPrefix(ref, "#"), depth)
			case strings.HasPrefix(ref, "./"), strings.HasPrefix(ref, "../"):
				return r.resolveSibling(docID, v, ref, depth)
			}
			// Unsupported ref form: fall through to the generic walk,
			// leaving the $ref untouched.
		}
		out := make(map[string]any, len(v))
		for k, val := range v {
			resolved, err := r.resolveNode(docID, doc, val, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			resolved, err := r.resolveNode(docID, doc, item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		return v, nil
	}
}

// resolveFragment splices the subtree a fragment points at inside doc,
// recursively resolved. On lookup failure the original node is preserved.
func (r *resolver) resolveFragment(docID string, doc map[string]any, node map[string]any, ref, fragment string, depth int) (any, error) {
	key := docID + "#" + fragment
	if r.resolving[key] {
		return nil, &mergeerrors.ReferenceError{
			Ref:        ref,
			DocumentID: docID,
			IsCircular: true,
		}
	}

	target, ok := navigate(doc, fragment)
	if !ok {
		r.warn(Warning{
			Category:   WarnMissingFragment,
			Ref:        ref,
			DocumentID: docID,
			Message:    "fragment path not found",
		})
		return copyTree(node), nil
	}

	r.resolving[key] = true
	defer delete(r.resolving, key)
	return r.resolveNode(docID, doc, target, depth+1)
}

// resolveSibling resolves a relative reference into a sibling document.
func (r *resolver) resolveSibling(docID string, node map[string]any, ref string, depth int) (any, error) {
	filePart, fragment, _ := strings.Cut(ref, "#")
	sibID := stripRelativePrefix(filePart)

	sibling, ok := r.siblings[sibID]
	if !ok {
		r.warn(Warning{
			Category:   WarnMissingSibling,
			Ref:        ref,
			DocumentID: docID,
			Message:    fmt.Sprintf("sibling document %q not loaded", sibID),
		})
		return copyTree(node), nil
	}

	key := sibID + "#" + fragment
	if r.resolving[key] {
		return nil, &mergeerrors.ReferenceError{
			Ref:        ref,
			DocumentID: docID,
			IsCircular: true,
		}
	}

	var target any = sibling
	if fragment != "" {
		target, ok = navigate(sibling, fragment)
		if !ok {
			r.warn(Warning{
				Category:   WarnMissingFragment,
				Ref:        ref,
				DocumentID: docID,
				Message:    fmt.Sprintf("fragment path not found in %q", sibID),
			})
			return copyTree(node), nil
		}
	}

	r.resolving[key] = true
	defer delete(r.resolving, key)
	// The extracted subtree is resolved with the sibling as the current
	// document, so its own local fragments resolve against the sibling.
	return r.resolveNode(sibID, sibling, target, depth+1)
}

func (r *resolver) warn(w Warning) {
	r.warnings = append(r.warnings, w)
	bundlerLogger.Warn("bundler: unresolved reference",
		"category", string(w.Category), "ref", w.Ref, "document", w.DocumentID)
}

// navigate walks a slash-delimited fragment path (e.g.
// "/components/schemas/User") by successive key lookup.
func navigate(doc map[string]any, fragment string) (any, bool) {
	trimmed := strings.TrimPrefix(fragment, "/")
	if trimmed == "" {
		return doc, true
	}

	current := any(doc)
	for _, part := range strings.Split(trimmed, "/") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stripRelativePrefix removes leading "./" and "../" segments to obtain the
// sibling document id.
func stripRelativePrefix(p string) string {
	for {
		switch {
		case strings.HasPrefix(p, "./"):
			p = strings.TrimPrefix(p, "./")
		case strings.HasPrefix(p, "../"):
			p = strings.TrimPrefix(p, "../")
		default:
			return p
		}
	}
}

// copyTree deep-copies a decoded node so unresolved $ref nodes in the output
// never alias the input.
func copyTree(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = copyTree(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = copyTree(item)
		}
		return out
	default:
		return v
	}
}
