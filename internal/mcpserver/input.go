package mcpserver

import (
	"fmt"
	"strings"

	"github.com/specfuse/specfuse/document"
)

// docInput is one inline interface document supplied to a tool. The server
// accepts inline content only; reading files or URLs belongs to the caller.
type docInput struct {
	Content string `json:"content"         jsonschema:"Inline document content (JSON or YAML)"`
	Label   string `json:"label,omitempty" jsonschema:"Fallback title when the document declares none"`
}

// resolve parses and normalizes the inline document.
func (d docInput) resolve() (*document.Document, error) {
	if strings.TrimSpace(d.Content) == "" {
		return nil, fmt.Errorf("content must be provided")
	}
	if int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; set SPECFUSE_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}
	label := d.Label
	if label == "" {
		label = "untitled"
	}
	return document.Parse([]byte(d.Content), label)
}

// resolveAll parses every document in order, bounded by the configured
// document limit.
func resolveAll(inputs []docInput) (document.Set, error) {
	if len(inputs) > cfg.MaxDocuments {
		return nil, fmt.Errorf("too many documents: got %d, maximum is %d; set SPECFUSE_MAX_DOCUMENTS to increase",
			len(inputs), cfg.MaxDocuments)
	}
	docs := make(document.Set, 0, len(inputs))
	for i, in := range inputs {
		doc, err := in.resolve()
		if err != nil {
			return nil, fmt.Errorf("documents[%d]: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
