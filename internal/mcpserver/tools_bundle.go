package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/specfuse/specfuse/bundler"
)

type siblingInput struct {
	ID      string `json:"id"      jsonschema:"Identifier the main document's relative refs use for this sibling (e.g. common.yaml)"`
	Content string `json:"content" jsonschema:"Inline sibling document content (JSON or YAML)"`
}

type bundleInput struct {
	Content  string         `json:"content"            jsonschema:"Inline main document content (JSON or YAML)"`
	ID       string         `json:"id,omitempty"       jsonschema:"Identifier of the main document (default main)"`
	Siblings []siblingInput `json:"siblings,omitempty" jsonschema:"Sibling documents available for relative ref resolution"`
}

type bundleWarning struct {
	Category string `json:"category"`
	Ref      string `json:"ref"`
	Document string `json:"document"`
	Message  string `json:"message"`
}

type bundleOutput struct {
	WarningCount int             `json:"warning_count"`
	Warnings     []bundleWarning `json:"warnings,omitempty"`
	Document     string          `json:"document"`
	Summary      string          `json:"summary"`
}

func handleBundle(_ context.Context, _ *mcp.CallToolRequest, input bundleInput) (*mcp.CallToolResult, bundleOutput, error) {
	if input.Content == "" {
		return errResult(fmt.Errorf("content must be provided")), bundleOutput{}, nil
	}
	if int64(len(input.Content)) > cfg.MaxInlineSize {
		return errResult(fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes", len(input.Content), cfg.MaxInlineSize)), bundleOutput{}, nil
	}
	mainID := input.ID
	if mainID == "" {
		mainID = "main"
	}

	var main map[string]any
	if err := yaml.Unmarshal([]byte(input.Content), &main); err != nil {
		return errResult(fmt.Errorf("parsing main document: %w", err)), bundleOutput{}, nil
	}

	siblings := make(map[string]map[string]any, len(input.Siblings))
	for i, s := range input.Siblings {
		if s.ID == "" {
			return errResult(fmt.Errorf("siblings[%d]: id must be provided", i)), bundleOutput{}, nil
		}
		var tree map[string]any
		if err := yaml.Unmarshal([]byte(s.Content), &tree); err != nil {
			return errResult(fmt.Errorf("parsing sibling %q: %w", s.ID, err)), bundleOutput{}, nil
		}
		siblings[s.ID] = tree
	}

	resolved, warnings, err := bundler.Resolve(main, mainID, siblings)
	if err != nil {
		return errResult(err), bundleOutput{}, nil
	}

	data, err := yaml.Marshal(resolved)
	if err != nil {
		return errResult(err), bundleOutput{}, nil
	}

	output := bundleOutput{
		WarningCount: len(warnings),
		Document:     string(data),
	}
	for _, w := range warnings {
		output.Warnings = append(output.Warnings, bundleWarning{
			Category: string(w.Category),
			Ref:      w.Ref,
			Document: w.DocumentID,
			Message:  w.Message,
		})
	}
	output.Summary = fmt.Sprintf("Bundled %s against %s with %s.",
		mainID, formatCount(len(siblings), "sibling"), formatCount(len(warnings), "warning"))
	return nil, output, nil
}
