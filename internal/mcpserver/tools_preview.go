package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/specfuse/specfuse/combiner"
	"github.com/specfuse/specfuse/document"
)

type previewInput struct {
	Documents     []docInput                     `json:"documents"                jsonschema:"Documents the endpoint references resolve against"`
	Endpoints     []string                       `json:"endpoints"                jsonschema:"Source endpoints as docIndex:METHOD:/path; unresolvable entries are skipped"`
	Name          string                         `json:"name,omitempty"           jsonschema:"Display name of the combined operation"`
	Method        string                         `json:"method,omitempty"         jsonschema:"HTTP method of the combined operation; with path, renders a spliceable path item"`
	Path          string                         `json:"path,omitempty"           jsonschema:"Path of the combined operation"`
	MergeStrategy string                         `json:"merge_strategy,omitempty" jsonschema:"Response combination strategy: combine, wrap, or first"`
	Parallel      bool                           `json:"parallel,omitempty"       jsonschema:"Declare that the source calls may run concurrently"`
	FieldConfig   map[string]*combiner.FieldRule `json:"field_config,omitempty"   jsonschema:"Field-level overrides keyed kind:fieldName"`
}

type previewOutput struct {
	SourceCount        int    `json:"source_count"`
	HeaderCount        int    `json:"header_count"`
	QueryParamCount    int    `json:"query_param_count"`
	PathParamCount     int    `json:"path_param_count"`
	PayloadFieldCount  int    `json:"payload_field_count"`
	ResponseFieldCount int    `json:"response_field_count"`
	View               string `json:"view"`
	PathItem           string `json:"path_item,omitempty"`
	Summary            string `json:"summary"`
}

func handlePreview(_ context.Context, _ *mcp.CallToolRequest, input previewInput) (*mcp.CallToolResult, previewOutput, error) {
	docs, err := resolveAll(input.Documents)
	if err != nil {
		return errResult(err), previewOutput{}, nil
	}

	refs := make([]document.EndpointRef, 0, len(input.Endpoints))
	for i, s := range input.Endpoints {
		if strings.TrimSpace(s) == "" {
			continue
		}
		ref, err := document.ParseEndpointRef(s)
		if err != nil {
			return errResult(fmt.Errorf("endpoints[%d]: %w", i, err)), previewOutput{}, nil
		}
		refs = append(refs, ref)
	}

	strategy := combiner.StrategyCombine
	switch input.MergeStrategy {
	case "", "combine":
	case "wrap":
		strategy = combiner.StrategyWrap
	case "first":
		strategy = combiner.StrategyFirst
	default:
		return errResult(fmt.Errorf("invalid merge_strategy: %q; valid values: combine, wrap, first", input.MergeStrategy)), previewOutput{}, nil
	}

	view := combiner.BuildView(refs, docs, input.FieldConfig)

	viewData, err := yaml.Marshal(view)
	if err != nil {
		return errResult(err), previewOutput{}, nil
	}

	output := previewOutput{
		SourceCount:        view.SourceCount,
		HeaderCount:        len(view.Headers),
		QueryParamCount:    len(view.QueryParams),
		PathParamCount:     len(view.PathParams),
		PayloadFieldCount:  len(view.Payload),
		ResponseFieldCount: len(view.Responses),
		View:               string(viewData),
	}

	if input.Method != "" && input.Path != "" {
		m := combiner.NewMapping(input.Name, input.Method, input.Path, refs...)
		m.MergeStrategy = strategy
		m.Parallel = input.Parallel
		m.FieldConfig = input.FieldConfig
		item := combiner.BuildPathItem(view, m, m.ResolveSources(docs))
		itemData, err := yaml.Marshal(item)
		if err != nil {
			return errResult(err), previewOutput{}, nil
		}
		output.PathItem = string(itemData)
	}

	output.Summary = fmt.Sprintf("Combined view over %s: %s, %d payload fields, %d response fields.",
		formatCount(view.SourceCount, "source"),
		formatCount(output.HeaderCount+output.QueryParamCount+output.PathParamCount, "parameter"),
		output.PayloadFieldCount, output.ResponseFieldCount)
	return nil, output, nil
}
