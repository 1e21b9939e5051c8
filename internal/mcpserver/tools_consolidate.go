package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/specfuse/specfuse/consolidator"
)

type mergedFieldInput struct {
	Name         string   `json:"name"                    jsonschema:"Field name"`
	Enabled      *bool    `json:"enabled,omitempty"       jsonschema:"Include the field (default true)"`
	Required     bool     `json:"required,omitempty"      jsonschema:"Mark the field required"`
	Description  string   `json:"description,omitempty"   jsonschema:"Field description"`
	DefaultValue any      `json:"default_value,omitempty" jsonschema:"Default value"`
	Source       string   `json:"source,omitempty"        jsonschema:"Contributing document title"`
	Sources      []string `json:"sources,omitempty"       jsonschema:"Contributing document titles when the field merges several"`
}

func toMergedFields(inputs []mergedFieldInput) []*consolidator.MergedField {
	if len(inputs) == 0 {
		return nil
	}
	fields := make([]*consolidator.MergedField, len(inputs))
	for i, in := range inputs {
		fields[i] = &consolidator.MergedField{
			Name:         in.Name,
			Enabled:      in.Enabled,
			Required:     in.Required,
			Description:  in.Description,
			DefaultValue: in.DefaultValue,
			Source:       in.Source,
			Sources:      in.Sources,
		}
	}
	return fields
}

type consolidateInput struct {
	Documents         []docInput         `json:"documents"                       jsonschema:"Documents the endpoint references resolve against"`
	Endpoint1         string             `json:"endpoint1"                       jsonschema:"First source endpoint as docIndex:METHOD:/path"`
	Endpoint2         string             `json:"endpoint2"                       jsonschema:"Second source endpoint as docIndex:METHOD:/path"`
	Path              string             `json:"path"                            jsonschema:"Path of the consolidated operation"`
	Method            string             `json:"method"                          jsonschema:"HTTP method of the consolidated operation"`
	Parallel          bool               `json:"parallel,omitempty"              jsonschema:"Declare that the source calls may run concurrently"`
	AddSourceTracking bool               `json:"add_source_tracking,omitempty"   jsonschema:"Rename colliding body properties by source instead of overwriting"`
	MergedHeaders     []mergedFieldInput `json:"merged_headers,omitempty"        jsonschema:"User-edited header fields; any merged list switches off auto-merge"`
	MergedQueryParams []mergedFieldInput `json:"merged_query_params,omitempty"   jsonschema:"User-edited query fields"`
	MergedPathParams  []mergedFieldInput `json:"merged_path_params,omitempty"    jsonschema:"User-edited path fields"`
	MergedBodyFields  []mergedFieldInput `json:"merged_body_fields,omitempty"    jsonschema:"User-edited request body fields"`
	MergedRespFields  []mergedFieldInput `json:"merged_response_fields,omitempty" jsonschema:"User-edited response fields"`
	CO2               bool               `json:"co2,omitempty"                   jsonschema:"Attach a CO2 impact estimate"`
}

type co2Output struct {
	Endpoint1    float64 `json:"endpoint1"`
	Endpoint2    float64 `json:"endpoint2"`
	Consolidated float64 `json:"consolidated"`
	Unit         string  `json:"unit"`
}

type consolidateOutput struct {
	OperationID    string     `json:"operation_id"`
	ParameterCount int        `json:"parameter_count"`
	HasRequestBody bool       `json:"has_request_body"`
	CO2            *co2Output `json:"co2,omitempty"`
	Operation      string     `json:"operation"`
	Summary        string     `json:"summary"`
}

func handleConsolidate(_ context.Context, _ *mcp.CallToolRequest, input consolidateInput) (*mcp.CallToolResult, consolidateOutput, error) {
	if cfg.CO2Enabled {
		input.CO2 = true
	}
	if input.Method == "" || input.Path == "" {
		return errResult(fmt.Errorf("method and path must be provided")), consolidateOutput{}, nil
	}

	docs, err := resolveAll(input.Documents)
	if err != nil {
		return errResult(err), consolidateOutput{}, nil
	}

	rule, err := (ruleInput{
		Endpoint1:         input.Endpoint1,
		Endpoint2:         input.Endpoint2,
		Path:              input.Path,
		Method:            input.Method,
		Parallel:          input.Parallel,
		AddSourceTracking: input.AddSourceTracking,
	}).toRule()
	if err != nil {
		return errResult(err), consolidateOutput{}, nil
	}
	rule.MergedHeaders = toMergedFields(input.MergedHeaders)
	rule.MergedQueryParams = toMergedFields(input.MergedQueryParams)
	rule.MergedPathParams = toMergedFields(input.MergedPathParams)
	rule.MergedRequestBodyFields = toMergedFields(input.MergedBodyFields)
	rule.MergedResponseFields = toMergedFields(input.MergedRespFields)

	op, err := consolidator.ConsolidateRule(docs, rule, input.CO2)
	if err != nil {
		return errResult(err), consolidateOutput{}, nil
	}

	data, err := yaml.Marshal(op)
	if err != nil {
		return errResult(err), consolidateOutput{}, nil
	}

	output := consolidateOutput{
		OperationID:    op.OperationID,
		ParameterCount: len(op.Parameters),
		HasRequestBody: op.RequestBody != nil,
		Operation:      string(data),
	}
	if impact, ok := op.Extra["x-co2-impact"].(map[string]any); ok {
		output.CO2 = &co2Output{Unit: "g"}
		if v, ok := impact["endpoint1"].(float64); ok {
			output.CO2.Endpoint1 = v
		}
		if v, ok := impact["endpoint2"].(float64); ok {
			output.CO2.Endpoint2 = v
		}
		if v, ok := impact["consolidated"].(float64); ok {
			output.CO2.Consolidated = v
		}
	}

	mode := "auto-merged"
	if rule.UserEdited() {
		mode = "user-edited"
	}
	output.Summary = fmt.Sprintf("Consolidated %s and %s into %s %s (%s) with %s.",
		input.Endpoint1, input.Endpoint2, strings.ToUpper(input.Method), input.Path,
		mode, formatCount(output.ParameterCount, "parameter"))
	return nil, output, nil
}
