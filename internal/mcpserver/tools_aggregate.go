package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/specfuse/specfuse/aggregator"
	"github.com/specfuse/specfuse/consolidator"
	"github.com/specfuse/specfuse/document"
)

type ruleInput struct {
	Endpoint1         string `json:"endpoint1"                     jsonschema:"First source endpoint as docIndex:METHOD:/path"`
	Endpoint2         string `json:"endpoint2"                     jsonschema:"Second source endpoint as docIndex:METHOD:/path"`
	Path              string `json:"path"                          jsonschema:"Path of the consolidated operation"`
	Method            string `json:"method"                        jsonschema:"HTTP method of the consolidated operation"`
	Parallel          bool   `json:"parallel,omitempty"            jsonschema:"Declare that the source calls may run concurrently"`
	AddSourceTracking bool   `json:"add_source_tracking,omitempty" jsonschema:"Rename colliding body properties by source instead of overwriting"`
}

func (r ruleInput) toRule() (*consolidator.Rule, error) {
	ref1, err := document.ParseEndpointRef(r.Endpoint1)
	if err != nil {
		return nil, fmt.Errorf("endpoint1: %w", err)
	}
	ref2, err := document.ParseEndpointRef(r.Endpoint2)
	if err != nil {
		return nil, fmt.Errorf("endpoint2: %w", err)
	}
	rule := consolidator.NewRule(ref1, ref2, r.Method, r.Path)
	rule.Rules.ParallelCalls = r.Parallel
	rule.Rules.AddSourceTracking = r.AddSourceTracking
	return rule, nil
}

type aggregateInput struct {
	Documents      []docInput  `json:"documents"                 jsonschema:"Documents to aggregate (minimum 1)"`
	Name           string      `json:"name,omitempty"            jsonschema:"Title of the unified document"`
	EnableTracking bool        `json:"enable_tracking,omitempty" jsonschema:"Tag merged operations with x-sources provenance"`
	ResponsePolicy string      `json:"response_policy,omitempty" jsonschema:"Response collision policy: last-wins or first-wins"`
	Rules          []ruleInput `json:"rules,omitempty"           jsonschema:"Consolidation rules to apply after the merge"`
	CO2            bool        `json:"co2,omitempty"             jsonschema:"Attach CO2 estimates to consolidated operations"`
}

type aggregateWarning struct {
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

type aggregateOutput struct {
	DocumentCount  int                `json:"document_count"`
	OperationCount int                `json:"operation_count"`
	SchemaCount    int                `json:"schema_count"`
	CollisionCount int                `json:"collision_count"`
	WarningCount   int                `json:"warning_count"`
	Warnings       []aggregateWarning `json:"warnings,omitempty"`
	Document       string             `json:"document"`
	Summary        string             `json:"summary"`
}

func handleAggregate(_ context.Context, _ *mcp.CallToolRequest, input aggregateInput) (*mcp.CallToolResult, aggregateOutput, error) {
	// Apply config defaults.
	if input.Name == "" {
		input.Name = cfg.AggregateName
	}
	if input.ResponsePolicy == "" {
		input.ResponsePolicy = cfg.ResponsePolicy
	}
	if cfg.EnableTracking {
		input.EnableTracking = true
	}
	if cfg.CO2Enabled {
		input.CO2 = true
	}

	policy := aggregator.ResponseLastWins
	switch input.ResponsePolicy {
	case "", "last-wins":
	case "first-wins":
		policy = aggregator.ResponseFirstWins
	default:
		return errResult(fmt.Errorf("invalid response_policy: %q; valid values: last-wins, first-wins", input.ResponsePolicy)), aggregateOutput{}, nil
	}

	docs, err := resolveAll(input.Documents)
	if err != nil {
		return errResult(err), aggregateOutput{}, nil
	}

	rules := make([]*consolidator.Rule, 0, len(input.Rules))
	for i, r := range input.Rules {
		rule, err := r.toRule()
		if err != nil {
			return errResult(fmt.Errorf("rules[%d]: %w", i, err)), aggregateOutput{}, nil
		}
		rules = append(rules, rule)
	}

	result, err := aggregator.Aggregate(docs, aggregator.Options{
		Name:               input.Name,
		EnableTracking:     input.EnableTracking,
		ResponsePolicy:     policy,
		ConsolidationRules: rules,
		CO2Enabled:         input.CO2,
	})
	if err != nil {
		return errResult(err), aggregateOutput{}, nil
	}

	data, err := yaml.Marshal(result.Document)
	if err != nil {
		return errResult(err), aggregateOutput{}, nil
	}

	output := aggregateOutput{
		DocumentCount:  result.Stats.Documents,
		OperationCount: result.Stats.Operations,
		SchemaCount:    result.Stats.Schemas,
		CollisionCount: result.Stats.Collisions,
		WarningCount:   len(result.Warnings),
		Document:       string(data),
	}
	for _, w := range result.Warnings {
		output.Warnings = append(output.Warnings, aggregateWarning{
			Category: string(w.Category),
			Path:     w.Path,
			Message:  w.Message,
			Source:   w.Source,
		})
	}
	output.Summary = buildAggregateSummary(output)
	return nil, output, nil
}

func buildAggregateSummary(output aggregateOutput) string {
	summary := "Aggregated " + strconv.Itoa(output.DocumentCount) + " documents into " +
		formatCount(output.OperationCount, "operation") + " and " + formatCount(output.SchemaCount, "schema") + "."
	if output.CollisionCount > 0 {
		summary += " " + formatCount(output.CollisionCount, "collision") + " merged."
	}
	if output.WarningCount > 0 {
		summary += " " + formatCount(output.WarningCount, "warning") + "."
	}
	return summary
}
