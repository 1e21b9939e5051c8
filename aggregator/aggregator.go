package aggregator

import (
	"fmt"
	"log/slog"

	"go.yaml.in/yaml/v4"

	"github.com/specfuse/specfuse/consolidator"
	"github.com/specfuse/specfuse/document"
	"github.com/specfuse/specfuse/mergeerrors"
)

// aggregatorLogger is used for merge warnings. Tests can replace this with a
// discard logger to suppress expected warnings.
var aggregatorLogger = slog.Default()

// defaultTitle is used when Options.Name is empty.
const defaultTitle = "Aggregated API"

// Options configures one Aggregate call.
type Options struct {
	// Name becomes the unified document's info.title.
	Name string
	// Version becomes the unified document's info.version (default "1.0.0").
	Version string
	// EnableTracking tags merged operations with x-sources provenance.
	EnableTracking bool
	// ResponsePolicy resolves response status-code collisions.
	ResponsePolicy ResponsePolicy
	// ConsolidationRules are applied after the merge; their synthetic
	// operations are spliced into the unified paths.
	ConsolidationRules []*consolidator.Rule
	// CO2Enabled attaches x-co2-impact estimates to consolidated operations.
	CO2Enabled bool
}

// Stats summarizes one aggregation run.
type Stats struct {
	// Documents is the number of input documents.
	Documents int `yaml:"documents" json:"documents"`
	// Operations is the number of operations in the unified document,
	// consolidated operations included.
	Operations int `yaml:"operations" json:"operations"`
	// Schemas is the number of named schemas in the unified components.
	Schemas int `yaml:"schemas" json:"schemas"`
	// Collisions is the number of method+path keys defined by more than one
	// document.
	Collisions int `yaml:"collisions" json:"collisions"`
}

// Result is the outcome of one Aggregate call.
type Result struct {
	// Document is the unified document.
	Document *document.Unified
	// Warnings lists every non-fatal issue encountered, in merge order.
	Warnings Warnings
	// Stats summarizes the run.
	Stats Stats
}

// Aggregate merges docs into one unified document. The input documents are
// never mutated; input order is the only ordering guarantee for collisions.
// The only fatal condition is an empty docs list.
func Aggregate(docs document.Set, opts Options) (*Result, error) {
	if len(docs) == 0 {
		return nil, &mergeerrors.EmptyInputError{Operation: "Aggregate"}
	}

	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}
	title := opts.Name
	if title == "" {
		title = defaultTitle
	}

	mergedFrom := make([]any, len(docs))
	for i, d := range docs {
		mergedFrom[i] = map[string]any{"title": d.Title, "version": d.Version}
	}
	unified := &document.Unified{
		OpenAPI: "3.0.3",
		Info: &document.Info{
			Title:   title,
			Version: version,
			Extra:   map[string]any{"x-merged-from": mergedFrom},
		},
		Components: &document.Components{
			Schemas:    make(map[string]*document.Schema),
			Parameters: make(map[string]*document.Parameter),
		},
	}

	seenURL := make(map[string]bool)
	for _, d := range docs {
		if d.BaseURL == "" || seenURL[d.BaseURL] {
			continue
		}
		seenURL[d.BaseURL] = true
		unified.Servers = append(unified.Servers, &document.Server{
			URL:         d.BaseURL,
			Description: d.Title,
		})
	}

	result := &Result{Document: unified}
	merged := make(map[string]*document.Operation)
	for _, d := range docs {
		for _, op := range d.Operations {
			key := op.Key()
			existing, collides := merged[key]
			if !collides {
				merged[key] = op.Clone()
				continue
			}
			result.Stats.Collisions++
			result.Warnings = append(result.Warnings,
				newOperationCollisionWarning(key, existing.SourceAPI, op.SourceAPI))
			combined, warnings := MergeOperations(existing, op, opts.ResponsePolicy)
			if opts.EnableTracking {
				combined.Extra = mergeSources(combined.Extra, existing.SourceAPI, op.SourceAPI)
			}
			merged[key] = combined
			result.Warnings = append(result.Warnings, warnings...)
		}
		for _, def := range d.Schemas {
			result.Warnings = append(result.Warnings,
				MergeSchemaDefs(unified.Components.Schemas, def, d.Title)...)
		}
	}
	for _, op := range merged {
		unified.AddOperation(op)
	}

	unionHeaderParameters(docs, unified.Components)

	for _, rule := range opts.ConsolidationRules {
		op, err := consolidator.ConsolidateRule(docs, rule, opts.CO2Enabled)
		if err != nil {
			aggregatorLogger.Warn("aggregator: consolidation rule skipped",
				"rule", rule.ID, "error", err)
			result.Warnings = append(result.Warnings, newRuleSkippedWarning(rule.ID, err.Error()))
			continue
		}
		unified.AddOperation(op)
	}

	result.Stats.Documents = len(docs)
	result.Stats.Schemas = len(unified.Components.Schemas)
	for _, item := range unified.Paths {
		result.Stats.Operations += len(item)
	}
	return result, nil
}

// mergeSources records the contributing document titles of a merged operation
// in its x-sources extension, deduplicated in first-seen order.
func mergeSources(extra map[string]any, sources ...string) map[string]any {
	if extra == nil {
		extra = make(map[string]any)
	}
	existing, _ := extra["x-sources"].([]string)
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	for _, s := range sources {
		if s != "" && !seen[s] {
			seen[s] = true
			existing = append(existing, s)
		}
	}
	extra["x-sources"] = existing
	return extra
}

// unionHeaderParameters collects every header parameter across all documents
// into components.parameters. Identical parameters (full serialized form)
// collapse into one entry; same-name parameters with a different shape get
// numbered suffixes.
func unionHeaderParameters(docs document.Set, components *document.Components) {
	seen := make(map[string]bool)
	for _, d := range docs {
		for _, op := range d.Operations {
			for _, p := range op.Parameters {
				if p.In != document.InHeader {
					continue
				}
				serialized := serializeParameter(p)
				if seen[serialized] {
					continue
				}
				seen[serialized] = true
				name := p.Name
				for i := 2; ; i++ {
					if _, taken := components.Parameters[name]; !taken {
						break
					}
					name = fmt.Sprintf("%s_%d", p.Name, i)
				}
				components.Parameters[name] = p.Clone()
			}
		}
	}
}

// serializeParameter renders a parameter's full shape as the dedup key for
// the header union. YAML map keys are emitted sorted, so equal parameters
// always serialize identically.
func serializeParameter(p *document.Parameter) string {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%s:%s!%v", p.In, p.Name, err)
	}
	return string(data)
}
