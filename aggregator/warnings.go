package aggregator

import "fmt"

// WarningCategory identifies the type of warning.
type WarningCategory string

const (
	// WarnOperationCollision indicates two documents define the same method+path.
	WarnOperationCollision WarningCategory = "operation_collision"
	// WarnResponseOverwritten indicates a response status code was replaced during merge.
	WarnResponseOverwritten WarningCategory = "response_overwritten"
	// WarnResponseKept indicates a colliding response status code was discarded
	// in favor of the first-seen entry.
	WarnResponseKept WarningCategory = "response_kept"
	// WarnSchemaRenamed indicates a schema was renamed due to a type conflict.
	WarnSchemaRenamed WarningCategory = "schema_renamed"
	// WarnSchemaKept indicates a same-type, non-object schema collision resolved
	// by keeping the first definition.
	WarnSchemaKept WarningCategory = "schema_kept"
	// WarnPropertyOverwritten indicates an object property was replaced during
	// schema merge.
	WarnPropertyOverwritten WarningCategory = "property_overwritten"
	// WarnRuleSkipped indicates a consolidation rule could not be applied.
	WarnRuleSkipped WarningCategory = "rule_skipped"
)

// Warning is a structured, non-fatal issue encountered during aggregation.
type Warning struct {
	// Category identifies the type of warning.
	Category WarningCategory
	// Path is the document path to the affected element (e.g. "paths./users.get").
	Path string
	// Message is a human-readable description.
	Message string
	// Source is the document title that triggered the warning.
	Source string
}

// String returns the warning message.
func (w *Warning) String() string {
	return w.Message
}

// Warnings is an ordered list of structured warnings.
type Warnings []*Warning

// Strings flattens the warnings into plain messages.
func (ws Warnings) Strings() []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}

func newOperationCollisionWarning(key, firstSource, secondSource string) *Warning {
	return &Warning{
		Category: WarnOperationCollision,
		Path:     "paths." + key,
		Message:  fmt.Sprintf("operation '%s' merged: %s + %s", key, firstSource, secondSource),
		Source:   secondSource,
	}
}

func newResponseWarning(category WarningCategory, key, code, firstSource, secondSource string) *Warning {
	verb := "overwritten"
	if category == WarnResponseKept {
		verb = "kept from first document"
	}
	return &Warning{
		Category: category,
		Path:     fmt.Sprintf("paths.%s.responses.%s", key, code),
		Message:  fmt.Sprintf("response '%s' on '%s' %s: %s -> %s", code, key, verb, firstSource, secondSource),
		Source:   secondSource,
	}
}

func newSchemaRenamedWarning(name, newName, source string) *Warning {
	return &Warning{
		Category: WarnSchemaRenamed,
		Path:     "components.schemas." + name,
		Message:  fmt.Sprintf("schema '%s' from %s renamed to '%s' (type conflict)", name, source, newName),
		Source:   source,
	}
}

func newSchemaKeptWarning(name, source string) *Warning {
	return &Warning{
		Category: WarnSchemaKept,
		Path:     "components.schemas." + name,
		Message:  fmt.Sprintf("schema '%s' kept from first definition (collision with %s)", name, source),
		Source:   source,
	}
}

func newPropertyOverwrittenWarning(schemaName, property, source string) *Warning {
	return &Warning{
		Category: WarnPropertyOverwritten,
		Path:     fmt.Sprintf("components.schemas.%s.properties.%s", schemaName, property),
		Message:  fmt.Sprintf("property '%s' of schema '%s' overwritten by %s", property, schemaName, source),
		Source:   source,
	}
}

func newRuleSkippedWarning(ruleID, reason string) *Warning {
	return &Warning{
		Category: WarnRuleSkipped,
		Path:     "x-consolidation",
		Message:  fmt.Sprintf("consolidation rule %s skipped: %s", ruleID, reason),
	}
}
