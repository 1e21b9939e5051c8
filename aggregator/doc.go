// Package aggregator merges N normalized documents into one unified document.
//
// Operations are merged by method+path key, schemas by name with a
// rename-on-type-conflict policy, and header parameters are unioned into
// reusable components. Supplied consolidation rules are applied last and
// their synthetic operations spliced into the unified paths.
//
// The only fatal condition is an empty input document list. Everything else
// degrades to structured warnings: response-code overwrites, schema renames,
// property overwrites, and skipped consolidation rules are all reported on
// the Result and never abort the aggregation.
package aggregator
