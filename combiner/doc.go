// Package combiner builds ephemeral N-to-1 aggregation previews.
//
// BuildView resolves a list of endpoint references against the caller's
// document set and folds the resolved operations into a CombinedView: one
// deduplicated table per parameter location, a payload table for request-body
// properties, and a response-field table. The view is a pure function of
// (refs, docs, fieldConfig) and is rebuilt on every call; nothing is cached.
//
// A reference that no longer resolves, because the document was unloaded or
// the operation disappeared, is skipped silently so a stale mapping still
// previews against whatever sources remain.
//
// BuildPathItem renders a view as a single OpenAPI path-item object ready to
// splice into a caller-supplied document.
package combiner
