// Package consolidator synthesizes one operation out of exactly two existing
// operations (2-to-1 consolidation).
//
// A consolidation Rule either carries user-edited merged-field lists, in
// which case the synthetic operation is rebuilt directly from them, or it is
// empty and the engine auto-merges the two source operations: parameters are
// deduplicated by (in, name) with source provenance tags, request-body
// properties are unioned with a rename-on-collision policy when source
// tracking is enabled, and responses wrap each source's payload in a
// namespaced field.
//
// Both paths produce the same output shape: an operation with parameters, an
// optional request body, responses with fixed 400/500 error entries, and an
// x-consolidation provenance block. An optional CO2 estimate is attached as
// x-co2-impact; it is illustrative pass-through metadata, not a measured
// value.
package consolidator
