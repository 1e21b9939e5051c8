// Package naming provides shared name sanitization and case conversion
// utilities for specfuse packages.
//
// This internal package contains the string transformations used when merged
// fields, wrapper objects, and renamed schemas are derived from source
// document titles. Functions include Sanitize, SourceSuffix, WrapperField,
// ToCamelCase, and ToPascalCase.
//
// These functions are used for:
//   - Aggregator package: schema rename suffixes on type conflicts
//   - Consolidator package: response wrapper field names per source endpoint
//   - Combiner package: wrapper object names in synthesized path items
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
