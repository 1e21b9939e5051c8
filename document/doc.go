// Package document defines the normalized in-memory shape of an API interface
// document and the decode boundary that produces it.
//
// A Document is the unit every engine package operates on: a flat view of one
// OpenAPI-style source with its operations and named schemas extracted. The
// raw tree is preserved alongside so the bundler can resolve $ref pointers
// against it.
//
// Documents are loaded once by the caller and held in a Set. Engine functions
// receive the Set by value on every call and never retain it, so caller edits
// are visible on the next rebuild. Merge functions return new values; a
// Document extracted from a source is never mutated in place.
package document
