// Package specfuse provides a merge and consolidation engine for OpenAPI-style
// interface documents.
//
// specfuse ingests one or more normalized API documents and produces a single,
// internally consistent unified document or a derived synthetic endpoint set.
// The engine consists of five packages:
//
//   - document: the normalized in-memory document model and the decode boundary
//   - bundler: cross-document $ref resolution (bundling)
//   - aggregator: full N-document aggregation into one unified document
//   - consolidator: pairwise (2-to-1) synthetic endpoint consolidation
//   - combiner: N-to-1 aggregation views and synthetic path-item construction
//
// All engine functions are pure with respect to their inputs: documents, rules,
// and mappings are owned by the caller and passed into every call; the engine
// never caches or snapshots them, so edits are visible on the next rebuild.
// Calling any merge or view function twice with identical inputs yields
// structurally identical output.
//
// # Quick start
//
// Aggregate two documents into one unified spec:
//
//	docs := document.Set{docA, docB}
//	result, err := aggregator.Aggregate(docs, aggregator.Options{Name: "Unified API"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range result.Warnings {
//	    log.Println(w)
//	}
//
// Build a live-preview view over a set of source endpoints:
//
//	view := combiner.BuildView(refs, docs, nil)
//
// Code emission for target frameworks is out of scope: downstream emitters
// consume the unified document and treat the x-consolidation and x-co2-impact
// extension fields as pass-through metadata.
package specfuse
