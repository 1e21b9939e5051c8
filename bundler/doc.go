// Package bundler inlines $ref pointers across a set of sibling documents,
// producing a fully self-contained document ("bundling").
//
// Two reference forms are resolved:
//
//   - "#/components/schemas/User": a fragment navigated against the current
//     document.
//   - "./billing.yaml#/components/schemas/Invoice" (or "../"): the relative
//     prefix is stripped to obtain a sibling document id; the fragment is
//     navigated against that sibling and the extracted subtree is itself
//     resolved with the sibling as the current document.
//
// Any other form is left untouched. A missing sibling or fragment degrades to
// a warning with the original $ref preserved; bundling never fails on an
// unresolvable reference. Reference cycles, however, fail fast with a
// circular ReferenceError, and resolution depth is bounded by
// MaxResolveDepth.
//
// Inputs are never mutated: resolution builds a new tree.
package bundler
