// Package mergeerrors provides structured error types for specfuse.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - ParseError: YAML/JSON decoding failures and structural issues
//   - ReferenceError: $ref resolution failures and circular references
//   - EmptyInputError: engine calls with zero input documents
//   - EndpointResolutionError: rule/mapping references to missing endpoints
//   - ResourceLimitError: resource exhaustion (depth, size, count limits)
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	resolved, warnings, err := bundler.Resolve(main, "main", siblings)
//	if err != nil {
//	    var refErr *mergeerrors.ReferenceError
//	    if errors.As(err, &refErr) && refErr.IsCircular {
//	        // Handle reference cycle specifically
//	    }
//	}
package mergeerrors
