// Package errors provides typed error values for the chaff generator.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Plan errors: malformed or empty plans (ErrDuplicateFileName, ErrEmptyPlan)
//   - Encoding errors: cipher and archive failures (ErrEncodeFailed, ErrDecodeFailed)
//   - Linking errors: inconsistent reference graphs (ErrInvalidReference)
//   - Configuration errors: bad settings (ErrInvalidConfig, ErrInvalidSize)
//   - Output errors: write and cleanup failures (ErrWriteFailed, ErrManifestNotFound)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s: %v", errors.ErrEncodeFailed, name, err)
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Generate(ctx, opts)
//	if errors.Is(err, cerrors.ErrInsufficientSpace) {
//	    // Show user-friendly message
//	}
package errors
