// Package workflows provides high-level orchestration for chaff commands.
//
// Workflows coordinate the core packages (plan, render, linking, output)
// with configuration and the audit log to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// # Available Workflows
//
//   - Generate: plan, render, encode and link files, write them to the
//     target directory, backdate them and record a manifest
//   - Decode: detect and reverse the encoding of one file, finding its
//     password in the recorded manifests when none is given
//   - Clean: delete the files of a recorded run whose content is unchanged
//
// A Generate with DryRun set stops after planning and is what the plan
// command shows.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Generate(ctx, opts)
//	if errors.Is(err, cerrors.ErrInsufficientSpace) {
//	    // Suggest lowering min_file_count or freeing space
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancellation is checked between files and between phases.
package workflows
