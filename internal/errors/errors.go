package errors

import "errors"

// Plan errors indicate problems with the set of files to generate.
var (
	// ErrInvalidDescriptor indicates a file descriptor is missing a name or has an unknown kind.
	ErrInvalidDescriptor = errors.New("invalid file descriptor")

	// ErrDuplicateFileName indicates two descriptors in one plan share a name.
	ErrDuplicateFileName = errors.New("duplicate file name in plan")

	// ErrEmptyPlan indicates the planner produced no files.
	ErrEmptyPlan = errors.New("no files to generate")

	// ErrMissingContent indicates no rendered content was supplied for a planned file.
	ErrMissingContent = errors.New("missing rendered content for file")

	// ErrUnknownKind indicates a file kind has no renderer or is not recognised.
	ErrUnknownKind = errors.New("unknown file kind")
)

// Encoding errors indicate failures while obscuring or recovering file content.
var (
	// ErrUnknownMethod indicates an encoding method name could not be parsed.
	ErrUnknownMethod = errors.New("unknown encoding method")

	// ErrEncodeFailed indicates the cipher or archive layer rejected the input.
	ErrEncodeFailed = errors.New("failed to encode file")

	// ErrDecodeFailed indicates encoded content could not be inverted.
	ErrDecodeFailed = errors.New("failed to decode file")

	// ErrPasswordRequired indicates a password-protected method was decoded without a password.
	ErrPasswordRequired = errors.New("password required")

	// ErrInvalidWeights indicates an encoding weight table row is malformed.
	ErrInvalidWeights = errors.New("invalid encoding weights")

	// ErrInvalidArchive indicates the archive structure is invalid.
	ErrInvalidArchive = errors.New("invalid archive structure")
)

// Linking errors indicate an inconsistent reference graph.
var (
	// ErrInvalidReference indicates an edge is a self loop or names a file outside the plan.
	ErrInvalidReference = errors.New("invalid file reference")
)

// Configuration errors indicate problems with user settings.
var (
	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrInvalidSize indicates a size string such as "0.1MB" could not be parsed.
	ErrInvalidSize = errors.New("invalid size")

	// ErrInsufficientSpace indicates the target volume cannot hold the minimum plan.
	ErrInsufficientSpace = errors.New("not enough usable disk space")
)

// Output errors indicate issues writing or cleaning up generated files.
var (
	// ErrWriteFailed indicates a generated file could not be written.
	ErrWriteFailed = errors.New("failed to write file")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrManifestNotFound indicates no manifest exists for a cleanup request.
	ErrManifestNotFound = errors.New("manifest not found")
)
