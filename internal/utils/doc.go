// Package utils provides shared helpers used across the chaff packages.
//
// # Randomness
//
// Every random decision in a run draws from a math/rand/v2 PCG generator so
// a seed reproduces the run:
//   - NewRand, DeriveRand: seeded generators and independent children
//   - IntBetween, Chance, Choice, Sample, Shuffle, WeightedIndex
//
// # Sizes
//
//   - ParseSize: parses "0.1MB" style settings
//   - FormatSize: renders byte counts for output
//
// # Strings and Paths
//
//   - FormatPaths: formats file paths for human-readable output
//   - CompactWord, Truncate
//   - ExpandHome: expands a leading "~" in configured directories
//
// # System
//
//   - GetUsername, GetHostname: identify the account for audit entries
//
// # Terminal and I/O
//
//   - IsTerminal, ReadPassword, Confirm: interactive prompts
//   - ReadStdin: reads piped content for decoding
package utils
