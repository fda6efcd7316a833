// Package plan describes the files a chaff run will produce.
//
// A plan is an ordered list of FileDescriptor values, one per file, each
// naming the file kind, target size, language tag and file name. Plans are
// built once by the Planner and never mutated afterwards; downstream stages
// (rendering, encoding, linking and writing) only read them.
//
// # Kinds and Categories
//
// Every Kind belongs to one of four categories used when linking files:
//
//   - email: eml
//   - document: pdf, docx, txt
//   - spreadsheet: xlsx, csv
//   - image: jpg, png
//
// # Fill-Drive Mode
//
// With Options.FillDrive set, the planner ignores the random file count and
// instead sizes the plan so it consumes Options.UsableSpace, keeping every
// file within the configured size bounds.
package plan
