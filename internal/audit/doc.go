// Package audit keeps a local record of chaff runs.
//
// Every generate, clean and decode invocation appends one line to a JSON
// Lines file in the user config directory:
//
//	<UserConfigDir>/chaff/audit.jsonl
//
// Each entry carries a run ID (a random UUID, also used to name the run's
// manifest), a UTC timestamp with microseconds, the local user, the
// operation name and operation-specific counts.
//
// # Usage
//
//	entry := audit.NewEntry("generate")
//	entry.FilesCount = len(result.Written)
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. A run never fails because its audit line
// could not be written. ParseEntries skips malformed lines left by partial
// writes.
package audit
