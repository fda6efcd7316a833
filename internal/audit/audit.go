package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	RunID     string `json:"run_id"` // Identifies one invocation.
	User      string `json:"user"`   // Local account running the command.
	Host      string `json:"host"`   // Machine the command ran on.
	Operation string `json:"op"`     // generate, clean or decode.

	// Optional fields depending on operation.
	TargetDir      string   `json:"target_dir,omitempty"`      // For generate/clean.
	Seed           string   `json:"seed,omitempty"`            // For generate.
	FilesCount     int      `json:"files_count,omitempty"`     // For generate.
	ProtectedCount int      `json:"protected_count,omitempty"` // For generate.
	ReferenceCount int      `json:"reference_count,omitempty"` // For generate.
	RemovedCount   int      `json:"removed_count,omitempty"`   // For clean.
	SkippedCount   int      `json:"skipped_count,omitempty"`   // For clean.
	Manifest       string   `json:"manifest,omitempty"`        // For generate/clean.
	Files          []string `json:"files,omitempty"`           // For decode.
	Method         string   `json:"method,omitempty"`          // For decode.
	DryRun         bool     `json:"dry_run,omitempty"`
}

// Log appends an entry to the audit log.
// If logging fails, it returns silently.
// Operations should not fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// NewEntry starts an entry for op with a fresh run ID and the current user.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op, RunID: NewRunID()}
	if u, err := utils.GetUsername(); err == nil {
		entry.User = u
	}
	if h, err := utils.GetHostname(); err == nil {
		entry.Host = h
	}
	return entry
}

// NewRunID returns a random identifier for one run.
func NewRunID() string {
	return uuid.New().String()
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	if configs.UserChaffSettings == nil {
		return ""
	}
	return configs.UserChaffSettings.AuditLogPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
