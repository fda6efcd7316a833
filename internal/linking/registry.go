package linking

import (
	"sort"
	"sync"
)

// PasswordEntry pairs a protected file with its password.
type PasswordEntry struct {
	Name     string
	Password string
}

// PasswordRegistry records the password of every protected file in a run.
// It is safe for concurrent use.
type PasswordRegistry struct {
	mu        sync.RWMutex
	passwords map[string]string
}

// NewPasswordRegistry returns an empty registry.
func NewPasswordRegistry() *PasswordRegistry {
	return &PasswordRegistry{passwords: make(map[string]string)}
}

// Set records password for name, replacing any earlier value.
func (r *PasswordRegistry) Set(name, password string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwords[name] = password
}

// Get returns the password for name.
func (r *PasswordRegistry) Get(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pw, ok := r.passwords[name]
	return pw, ok
}

// Len returns the number of protected files.
func (r *PasswordRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.passwords)
}

// Entries returns every entry sorted by file name.
func (r *PasswordRegistry) Entries() []PasswordEntry {
	r.mu.RLock()
	entries := make([]PasswordEntry, 0, len(r.passwords))
	for name, pw := range r.passwords {
		entries = append(entries, PasswordEntry{Name: name, Password: pw})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
