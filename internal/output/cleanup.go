package output

import (
	"context"
	"errors"
	"os"
	"time"
)

// CleanResult reports what Clean did with each manifest entry.
type CleanResult struct {
	Removed  []string
	Modified []string
	Missing  []string
	Failed   map[string]error
}

// Clean deletes the files listed in m. A file whose digest no longer
// matches is left in place and reported as modified.
func Clean(ctx context.Context, m *Manifest) (*CleanResult, error) {
	result := &CleanResult{Failed: map[string]error{}}
	for _, e := range m.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		digest, err := DigestFile(e.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			result.Missing = append(result.Missing, e.Path)
			continue
		case err != nil:
			result.Failed[e.Path] = err
			continue
		case digest != e.Digest:
			result.Modified = append(result.Modified, e.Path)
			continue
		}

		if err := os.Remove(e.Path); err != nil {
			result.Failed[e.Path] = err
			continue
		}
		result.Removed = append(result.Removed, e.Path)
	}

	// Only succeeds when nothing else was left in the directory.
	if m.TargetDir != "" {
		_ = os.Remove(m.TargetDir)
	}
	return result, nil
}

// CleanAfter waits for delay, then runs Clean. It returns early if ctx is
// cancelled while waiting.
func CleanAfter(ctx context.Context, m *Manifest, delay time.Duration) (*CleanResult, error) {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return Clean(ctx, m)
}
