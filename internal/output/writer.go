package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/linking"
)

// SuffixPolicy decides whether encoded files keep their planned name.
type SuffixPolicy string

const (
	// SuffixKeep writes every file under its planned name.
	SuffixKeep SuffixPolicy = "keep"

	// SuffixAppend adds the encoding's suffix (.b64, .enc, .zip) to encoded files.
	SuffixAppend SuffixPolicy = "suffix"
)

// ParseSuffixPolicy accepts "keep" or "suffix". An empty string means keep.
func ParseSuffixPolicy(s string) (SuffixPolicy, error) {
	switch SuffixPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SuffixKeep:
		return SuffixKeep, nil
	case SuffixAppend:
		return SuffixAppend, nil
	default:
		return "", fmt.Errorf("%w: unknown suffix policy %q", cerrors.ErrInvalidConfig, s)
	}
}

// WrittenFile records where one encoded file ended up on disk.
type WrittenFile struct {
	Name   string
	Path   string
	File   *linking.EncodedFile
	Digest string
	Size   int64
}

// Writer places encoded files into a target directory.
type Writer struct {
	dir    string
	policy SuffixPolicy
}

// NewWriter returns a writer for dir. dir is created on first write.
func NewWriter(dir string, policy SuffixPolicy) *Writer {
	if policy == "" {
		policy = SuffixKeep
	}
	return &Writer{dir: dir, policy: policy}
}

// Write writes one file, never overwriting an existing one: a clash gets a
// _N suffix before the extension.
func (w *Writer) Write(f *linking.EncodedFile) (*WrittenFile, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", cerrors.ErrWriteFailed, err)
	}

	name := f.Name()
	if w.policy == SuffixAppend {
		name += f.Method.Suffix()
	}

	path, out, err := createUnique(w.dir, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrWriteFailed, name, err)
	}
	if _, err := out.Write(f.Content); err != nil {
		out.Close()
		return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrWriteFailed, path, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrWriteFailed, path, err)
	}

	return &WrittenFile{
		Name:   f.Name(),
		Path:   path,
		File:   f,
		Digest: Digest(f.Content),
		Size:   int64(len(f.Content)),
	}, nil
}

// createUnique opens dir/name exclusively, trying name_1.ext, name_2.ext,
// ... when it already exists.
func createUnique(dir, name string) (string, *os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; ; n++ {
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return path, f, nil
		}
		if !os.IsExist(err) {
			return "", nil, err
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
}
