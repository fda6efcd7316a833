package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
)

// Manifest records one generation run so its files can be found again.
type Manifest struct {
	RunID     string          `toml:"run_id"`
	Seed      string          `toml:"seed"`
	CreatedAt time.Time       `toml:"created_at"`
	TargetDir string          `toml:"target_directory"`
	Files     []ManifestEntry `toml:"files"`
}

// ManifestEntry describes one written file.
type ManifestEntry struct {
	Name     string          `toml:"name"`
	Path     string          `toml:"path"`
	Kind     plan.Kind       `toml:"kind"`
	Method   encoding.Method `toml:"method"`
	Digest   string          `toml:"blake3"`
	Size     int64           `toml:"size"`
	Password string          `toml:"password,omitempty"`
}

// NewManifest builds a manifest from written files, in write order.
func NewManifest(runID string, seed uint64, targetDir string, written []*WrittenFile) *Manifest {
	m := &Manifest{
		RunID:     runID,
		Seed:      strconv.FormatUint(seed, 10),
		CreatedAt: time.Now().UTC(),
		TargetDir: targetDir,
		Files:     make([]ManifestEntry, 0, len(written)),
	}
	for _, w := range written {
		m.Files = append(m.Files, ManifestEntry{
			Name:     w.Name,
			Path:     w.Path,
			Kind:     w.File.Kind(),
			Method:   w.File.Method,
			Digest:   w.Digest,
			Size:     w.Size,
			Password: w.File.Password,
		})
	}
	return m
}

// SeedValue parses the recorded seed.
func (m *Manifest) SeedValue() (uint64, error) {
	return strconv.ParseUint(m.Seed, 10, 64)
}

// Lookup finds an entry by its on-disk path or planned name.
func (m *Manifest) Lookup(pathOrName string) (ManifestEntry, bool) {
	abs, _ := filepath.Abs(pathOrName)
	for _, e := range m.Files {
		if e.Path == pathOrName || e.Path == abs || e.Name == pathOrName || filepath.Base(e.Path) == pathOrName {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// ManifestPath is where the manifest for runID lives inside dir.
func ManifestPath(dir, runID string) string {
	return filepath.Join(dir, runID+".toml")
}

// SaveManifest writes m to path, creating parent directories.
func SaveManifest(path string, m *Manifest) error {
	if err := configs.SaveTOML(path, m); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest. Returns ErrManifestNotFound if path does not exist.
func LoadManifest(path string) (*Manifest, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", cerrors.ErrManifestNotFound, path)
	}
	m := &Manifest{}
	if _, err := configs.LoadTOML(path, m); err != nil {
		return nil, fmt.Errorf("failed to load manifest %s: %w", path, err)
	}
	return m, nil
}

// ListManifests returns every manifest in dir, newest first.
func ListManifests(dir string) ([]*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var manifests []*Manifest
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		m, err := LoadManifest(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].CreatedAt.After(manifests[j].CreatedAt)
	})
	return manifests, nil
}

// LatestManifest returns the newest manifest in dir.
func LatestManifest(dir string) (*Manifest, error) {
	manifests, err := ListManifests(dir)
	if err != nil {
		return nil, err
	}
	if len(manifests) == 0 {
		return nil, fmt.Errorf("%w: no runs recorded in %s", cerrors.ErrManifestNotFound, dir)
	}
	return manifests[0], nil
}
