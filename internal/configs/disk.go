package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
)

// DiskSpace describes the volume holding the target directory.
type DiskSpace struct {
	Free    uint64
	Reserve uint64
	Usable  uint64
}

// UsableDiskSpace reports free space on the volume containing dir, minus
// reserve. dir need not exist yet; the nearest existing parent is measured.
func UsableDiskSpace(dir string, reserve uint64) (DiskSpace, error) {
	path, err := existingParent(dir)
	if err != nil {
		return DiskSpace{}, err
	}

	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return DiskSpace{}, fmt.Errorf("failed to stat filesystem at %s: %w", path, err)
	}
	free := uint64(st.Bavail) * uint64(st.Bsize)

	space := DiskSpace{Free: free, Reserve: reserve}
	if free > reserve {
		space.Usable = free - reserve
	}
	return space, nil
}

// CheckSpace returns ErrInsufficientSpace if the usable space cannot hold
// minCount files of minSize bytes.
func (d DiskSpace) CheckSpace(minCount int, minSize uint64) error {
	needed := uint64(max(minCount, 0)) * minSize
	if d.Usable < needed {
		return fmt.Errorf("%w: usable %d bytes, minimum plan needs %d bytes", cerrors.ErrInsufficientSpace, d.Usable, needed)
	}
	return nil
}

func existingParent(dir string) (string, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", fmt.Errorf("no existing parent for %s", dir)
		}
		path = parent
	}
}
