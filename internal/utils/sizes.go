package utils

import (
	"fmt"
	"strconv"
	"strings"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
)

var sizeUnits = []struct {
	suffix string
	factor float64
}{
	{"GB", 1024 * 1024 * 1024},
	{"MB", 1024 * 1024},
	{"KB", 1024},
	{"B", 1},
}

// ParseSize converts strings like "0.1MB", "500KB" or "2048" into bytes.
// A missing unit means bytes.
func ParseSize(s string) (uint64, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	if value == "" {
		return 0, fmt.Errorf("%w: empty string", cerrors.ErrInvalidSize)
	}

	factor := 1.0
	for _, unit := range sizeUnits {
		if strings.HasSuffix(value, unit.suffix) {
			factor = unit.factor
			value = strings.TrimSpace(strings.TrimSuffix(value, unit.suffix))
			break
		}
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", cerrors.ErrInvalidSize, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative", cerrors.ErrInvalidSize, s)
	}
	return uint64(n * factor), nil
}

// FormatSize renders a byte count as "12.3 MB".
func FormatSize(bytes uint64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f PB", size)
}
