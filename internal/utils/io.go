package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoPipedInput is returned when stdin is a terminal rather than a pipe
// or redirected file.
var ErrNoPipedInput = errors.New("no data provided on stdin (hint: pipe the encoded file to this command)")

// ReadStdin reads piped content from stdin.
func ReadStdin() ([]byte, error) {
	return ReadPiped(os.Stdin)
}

// ReadPiped reads all of f, refusing character devices so a command never
// blocks waiting on an interactive terminal.
func ReadPiped(f *os.File) ([]byte, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", f.Name(), err)
	}
	if stat.Mode()&os.ModeCharDevice != 0 {
		return nil, ErrNoPipedInput
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", f.Name())
	}
	return data, nil
}
