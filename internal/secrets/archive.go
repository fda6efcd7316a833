package secrets

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yeka/zip"
)

// ArchiveEntry is one member of a password-protected archive.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// WriteEncryptedArchive builds a zip whose entries are deflated and then
// encrypted with WinZip AES-256 under password.
func WriteEncryptedArchive(entries []ArchiveEntry, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("empty archive password")
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, entry := range entries {
		fw, err := w.Encrypt(entry.Name, password, zip.AES256Encryption)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", entry.Name, err)
		}
		if _, err := fw.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", entry.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadEncryptedArchive opens every entry of an archive with password, in
// archive order.
func ReadEncryptedArchive(data []byte, password string) ([]ArchiveEntry, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	entries := make([]ArchiveEntry, 0, len(r.File))
	for _, f := range r.File {
		if f.IsEncrypted() {
			f.SetPassword(password)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		entries = append(entries, ArchiveEntry{Name: f.Name, Data: content})
	}
	return entries, nil
}

// IsArchive reports whether data starts with the zip local file header magic.
func IsArchive(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], []byte("PK\x03\x04"))
}
