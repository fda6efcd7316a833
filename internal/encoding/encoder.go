package encoding

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"slices"
	"strings"

	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/secrets"
)

const (
	lineWidth = 64

	singleEntryName   = "data.bin"
	documentEntryName = "document.dat"
	metadataEntryName = "metadata.txt"
	checksumEntryName = "checksum.md5"

	// splitThreshold is the size above which multi-entry archives split
	// content across two entries.
	splitThreshold = 100

	decoyChecksum = "d41d8cd98f00b204e9800998ecf8427e"
)

// Result is the outcome of encoding one file. Password and Salt are set
// only for protected methods.
type Result struct {
	Content  []byte
	Password string
	Salt     []byte
}

// Encoder applies encoding methods, generating passwords when none is given.
type Encoder struct {
	passwords *secrets.PasswordGenerator
	language  string
}

// NewEncoder returns an encoder that draws generated passwords from gen,
// flavoured for language.
func NewEncoder(gen *secrets.PasswordGenerator, language string) *Encoder {
	return &Encoder{passwords: gen, language: language}
}

// Encode transforms raw with method. An empty password is replaced with a
// generated one for protected methods. Cipher or archive failures are
// returned wrapped in ErrEncodeFailed; the encoder never falls back to None.
func (e *Encoder) Encode(raw []byte, method Method, password string) (*Result, error) {
	switch method {
	case None:
		return &Result{Content: slices.Clone(raw)}, nil

	case Base64:
		return &Result{Content: []byte(base64.StdEncoding.EncodeToString(raw))}, nil

	case Base64Multiline:
		return &Result{Content: wrapLines(base64.StdEncoding.EncodeToString(raw), lineWidth)}, nil

	case Base64URLSafe:
		return &Result{Content: []byte(base64.URLEncoding.EncodeToString(raw))}, nil

	case SymmetricEncrypted:
		if password == "" {
			password = e.passwords.Medium(e.language)
		}
		sealed, salt, err := secrets.SealWithPassword(raw, password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrEncodeFailed, method, err)
		}
		return &Result{Content: sealed, Password: password, Salt: salt}, nil

	case PasswordZipSingle:
		if password == "" {
			password = e.passwords.Medium(e.language)
		}
		archive, err := secrets.WriteEncryptedArchive([]secrets.ArchiveEntry{
			{Name: singleEntryName, Data: raw},
		}, password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrEncodeFailed, method, err)
		}
		return &Result{Content: archive, Password: password}, nil

	case PasswordZipMulti:
		if password == "" {
			generated, err := secrets.StrongPassword()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrEncodeFailed, method, err)
			}
			password = generated
		}
		archive, err := secrets.WriteEncryptedArchive(splitEntries(raw), password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrEncodeFailed, method, err)
		}
		return &Result{Content: archive, Password: password}, nil

	default:
		return nil, fmt.Errorf("%w: %d", cerrors.ErrUnknownMethod, int(method))
	}
}

func splitEntries(raw []byte) []secrets.ArchiveEntry {
	entries := make([]secrets.ArchiveEntry, 0, 3)
	if len(raw) > splitThreshold {
		half := len(raw) / 2
		entries = append(entries,
			secrets.ArchiveEntry{Name: documentEntryName, Data: raw[:half]},
			secrets.ArchiveEntry{Name: metadataEntryName, Data: raw[half:]},
		)
	} else {
		entries = append(entries, secrets.ArchiveEntry{Name: documentEntryName, Data: raw})
	}
	return append(entries, secrets.ArchiveEntry{Name: checksumEntryName, Data: []byte(decoyChecksum)})
}

func wrapLines(s string, width int) []byte {
	var b bytes.Buffer
	b.Grow(len(s) + len(s)/width)
	for i := 0; i < len(s); i += width {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s[i:min(i+width, len(s))])
	}
	return b.Bytes()
}

// Decode inverts Encode given the method and, for protected methods, the
// password recorded at encoding time.
func Decode(content []byte, method Method, password string) ([]byte, error) {
	switch method {
	case None:
		return slices.Clone(content), nil

	case Base64, Base64Multiline:
		out, err := base64.StdEncoding.DecodeString(stripWhitespace(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrDecodeFailed, method, err)
		}
		return out, nil

	case Base64URLSafe:
		out, err := base64.URLEncoding.DecodeString(stripWhitespace(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrDecodeFailed, method, err)
		}
		return out, nil

	case SymmetricEncrypted:
		if password == "" {
			return nil, cerrors.ErrPasswordRequired
		}
		out, err := secrets.OpenWithPassword(content, password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrDecodeFailed, method, err)
		}
		return out, nil

	case PasswordZipSingle, PasswordZipMulti:
		if password == "" {
			return nil, cerrors.ErrPasswordRequired
		}
		if !secrets.IsArchive(content) {
			return nil, fmt.Errorf("%w: missing zip header", cerrors.ErrInvalidArchive)
		}
		entries, err := secrets.ReadEncryptedArchive(content, password)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrDecodeFailed, method, err)
		}
		var out bytes.Buffer
		for _, entry := range entries {
			if entry.Name == checksumEntryName {
				continue
			}
			out.Write(entry.Data)
		}
		return out.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %d", cerrors.ErrUnknownMethod, int(method))
	}
}

func stripWhitespace(content []byte) string {
	return strings.Join(strings.Fields(string(content)), "")
}
