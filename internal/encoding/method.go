package encoding

import (
	"fmt"
	"strings"
)

// Method is how a file's raw bytes are obscured before being written.
type Method int

const (
	None Method = iota
	Base64
	Base64Multiline
	Base64URLSafe
	SymmetricEncrypted
	PasswordZipSingle
	PasswordZipMulti
)

var methodNames = [...]string{
	None:               "none",
	Base64:             "base64",
	Base64Multiline:    "base64-multiline",
	Base64URLSafe:      "base64-urlsafe",
	SymmetricEncrypted: "symmetric-encrypted",
	PasswordZipSingle:  "password-zip-single",
	PasswordZipMulti:   "password-zip-multi",
}

// AllMethods returns every method in weight-table column order.
func AllMethods() []Method {
	return []Method{None, Base64, Base64Multiline, Base64URLSafe, SymmetricEncrypted, PasswordZipSingle, PasswordZipMulti}
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts the names produced by String. Underscores are
// treated as dashes.
func ParseMethod(s string) (Method, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return None, fmt.Errorf("unknown encoding method %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// IsProtected reports whether the method needs a password to invert.
func (m Method) IsProtected() bool {
	switch m {
	case SymmetricEncrypted, PasswordZipSingle, PasswordZipMulti:
		return true
	}
	return false
}

// IsArchive reports whether the method produces a zip archive.
func (m Method) IsArchive() bool {
	return m == PasswordZipSingle || m == PasswordZipMulti
}

// Suffix returns the extra file name suffix a writer may append to make the
// method recognisable to the decoder.
func (m Method) Suffix() string {
	switch m {
	case Base64, Base64Multiline, Base64URLSafe:
		return ".b64"
	case SymmetricEncrypted:
		return ".enc"
	case PasswordZipSingle, PasswordZipMulti:
		return ".zip"
	default:
		return ""
	}
}
