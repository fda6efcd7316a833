package encoding

import (
	"bytes"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/secrets"
)

// DetectMethod guesses how a file on disk was encoded from its name and
// leading bytes. It returns None when nothing matches.
func DetectMethod(name string, content []byte) Method {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".b64":
		return detectBase64Variant(content)
	case ".enc":
		return SymmetricEncrypted
	case ".zip":
		return detectArchiveVariant(content)
	}

	if secrets.IsArchive(content) && !nativeOfficeDocument(content) {
		return detectArchiveVariant(content)
	}
	return None
}

// OriginalName strips the decoder suffix added by the writer, if any.
func OriginalName(name string) string {
	for _, suffix := range []string{".b64", ".enc", ".zip", ".dat"} {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

func detectBase64Variant(content []byte) Method {
	if bytes.ContainsAny(content, "-_") {
		return Base64URLSafe
	}
	if bytes.Contains(bytes.TrimSpace(content), []byte("\n")) {
		return Base64Multiline
	}
	return Base64
}

func detectArchiveVariant(content []byte) Method {
	if bytes.Contains(content, []byte(checksumEntryName)) {
		return PasswordZipMulti
	}
	return PasswordZipSingle
}

// nativeOfficeDocument reports whether a zip is an unencoded OOXML package.
func nativeOfficeDocument(content []byte) bool {
	return bytes.Contains(content, []byte("[Content_Types].xml"))
}

// LooksLikeBase64 reports whether content decodes as standard or URL-safe
// base64 once whitespace is removed.
func LooksLikeBase64(content []byte) bool {
	s := stripWhitespace(content)
	if s == "" || len(s)%4 != 0 {
		return false
	}
	if _, err := base64.StdEncoding.DecodeString(s); err == nil {
		return true
	}
	_, err := base64.URLEncoding.DecodeString(s)
	return err == nil
}
