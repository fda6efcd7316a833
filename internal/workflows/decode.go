package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/audit"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/configs"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	cerrors "github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/errors"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/output"
)

// PasswordSource records where a decode password came from.
type PasswordSource string

const (
	PasswordNone     PasswordSource = ""
	PasswordGiven    PasswordSource = "given"
	PasswordManifest PasswordSource = "manifest"
)

// DecodeOptions configures the decode workflow.
type DecodeOptions struct {
	// Path is the encoded file to read.
	Path string

	// Content is decoded instead of reading Path when non-nil. Path is then
	// only used for method detection and naming.
	Content []byte

	// Method forces a decoding method. Nil uses the recorded method, or
	// detects it from the name and content.
	Method *encoding.Method

	// Password unlocks symmetric and zip methods. Empty looks the file up in
	// the run manifests.
	Password string

	// OutputPath receives the decoded bytes. Empty leaves writing to the caller.
	OutputPath string

	// ManifestDir is searched for passwords. Empty uses the user data directory.
	ManifestDir string
}

// DecodeResult contains the outcome of a decode operation.
type DecodeResult struct {
	// Path is the file that was decoded.
	Path string

	// Method is the method that was inverted.
	Method encoding.Method

	// Content is the recovered original content.
	Content []byte

	// SuggestedName is the file name with encoding suffixes removed.
	SuggestedName string

	// OutputPath is set when the content was written to disk.
	OutputPath string

	// PasswordSource tells whether a password was given or found.
	PasswordSource PasswordSource
}

// Decode reverses the encoding applied to one chaff file.
//
// Returns ErrFileNotFound if Path does not exist, ErrPasswordRequired when
// a protected method has no password and none is recorded, and
// ErrDecodeFailed when the content cannot be inverted.
func Decode(ctx context.Context, opts DecodeOptions) (*DecodeResult, error) {
	data := opts.Content
	if data == nil {
		var err error
		data, err = os.ReadFile(opts.Path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", cerrors.ErrFileNotFound, opts.Path)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", opts.Path, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &DecodeResult{
		Path:          opts.Path,
		SuggestedName: encoding.OriginalName(filepath.Base(opts.Path)),
	}
	// A recorded run knows the method even when the name carries no suffix.
	var (
		recorded output.ManifestEntry
		known    bool
	)
	if opts.Content == nil {
		recorded, known = lookupEntry(opts.ManifestDir, opts.Path)
	}
	switch {
	case opts.Method != nil:
		result.Method = *opts.Method
	case known:
		result.Method = recorded.Method
	default:
		result.Method = encoding.DetectMethod(opts.Path, data)
	}

	password := opts.Password
	if password != "" {
		result.PasswordSource = PasswordGiven
	} else if result.Method.IsProtected() && known && recorded.Password != "" {
		password = recorded.Password
		result.PasswordSource = PasswordManifest
	}

	content, err := encoding.Decode(data, result.Method, password)
	if err != nil {
		return nil, err
	}
	result.Content = content

	if opts.OutputPath != "" {
		if err := os.WriteFile(opts.OutputPath, content, 0644); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cerrors.ErrWriteFailed, opts.OutputPath, err)
		}
		result.OutputPath = opts.OutputPath
	}

	entry := audit.NewEntry("decode")
	entry.Files = []string{opts.Path}
	entry.Method = result.Method.String()
	audit.Log(entry)

	return result, nil
}

// lookupEntry searches recorded runs, newest first, for path. Only an
// entry whose digest still matches the file is trusted.
func lookupEntry(dir, path string) (output.ManifestEntry, bool) {
	if dir == "" {
		dir = configs.UserChaffSettings.ManifestsPath
	}
	manifests, err := output.ListManifests(dir)
	if err != nil {
		return output.ManifestEntry{}, false
	}
	digest, err := output.DigestFile(path)
	if err != nil {
		return output.ManifestEntry{}, false
	}
	for _, m := range manifests {
		if e, ok := m.Lookup(path); ok && e.Digest == digest {
			return e, true
		}
	}
	return output.ManifestEntry{}, false
}
