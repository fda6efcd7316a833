package linking

import (
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/encoding"
	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/plan"
)

// EncodedFile is a planned file after encoding. Content may be rewritten
// later in the run for text-inspectable files.
type EncodedFile struct {
	Descriptor plan.FileDescriptor
	Content    []byte
	Method     encoding.Method
	Password   string
	Salt       []byte
}

// Name returns the planned file name.
func (f *EncodedFile) Name() string {
	return f.Descriptor.Name
}

// Kind returns the planned file kind.
func (f *EncodedFile) Kind() plan.Kind {
	return f.Descriptor.Kind
}

// Protected reports whether a password is needed to read the file.
func (f *EncodedFile) Protected() bool {
	return f.Password != ""
}
