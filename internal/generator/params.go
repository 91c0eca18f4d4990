package generator

import (
	"gitlab.com/tozd/go/errors"

	"github.com/example/scriptbinds-gen/internal/doctree"
)

// paramPair joins a declared parameter with the annotation documenting it.
// Annotation is nil when the member documents no parameters at all.
type paramPair struct {
	Index      int
	Declared   doctree.Value
	Annotation doctree.Value
}

// pairParams zips declared parameters (handle already removed) with the
// "param" annotation items: the Nth annotation documents the Nth declared
// parameter. Pairing is positional, never by name. An undocumented member
// pairs every parameter with a nil annotation; any other length difference is
// ErrParamMismatch.
func pairParams(declared, annotations []doctree.Value) ([]paramPair, error) {
	if len(annotations) > 0 && len(annotations) != len(declared) {
		return nil, errors.Errorf("%w: %d declared, %d documented", ErrParamMismatch, len(declared), len(annotations))
	}
	pairs := make([]paramPair, len(declared))
	for i, d := range declared {
		pairs[i] = paramPair{Index: i, Declared: d}
		if len(annotations) > 0 {
			pairs[i].Annotation = annotations[i]
		}
	}
	return pairs, nil
}
