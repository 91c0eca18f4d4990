package generator

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnknownType is returned for a native type spelling missing from the
	// translation table.
	ErrUnknownType = errors.Base("unknown type spelling")

	// ErrNotScriptBind is returned for a compound document whose name carries
	// none of the recognized prefixes.
	ErrNotScriptBind = errors.Base("compound is not a script binding")

	// ErrUnregistered is returned when merging a compound the index scan never
	// registered.
	ErrUnregistered = errors.Base("compound was not registered by the index scan")

	// ErrParamMismatch is returned when the documented parameters cannot be
	// paired with the declared ones.
	ErrParamMismatch = errors.Base("documented parameters do not match declared parameters")

	// ErrShape is returned when a document node has an unexpected shape.
	ErrShape = errors.Base("unexpected document shape")
)

// MemberError reports a member function that was skipped.
type MemberError struct {
	Compound string
	Method   string
	Err      error
}

func (e *MemberError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Compound, e.Method, e.Err)
}

func (e *MemberError) Unwrap() error {
	return e.Err
}
