package ecc

import (
	"errors"
	"fmt"
)

// Error kinds reported by the field, point and curve layers.
var (
	ErrInvalidElement        = errors.New("invalid field element")
	ErrInvalidParameters     = errors.New("invalid curve parameters")
	ErrNotOnCurve            = errors.New("point is not on the curve")
	ErrDifferentCurves       = errors.New("points are on different curves")
	ErrMismatchedFields      = errors.New("elements belong to different fields")
	ErrDivisionByZero        = errors.New("division by zero")
	ErrPointGenerationFailed = errors.New("point generation failed")
)

// Error is returned by every fallible operation in this package.
// Kind is one of the Err* sentinels above and names the failure as seen by the
// component that reported it. Err, when set, is the underlying cause raised by
// a lower layer before it was re-classified.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ecc: %s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("ecc: %s: %v", e.Op, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

func wrapError(op string, kind, cause error) error {
	return &Error{Op: op, Kind: kind, Err: cause}
}

var kindNames = []struct {
	kind error
	name string
}{
	{ErrInvalidElement, "InvalidElement"},
	{ErrInvalidParameters, "InvalidParameters"},
	{ErrNotOnCurve, "NotOnCurve"},
	{ErrDifferentCurves, "DifferentCurves"},
	{ErrMismatchedFields, "MismatchedFields"},
	{ErrDivisionByZero, "DivisionByZero"},
	{ErrPointGenerationFailed, "PointGenerationFailed"},
}

// KindName returns the name of the outermost error kind carried by err, e.g.
// "NotOnCurve". Errors that do not come from this package yield "Unknown".
func KindName(err error) string {
	var e *Error
	if errors.As(err, &e) {
		for _, k := range kindNames {
			if e.Kind == k.kind {
				return k.name
			}
		}
	}
	for _, k := range kindNames {
		if errors.Is(err, k.kind) {
			return k.name
		}
	}
	return "Unknown"
}
