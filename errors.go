package untree

import (
	"errors"
	"fmt"
	"reflect"
)

// Category sentinels for the decode error taxonomy. Every error a decode
// operation returns matches exactly one of these via [errors.Is]; the
// concrete error types below carry the failing [Path] and the details.
var ErrTypeMismatch = errors.New("type mismatch")
var ErrValueNotFound = errors.New("value not found")
var ErrKeyNotFound = errors.New("key not found")
var ErrCorrupted = errors.New("data corrupted")

// ErrNotSupported marks target types outside the decoder's domain.
var ErrNotSupported = errors.New("not supported")

var errInvalidTarget = errors.New("target must be a non-nil pointer")

// TypeMismatchError reports a node whose kind cannot possibly satisfy the
// requested type: a text node decoded into an int, a scalar where a
// mapping was required, and so on.
type TypeMismatchError struct {
	// name of the requested type or shape
	Expected string

	// kind of the node that was actually found
	Actual string

	Path Path
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, found %s at %q", e.Expected, e.Actual, e.Path)
}

func (e TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// ValueNotFoundError reports a null or absent node where a value was
// required.
type ValueNotFoundError struct {
	Expected string
	Path     Path
}

func (e ValueNotFoundError) Error() string {
	return fmt.Sprintf("expected %s, found null at %q", e.Expected, e.Path)
}

func (e ValueNotFoundError) Unwrap() error {
	return ErrValueNotFound
}

// KeyNotFoundError reports a key missing entirely from a mapping.
type KeyNotFoundError struct {
	Key  string
	Path Path
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("no value for key %q at %q", e.Key, e.Path)
}

func (e KeyNotFoundError) Unwrap() error {
	return ErrKeyNotFound
}

// CorruptedError reports a node of a plausible kind holding a value that
// cannot be interpreted: an unparseable date or url string, a fractional
// number decoded into an int, a number out of range for its target.
type CorruptedError struct {
	Reason string
	Path   Path

	// Err is the underlying cause, if any.
	Err error
}

func (e CorruptedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %q: %s", e.Reason, e.Path, e.Err)
	}

	return fmt.Sprintf("%s at %q", e.Reason, e.Path)
}

func (e CorruptedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCorrupted, e.Err}
	}

	return []error{ErrCorrupted}
}

// NotSupportedError reports a target type the decoder cannot handle at
// all. Unlike the taxonomy above this is a programming error: no input
// tree can make the target work.
type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}

func (n NotSupportedError) Unwrap() error {
	return ErrNotSupported
}
