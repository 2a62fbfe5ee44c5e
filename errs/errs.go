// Package errs defines the closed set of error kinds surfaced by e57fmt and
// the Error type that carries a kind, a human-readable context, and the
// call site that raised it.
//
// Every failing call in this module surfaces one of these kinds; none are
// swallowed internally. Callers should match on Kind via errs.Is(err, kind),
// not on error message text.
package errs

import (
	"errors"
	"fmt"
	"runtime"
)

// Kind identifies the category of a failure. The set is closed: callers can
// safely switch over all Kind values without a default case silently
// catching new ones (adding a Kind is a breaking change).
type Kind uint8

const (
	KindUnknown Kind = iota
	KindFileRead
	KindFileWrite
	KindFileOpen
	KindChecksumMismatch
	KindBadFileSignature
	KindUnsupportedVersion
	KindBadXML
	KindBadPath
	KindPathUndefined
	KindAlreadyDefined
	KindNotContainer
	KindAlreadySet
	KindTypeMismatch
	KindValueOutOfBounds
	KindBadBuffer
	KindBufferSizeMismatch
	KindBufferDuplicatePath
	KindReaderNotOpen
	KindWriterNotOpen
	KindFileNotOpen
	KindInternalError
)

func (k Kind) String() string {
	switch k {
	case KindFileRead:
		return "FileRead"
	case KindFileWrite:
		return "FileWrite"
	case KindFileOpen:
		return "FileOpen"
	case KindChecksumMismatch:
		return "ChecksumMismatch"
	case KindBadFileSignature:
		return "BadFileSignature"
	case KindUnsupportedVersion:
		return "UnsupportedVersion"
	case KindBadXML:
		return "BadXml"
	case KindBadPath:
		return "BadPath"
	case KindPathUndefined:
		return "PathUndefined"
	case KindAlreadyDefined:
		return "AlreadyDefined"
	case KindNotContainer:
		return "NotContainer"
	case KindAlreadySet:
		return "AlreadySet"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindValueOutOfBounds:
		return "ValueOutOfBounds"
	case KindBadBuffer:
		return "BadBuffer"
	case KindBufferSizeMismatch:
		return "BufferSizeMismatch"
	case KindBufferDuplicatePath:
		return "BufferDuplicatePath"
	case KindReaderNotOpen:
		return "ReaderNotOpen"
	case KindWriterNotOpen:
		return "WriterNotOpen"
	case KindFileNotOpen:
		return "FileNotOpen"
	case KindInternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every failing call in this
// module. It records the failure Kind, a human-readable Context, the
// source location of the call that raised it, and an optional wrapped
// cause (e.g. an underlying I/O error from the PagedFile collaborator).
type Error struct {
	Kind    Kind
	Context string
	Cause   error
	file    string
	line    int
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s:%d): %v", e.Kind, e.Context, e.file, e.line, e.Cause)
	}

	return fmt.Sprintf("%s: %s (%s:%d)", e.Kind, e.Context, e.file, e.line)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, errs.New(errs.KindBadPath, "")) or, more idiomatically,
// switch on errors.As(err, &e).Kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}

	return false
}

// New creates an Error of the given kind with a formatted context string and
// captures the caller's source location.
func New(kind Kind, format string, args ...any) *Error {
	return wrap(kind, nil, format, args...)
}

// Wrap creates an Error of the given kind around a causing error, capturing
// the caller's source location.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return wrap(kind, cause, format, args...)
}

func wrap(kind Kind, cause error, format string, args ...any) *Error {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line = "unknown", 0
	}

	return &Error{
		Kind:    kind,
		Context: fmt.Sprintf(format, args...),
		Cause:   cause,
		file:    file,
		line:    line,
	}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}

	return false
}
