package aiff

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes codec errors.
type Kind string

const (
	// KindStructural means the stream ended, or was shaped wrong, before a
	// required field could be read.
	KindStructural Kind = "structural"
	// KindInvariant means a builder rejected inconsistent or missing fields.
	KindInvariant Kind = "invariant"
	// KindSizeMismatch means a declared size disagrees with the bytes
	// actually consumed or produced.
	KindSizeMismatch Kind = "size_mismatch"
)

var (
	// ErrStructural matches any structural error with errors.Is.
	ErrStructural = &Error{Kind: KindStructural}
	// ErrInvariant matches any invariant error with errors.Is.
	ErrInvariant = &Error{Kind: KindInvariant}
	// ErrSizeMismatch matches any size mismatch error with errors.Is.
	ErrSizeMismatch = &Error{Kind: KindSizeMismatch}

	// ErrNotFORM is the cause reported when a stream doesn't start with a FORM header.
	ErrNotFORM = errors.New("not an IFF FORM container")
	// ErrUnsupportedForm is the cause reported for form types other than AIFF and AIFC.
	ErrUnsupportedForm = errors.New("unsupported form type")

	errPStringTooLong = errors.New("pstring longer than 255 bytes")
	errNilContainer   = errors.New("nil container")
	errNilChunk       = errors.New("nil chunk")
	errNegativeLength = errors.New("negative length")
	errNonZeroPad     = errors.New("non-zero pad byte")
)

// Error is the error type returned by the codec. Offset is the absolute
// byte offset in the stream where the failure was detected, or -1 when the
// error didn't come from a stream (builder validation).
type Error struct {
	Cause   error
	Kind    Kind
	Field   string
	Detail  string
	Offset  int64
	ChunkID ID
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("aiff: ")
	b.WriteString(string(e.Kind))

	if e.ChunkID != (ID{}) {
		fmt.Fprintf(&b, " in %q chunk", e.ChunkID.String())
	}

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Field != "" {
		b.WriteString(" (")
		b.WriteString(e.Field)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

func structuralError(id ID, offset int64, field string, cause error) *Error {
	return &Error{Kind: KindStructural, ChunkID: id, Offset: offset, Field: field, Cause: cause}
}

func invariantError(id ID, field, format string, args ...any) *Error {
	return &Error{Kind: KindInvariant, ChunkID: id, Offset: -1, Field: field, Detail: fmt.Sprintf(format, args...)}
}

func missingField(id ID, field string) *Error {
	return invariantError(id, field, "missing %s", field)
}

func sizeMismatchError(id ID, offset int64, declared, actual int) *Error {
	return &Error{
		Kind:    KindSizeMismatch,
		ChunkID: id,
		Offset:  offset,
		Detail:  fmt.Sprintf("declared %d bytes, got %d", declared, actual),
	}
}

func payloadTooSmall(id ID, offset int64, declared, minimum int) *Error {
	return &Error{
		Kind:    KindSizeMismatch,
		ChunkID: id,
		Offset:  offset,
		Field:   "chunkSize",
		Detail:  fmt.Sprintf("declared %d bytes, need at least %d", declared, minimum),
	}
}

// withContext fills the chunk ID and offset on codec errors that don't
// carry them yet. Other errors are returned untouched.
func withContext(err error, id ID, offset int64) error {
	var cerr *Error
	if !errors.As(err, &cerr) {
		return err
	}

	if cerr.ChunkID == (ID{}) {
		cerr.ChunkID = id
	}

	if cerr.Offset < 0 {
		cerr.Offset = offset
	}

	return err
}
