package aiff

import (
	"fmt"

	"github.com/go-audio/audio"
)

// Encoded sizes, in bytes, of the fixed-width wire types.
const (
	sizeInt8     = 1
	sizeInt16    = 2
	sizeInt32    = 4
	sizeInt64    = 8
	sizeID       = 4
	sizeExtended = 10

	// chunkHeaderSize covers the chunk ID and the declared size field.
	chunkHeaderSize = sizeID + sizeInt32

	// maxPStringLen is the longest content a one-byte length prefix can describe.
	maxPStringLen = 255
)

// ID is a four character code identifying a chunk or form type.
type ID [4]byte

// NewID returns the ID for the passed four character code.
// Codes shorter than four bytes are space padded, longer ones truncated.
func NewID(code string) ID {
	id := ID{' ', ' ', ' ', ' '}
	copy(id[:], code)

	return id
}

func (id ID) String() string {
	return string(id[:])
}

// Size returns the encoded size of the ID.
func (id ID) Size() int {
	return sizeID
}

// PString is a Pascal style string: a length byte followed by the content,
// padded with a zero byte so the field always occupies an even number of
// bytes.
type PString string

// Size returns the encoded size of the string, including the length byte
// and the optional pad byte.
func (s PString) Size() int {
	n := 1 + len(s)
	if n%2 == 1 {
		n++
	}

	return n
}

// padded reports whether the encoding carries a trailing pad byte.
func (s PString) padded() bool {
	return (1+len(s))%2 == 1
}

func (s PString) validate() error {
	if len(s) > maxPStringLen {
		return fmt.Errorf("%w: %d bytes", errPStringTooLong, len(s))
	}

	return nil
}

// Extended is an 80 bit IEEE 754 extended precision float as stored in the
// COMM chunk. The raw bytes are kept so that round trips are byte identical
// even for rates that don't map to an integer.
type Extended [10]byte

// NewExtended encodes an integer sample rate.
func NewExtended(rate int) Extended {
	return Extended(audio.IntToIEEEFloat(rate))
}

// Int returns the sample rate truncated to an integer.
func (e Extended) Int() int {
	return audio.IEEEFloatToInt([10]byte(e))
}

// Size returns the encoded size of the value.
func (e Extended) Size() int {
	return sizeExtended
}
