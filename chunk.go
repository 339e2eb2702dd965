package aiff

import (
	"fmt"
	"math"
)

var (
	// CIDForm is the ID of the IFF container header.
	CIDForm = ID{'F', 'O', 'R', 'M'}
	// CIDAiff is the form type of plain AIFF files.
	CIDAiff = ID{'A', 'I', 'F', 'F'}
	// CIDAifc is the form type of AIFF-C files.
	CIDAifc = ID{'A', 'I', 'F', 'C'}

	// CIDCommon is the chunk ID for the common chunk.
	CIDCommon = ID{'C', 'O', 'M', 'M'}
	// CIDSoundData is the chunk ID for the sound data chunk.
	CIDSoundData = ID{'S', 'S', 'N', 'D'}
	// CIDApplication is the chunk ID for the application specific chunk.
	CIDApplication = ID{'A', 'P', 'P', 'L'}
	// CIDMarker is the chunk ID for the marker chunk.
	CIDMarker = ID{'M', 'A', 'R', 'K'}
	// CIDInstrument is the chunk ID for the instrument chunk.
	CIDInstrument = ID{'I', 'N', 'S', 'T'}
)

// Chunk is implemented by every chunk variant.
type Chunk interface {
	// ID returns the chunk type code.
	ID() ID
	// Size returns the declared payload size, excluding the 8 byte header
	// and the pad byte.
	Size() int32
	// PhysicalSize returns the number of bytes the chunk occupies in a
	// stream: header, payload and pad byte for odd payloads.
	PhysicalSize() int
}

// physicalSize returns the encoded length of a chunk with the passed
// payload size.
func physicalSize(payload int32) int {
	n := chunkHeaderSize + int(payload)
	if payload%2 == 1 {
		n++
	}

	return n
}

// checkDeclaredSize validates an optional declared size against the size
// computed from the chunk fields, returning the size to use.
func checkDeclaredSize(id ID, declared *int32, computed int) (int32, error) {
	if int64(computed) > math.MaxInt32 {
		return 0, &Error{
			Kind:    KindSizeMismatch,
			ChunkID: id,
			Offset:  -1,
			Field:   "chunkSize",
			Detail:  fmt.Sprintf("%d bytes don't fit a 32 bit chunk size", computed),
		}
	}

	if declared == nil {
		return int32(computed), nil
	}

	if int(*declared) != computed {
		err := sizeMismatchError(id, -1, int(*declared), computed)
		err.Field = "chunkSize"

		return 0, err
	}

	return *declared, nil
}
