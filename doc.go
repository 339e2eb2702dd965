// Package aiff reads and writes AIFF and AIFF-C files at the chunk level.
//
// A file is a FORM container holding a sequence of chunks. The package
// interprets the COMM, SSND, APPL, MARK and INST chunks and keeps every
// other chunk as an opaque UnknownChunk, so decoding and re-encoding a
// file reproduces it byte for byte:
//
//	c, err := aiff.DecodeBytes(data)
//	if err != nil {
//		return err
//	}
//	out, err := aiff.EncodeBytes(c) // bytes.Equal(out, data)
//
// Chunks are immutable values created through their builders, which
// check required fields, counts and declared sizes:
//
//	mark, err := aiff.NewMarkerChunkBuilder().
//		WithNumMarkers(1).
//		WithMarker(aiff.Marker{ID: 1, Position: 0, Name: "start"}).
//		Build()
//
// Errors returned by the codec are *Error values. Use errors.Is with
// ErrStructural, ErrInvariant or ErrSizeMismatch to classify them.
package aiff
