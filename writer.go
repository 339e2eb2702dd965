package aiff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer is a sequential big-endian cursor over an output sink. Writes go
// straight to the sink in call order; the Writer doesn't buffer.
type Writer struct {
	w       io.Writer
	offset  int64
	scratch [8]byte
}

// NewWriter returns a Writer appending to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.offset
}

func (w *Writer) put(buf []byte, field string) error {
	n, err := w.w.Write(buf)
	w.offset += int64(n)

	if err != nil {
		return fmt.Errorf("failed to write %s at offset %d: %w", field, w.offset-int64(n), err)
	}

	if n != len(buf) {
		return fmt.Errorf("failed to write %s at offset %d: %w", field, w.offset-int64(n), io.ErrShortWrite)
	}

	return nil
}

// WriteUint8 writes one unsigned byte.
func (w *Writer) WriteUint8(v uint8) error {
	w.scratch[0] = v
	return w.put(w.scratch[:sizeInt8], "uint8")
}

// WriteInt8 writes one signed byte.
func (w *Writer) WriteInt8(v int8) error {
	w.scratch[0] = byte(v)
	return w.put(w.scratch[:sizeInt8], "int8")
}

// WriteUint16 writes a big-endian uint16.
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.scratch[:sizeInt16], v)
	return w.put(w.scratch[:sizeInt16], "uint16")
}

// WriteInt16 writes a big-endian int16.
func (w *Writer) WriteInt16(v int16) error {
	binary.BigEndian.PutUint16(w.scratch[:sizeInt16], uint16(v))
	return w.put(w.scratch[:sizeInt16], "int16")
}

// WriteUint32 writes a big-endian uint32.
func (w *Writer) WriteUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.scratch[:sizeInt32], v)
	return w.put(w.scratch[:sizeInt32], "uint32")
}

// WriteInt32 writes a big-endian int32.
func (w *Writer) WriteInt32(v int32) error {
	binary.BigEndian.PutUint32(w.scratch[:sizeInt32], uint32(v))
	return w.put(w.scratch[:sizeInt32], "int32")
}

// WriteUint64 writes a big-endian uint64.
func (w *Writer) WriteUint64(v uint64) error {
	binary.BigEndian.PutUint64(w.scratch[:sizeInt64], v)
	return w.put(w.scratch[:sizeInt64], "uint64")
}

// WriteInt64 writes a big-endian int64.
func (w *Writer) WriteInt64(v int64) error {
	binary.BigEndian.PutUint64(w.scratch[:sizeInt64], uint64(v))
	return w.put(w.scratch[:sizeInt64], "int64")
}

// WriteID writes a four character code.
func (w *Writer) WriteID(id ID) error {
	return w.put(id[:], "id")
}

// WriteExtended writes an 80 bit extended float.
func (w *Writer) WriteExtended(e Extended) error {
	return w.put(e[:], "extended")
}

// WritePString writes the length byte, the content and a zero pad byte
// when the length byte plus content is odd.
func (w *Writer) WritePString(s PString) error {
	if err := s.validate(); err != nil {
		return &Error{Kind: KindInvariant, Offset: w.offset, Field: "pstring", Cause: err}
	}

	if err := w.WriteUint8(uint8(len(s))); err != nil {
		return err
	}

	if len(s) > 0 {
		if err := w.put([]byte(s), "pstring"); err != nil {
			return err
		}
	}

	if s.padded() {
		return w.WriteUint8(0)
	}

	return nil
}

// WriteBytes writes raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	return w.put(b, "bytes")
}
