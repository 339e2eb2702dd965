package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// readChunkSize caps the upfront allocation for raw byte fields. Longer
// fields grow as the stream delivers them.
const readChunkSize = 64 << 10

// Reader is a sequential big-endian cursor over an input stream. Every
// read consumes exactly the encoded size of the requested value or fails
// with a structural error.
type Reader struct {
	r       io.Reader
	offset  int64
	scratch [8]byte
}

// NewReader returns a Reader consuming r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

func (r *Reader) fill(buf []byte, field string) error {
	start := r.offset

	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)

	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return structuralError(ID{}, start, field, err)
	}

	return nil
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.fill(r.scratch[:sizeInt8], "uint8"); err != nil {
		return 0, err
	}

	return r.scratch[0], nil
}

// ReadInt8 reads one signed byte.
func (r *Reader) ReadInt8() (int8, error) {
	if err := r.fill(r.scratch[:sizeInt8], "int8"); err != nil {
		return 0, err
	}

	return int8(r.scratch[0]), nil
}

// ReadUint16 reads a big-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.fill(r.scratch[:sizeInt16], "uint16"); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(r.scratch[:sizeInt16]), nil
}

// ReadInt16 reads a big-endian int16.
func (r *Reader) ReadInt16() (int16, error) {
	if err := r.fill(r.scratch[:sizeInt16], "int16"); err != nil {
		return 0, err
	}

	return int16(binary.BigEndian.Uint16(r.scratch[:sizeInt16])), nil
}

// ReadUint32 reads a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.fill(r.scratch[:sizeInt32], "uint32"); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(r.scratch[:sizeInt32]), nil
}

// ReadInt32 reads a big-endian int32.
func (r *Reader) ReadInt32() (int32, error) {
	if err := r.fill(r.scratch[:sizeInt32], "int32"); err != nil {
		return 0, err
	}

	return int32(binary.BigEndian.Uint32(r.scratch[:sizeInt32])), nil
}

// ReadUint64 reads a big-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.fill(r.scratch[:sizeInt64], "uint64"); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(r.scratch[:sizeInt64]), nil
}

// ReadInt64 reads a big-endian int64.
func (r *Reader) ReadInt64() (int64, error) {
	if err := r.fill(r.scratch[:sizeInt64], "int64"); err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(r.scratch[:sizeInt64])), nil
}

// ReadID reads a four character code.
func (r *Reader) ReadID() (ID, error) {
	var id ID
	if err := r.fill(id[:], "id"); err != nil {
		return ID{}, err
	}

	return id, nil
}

// ReadExtended reads an 80 bit extended float.
func (r *Reader) ReadExtended() (Extended, error) {
	var ext Extended
	if err := r.fill(ext[:], "extended"); err != nil {
		return Extended{}, err
	}

	return ext, nil
}

// ReadPString reads a length byte, the content and the pad byte when the
// length byte plus content is odd.
func (r *Reader) ReadPString() (PString, error) {
	n, err := r.ReadUint8()
	if err != nil {
		return "", err
	}

	buf := make([]byte, int(n))
	if err := r.fill(buf, "pstring"); err != nil {
		return "", err
	}

	s := PString(buf)
	if s.padded() {
		if err := r.ReadPad(); err != nil {
			return "", err
		}
	}

	return s, nil
}

// ReadPad reads one pad byte. Pad bytes must be zero.
func (r *Reader) ReadPad() error {
	at := r.offset

	b, err := r.ReadUint8()
	if err != nil {
		return err
	}

	if b != 0 {
		return structuralError(ID{}, at, "pad", fmt.Errorf("%w: 0x%02X", errNonZeroPad, b))
	}

	return nil
}

// ReadBytes reads exactly n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, structuralError(ID{}, r.offset, "bytes", errNegativeLength)
	}

	if n <= readChunkSize {
		buf := make([]byte, n)
		if err := r.fill(buf, "bytes"); err != nil {
			return nil, err
		}

		return buf, nil
	}

	start := r.offset

	var buf bytes.Buffer
	buf.Grow(readChunkSize)

	copied, err := io.CopyN(&buf, r.r, int64(n))
	r.offset += copied

	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, structuralError(ID{}, start, "bytes", err)
	}

	return buf.Bytes(), nil
}
