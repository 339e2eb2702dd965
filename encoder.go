package aiff

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Encoder serializes a Container.
type Encoder struct {
	w        *Writer
	logger   *zap.Logger
	registry *chunkRegistry
}

// NewEncoder creates an encoder writing to w. Bytes are written in order
// as they are produced; w is never closed.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := newOptions(opts)

	return &Encoder{
		w:        NewWriter(w),
		logger:   o.logger,
		registry: defaultRegistry,
	}
}

// Encode is a shortcut for NewEncoder(w).Encode(c).
func Encode(w io.Writer, c *Container) error {
	return NewEncoder(w).Encode(c)
}

// EncodeBytes encodes the container in memory.
func EncodeBytes(c *Container) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Encode writes the FORM header followed by every chunk in encounter
// order. The declared FORM size is checked against the chunks before
// anything is written.
func (e *Encoder) Encode(c *Container) error {
	if c == nil {
		return &Error{Kind: KindInvariant, ChunkID: CIDForm, Offset: -1, Cause: errNilContainer}
	}

	if physical := c.physicalSize(); int(c.size) != physical {
		return sizeMismatchError(CIDForm, -1, int(c.size), physical)
	}

	base := e.w.Offset()

	if err := e.w.WriteID(c.id); err != nil {
		return fmt.Errorf("failed to write the FORM ID: %w", err)
	}

	if err := e.w.WriteInt32(c.size); err != nil {
		return fmt.Errorf("failed to write the FORM size: %w", err)
	}

	if err := e.w.WriteID(c.formType); err != nil {
		return fmt.Errorf("failed to write the form type: %w", err)
	}

	for _, ch := range c.sequence {
		if err := e.encodeChunk(ch); err != nil {
			return err
		}
	}

	if written := e.w.Offset() - base; written != int64(chunkHeaderSize)+int64(c.size) {
		return sizeMismatchError(CIDForm, base, chunkHeaderSize+int(c.size), int(written))
	}

	e.logger.Debug("encoded container",
		zap.Stringer("formType", c.formType),
		zap.Int32("size", c.size),
		zap.Int("chunks", c.Len()))

	return nil
}

func (e *Encoder) encodeChunk(ch Chunk) error {
	start := e.w.Offset()
	id := ch.ID()

	if err := e.registry.lookup(id).Encode(e.w, ch); err != nil {
		return withContext(fmt.Errorf("failed to encode %q chunk: %w", id.String(), err), id, start)
	}

	if ch.Size()%2 == 1 {
		if err := e.w.WriteUint8(0); err != nil {
			return fmt.Errorf("failed to write the %q pad byte: %w", id.String(), err)
		}
	}

	if written := e.w.Offset() - start; written != int64(ch.PhysicalSize()) {
		return sizeMismatchError(id, start, ch.PhysicalSize(), int(written))
	}

	e.logger.Debug("encoded chunk",
		zap.Stringer("id", id),
		zap.Int64("offset", start),
		zap.Int32("size", ch.Size()))

	return nil
}
