package aiff

import (
	"bytes"
	"io"

	"go.uber.org/zap"
)

// Decoder parses an AIFF stream into a Container.
type Decoder struct {
	r        *Reader
	logger   *zap.Logger
	registry *chunkRegistry
}

// NewDecoder creates a decoder reading from r. The whole stream is read
// on Decode; r is never closed.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)

	return &Decoder{
		r:        NewReader(r),
		logger:   o.logger,
		registry: defaultRegistry,
	}
}

// Decode is a shortcut for NewDecoder(r).Decode().
func Decode(r io.Reader) (*Container, error) {
	return NewDecoder(r).Decode()
}

// DecodeBytes decodes an in-memory AIFF file.
func DecodeBytes(b []byte) (*Container, error) {
	return Decode(bytes.NewReader(b))
}

// Decode reads the FORM header and every chunk it declares. The first
// error aborts the decode; no partial container is returned.
func (d *Decoder) Decode() (*Container, error) {
	formID, err := d.r.ReadID()
	if err != nil {
		return nil, withContext(err, CIDForm, 0)
	}

	if formID != CIDForm {
		return nil, structuralError(CIDForm, 0, "chunkID", ErrNotFORM)
	}

	size, err := d.r.ReadInt32()
	if err != nil {
		return nil, withContext(err, CIDForm, 0)
	}

	if size < formHeaderSize {
		return nil, payloadTooSmall(CIDForm, 0, int(size), formHeaderSize)
	}

	formType, err := d.r.ReadID()
	if err != nil {
		return nil, withContext(err, CIDForm, 0)
	}

	if err := checkFormType(formType); err != nil {
		return nil, structuralError(CIDForm, chunkHeaderSize, "formType", err)
	}

	c := &Container{id: CIDForm, size: size, formType: formType}
	end := int64(chunkHeaderSize) + int64(size)

	for d.r.Offset() < end {
		ch, err := d.decodeChunk(end)
		if err != nil {
			return nil, err
		}

		c.add(ch)
	}

	d.logger.Debug("decoded container",
		zap.Stringer("formType", formType),
		zap.Int32("size", size),
		zap.Int("chunks", c.Len()))

	return c, nil
}

func (d *Decoder) decodeChunk(end int64) (Chunk, error) {
	start := d.r.Offset()

	if remaining := end - start; remaining < chunkHeaderSize {
		return nil, &Error{
			Kind:    KindSizeMismatch,
			ChunkID: CIDForm,
			Offset:  start,
			Detail:  "FORM size leaves a partial chunk header",
		}
	}

	id, err := d.r.ReadID()
	if err != nil {
		return nil, err
	}

	h := d.registry.lookup(id)

	ch, err := h.Decode(d.r, id)
	if err != nil {
		return nil, withContext(err, id, start)
	}

	consumed := d.r.Offset() - start - chunkHeaderSize
	if consumed != int64(ch.Size()) {
		return nil, sizeMismatchError(id, start, int(ch.Size()), int(consumed))
	}

	// odd chunks carry a pad byte, even when they end the FORM
	if ch.Size()%2 == 1 {
		if err := d.r.ReadPad(); err != nil {
			return nil, withContext(err, id, start)
		}
	}

	if d.r.Offset() > end {
		return nil, &Error{
			Kind:    KindSizeMismatch,
			ChunkID: id,
			Offset:  start,
			Detail:  "chunk runs past the end of the FORM",
		}
	}

	d.logger.Debug("decoded chunk",
		zap.Stringer("id", id),
		zap.Int64("offset", start),
		zap.Int32("size", ch.Size()),
		zap.Bool("recognized", isRecognized(id)))

	return ch, nil
}
