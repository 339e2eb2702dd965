package aiff

import "fmt"

// UnknownChunk preserves a chunk the codec doesn't interpret. The payload
// is kept verbatim so it round-trips byte for byte.
type UnknownChunk struct {
	id   ID
	size int32
	data []byte
}

// ID returns the chunk ID read from the stream.
func (c *UnknownChunk) ID() ID { return c.id }

// Size returns the declared payload size.
func (c *UnknownChunk) Size() int32 { return c.size }

// PhysicalSize returns the encoded length including header and pad byte.
func (c *UnknownChunk) PhysicalSize() int { return physicalSize(c.size) }

// Data returns a copy of the raw payload.
func (c *UnknownChunk) Data() []byte {
	return append([]byte(nil), c.data...)
}

// Clone returns a deep copy of the chunk.
func (c *UnknownChunk) Clone() *UnknownChunk {
	out := *c
	out.data = append([]byte(nil), c.data...)

	return &out
}

func (c *UnknownChunk) String() string {
	return fmt.Sprintf("%d opaque bytes", len(c.data))
}

// UnknownChunkBuilder stages the fields of an UnknownChunk.
type UnknownChunkBuilder struct {
	id   *ID
	size *int32
	data []byte
}

// NewUnknownChunkBuilder returns an empty builder.
func NewUnknownChunkBuilder() *UnknownChunkBuilder {
	return &UnknownChunkBuilder{}
}

// WithID sets the chunk type code. Codes the codec interprets are
// rejected by Build: they must go through their own builder.
func (b *UnknownChunkBuilder) WithID(id ID) *UnknownChunkBuilder {
	b.id = &id
	return b
}

// WithChunkSize sets the declared payload size. When unset, Build derives it.
func (b *UnknownChunkBuilder) WithChunkSize(size int32) *UnknownChunkBuilder {
	b.size = &size
	return b
}

// WithData sets the raw payload. The slice is copied on Build.
func (b *UnknownChunkBuilder) WithData(data []byte) *UnknownChunkBuilder {
	b.data = data
	return b
}

// Build validates the staged fields and returns the chunk.
func (b *UnknownChunkBuilder) Build() (*UnknownChunk, error) {
	if b.id == nil {
		return nil, missingField(ID{}, "chunkID")
	}

	if isRecognized(*b.id) {
		return nil, invariantError(*b.id, "chunkID", "%s chunks can't be stored as unknown chunks", *b.id)
	}

	size, err := checkDeclaredSize(*b.id, b.size, len(b.data))
	if err != nil {
		return nil, err
	}

	return &UnknownChunk{
		id:   *b.id,
		size: size,
		data: append([]byte{}, b.data...),
	}, nil
}

func readUnknownChunk(r *Reader, id ID) (*UnknownChunk, error) {
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	if size < 0 {
		return nil, payloadTooSmall(id, r.Offset(), int(size), 0)
	}

	data, err := r.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}

	return NewUnknownChunkBuilder().
		WithID(id).
		WithChunkSize(size).
		WithData(data).
		Build()
}

func (c *UnknownChunk) encode(w *Writer) error {
	if err := w.WriteID(c.id); err != nil {
		return err
	}

	if err := w.WriteInt32(c.size); err != nil {
		return err
	}

	return w.WriteBytes(c.data)
}
