package aiff

import "fmt"

// ApplicationChunk carries application specific data tagged with the
// application's signature.
type ApplicationChunk struct {
	size      int32
	signature ID
	data      []byte
}

// ID returns APPL.
func (c *ApplicationChunk) ID() ID { return CIDApplication }

// Size returns the declared payload size.
func (c *ApplicationChunk) Size() int32 { return c.size }

// PhysicalSize returns the encoded length including header and pad byte.
func (c *ApplicationChunk) PhysicalSize() int { return physicalSize(c.size) }

// Signature returns the application signature, e.g. "op-1" or "pdos".
func (c *ApplicationChunk) Signature() ID { return c.signature }

// Data returns a copy of the application payload.
func (c *ApplicationChunk) Data() []byte {
	return append([]byte(nil), c.data...)
}

func (c *ApplicationChunk) String() string {
	return fmt.Sprintf("signature=%s data=%d bytes", c.signature, len(c.data))
}

// ApplicationChunkBuilder stages the fields of an ApplicationChunk.
type ApplicationChunkBuilder struct {
	size      *int32
	signature *ID
	data      []byte
}

// NewApplicationChunkBuilder returns an empty builder.
func NewApplicationChunkBuilder() *ApplicationChunkBuilder {
	return &ApplicationChunkBuilder{}
}

// WithChunkSize sets the declared payload size. When unset, Build derives it.
func (b *ApplicationChunkBuilder) WithChunkSize(size int32) *ApplicationChunkBuilder {
	b.size = &size
	return b
}

// WithSignature sets the application signature.
func (b *ApplicationChunkBuilder) WithSignature(signature ID) *ApplicationChunkBuilder {
	b.signature = &signature
	return b
}

// WithData sets the payload. The slice is copied on Build.
func (b *ApplicationChunkBuilder) WithData(data []byte) *ApplicationChunkBuilder {
	b.data = data
	return b
}

// Build validates the staged fields and returns the chunk.
func (b *ApplicationChunkBuilder) Build() (*ApplicationChunk, error) {
	if b.signature == nil {
		return nil, missingField(CIDApplication, "signature")
	}

	size, err := checkDeclaredSize(CIDApplication, b.size, sizeID+len(b.data))
	if err != nil {
		return nil, err
	}

	return &ApplicationChunk{
		size:      size,
		signature: *b.signature,
		data:      append([]byte{}, b.data...),
	}, nil
}

func readApplicationChunk(r *Reader) (*ApplicationChunk, error) {
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	if size < sizeID {
		return nil, payloadTooSmall(CIDApplication, r.Offset(), int(size), sizeID)
	}

	signature, err := r.ReadID()
	if err != nil {
		return nil, err
	}

	data, err := r.ReadBytes(int(size) - sizeID)
	if err != nil {
		return nil, err
	}

	return NewApplicationChunkBuilder().
		WithChunkSize(size).
		WithSignature(signature).
		WithData(data).
		Build()
}

func (c *ApplicationChunk) encode(w *Writer) error {
	if err := w.WriteID(CIDApplication); err != nil {
		return err
	}

	if err := w.WriteInt32(c.size); err != nil {
		return err
	}

	if err := w.WriteID(c.signature); err != nil {
		return err
	}

	return w.WriteBytes(c.data)
}
