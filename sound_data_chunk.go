package aiff

import "fmt"

// soundDataHeaderSize covers the offset and block size fields preceding
// the samples.
const soundDataHeaderSize = sizeInt32 + sizeInt32

// SoundDataChunk holds the raw sample frames.
type SoundDataChunk struct {
	size      int32
	offset    uint32
	blockSize uint32
	data      []byte
}

// ID returns SSND.
func (c *SoundDataChunk) ID() ID { return CIDSoundData }

// Size returns the declared payload size.
func (c *SoundDataChunk) Size() int32 { return c.size }

// PhysicalSize returns the encoded length including header and pad byte.
func (c *SoundDataChunk) PhysicalSize() int { return physicalSize(c.size) }

// Offset returns the byte offset of the first sample frame in the data.
func (c *SoundDataChunk) Offset() uint32 { return c.offset }

// BlockSize returns the alignment block size, 0 for unaligned data.
func (c *SoundDataChunk) BlockSize() uint32 { return c.blockSize }

// Data returns a copy of the raw sample bytes.
func (c *SoundDataChunk) Data() []byte {
	return append([]byte(nil), c.data...)
}

func (c *SoundDataChunk) String() string {
	return fmt.Sprintf("offset=%d blockSize=%d samples=%d bytes", c.offset, c.blockSize, len(c.data))
}

// SoundDataChunkBuilder stages the fields of a SoundDataChunk.
type SoundDataChunkBuilder struct {
	size      *int32
	offset    *uint32
	blockSize *uint32
	data      []byte
}

// NewSoundDataChunkBuilder returns an empty builder.
func NewSoundDataChunkBuilder() *SoundDataChunkBuilder {
	return &SoundDataChunkBuilder{}
}

// WithChunkSize sets the declared payload size. When unset, Build derives it.
func (b *SoundDataChunkBuilder) WithChunkSize(size int32) *SoundDataChunkBuilder {
	b.size = &size
	return b
}

// WithOffset sets the offset of the first sample frame in the data.
func (b *SoundDataChunkBuilder) WithOffset(offset uint32) *SoundDataChunkBuilder {
	b.offset = &offset
	return b
}

// WithBlockSize sets the alignment block size.
func (b *SoundDataChunkBuilder) WithBlockSize(blockSize uint32) *SoundDataChunkBuilder {
	b.blockSize = &blockSize
	return b
}

// WithSampleData sets the raw sample bytes. The slice is copied on Build.
func (b *SoundDataChunkBuilder) WithSampleData(data []byte) *SoundDataChunkBuilder {
	b.data = data
	return b
}

// Build validates the staged fields and returns the chunk.
func (b *SoundDataChunkBuilder) Build() (*SoundDataChunk, error) {
	switch {
	case b.offset == nil:
		return nil, missingField(CIDSoundData, "offset")
	case b.blockSize == nil:
		return nil, missingField(CIDSoundData, "blockSize")
	case b.data == nil:
		return nil, missingField(CIDSoundData, "sampleData")
	}

	size, err := checkDeclaredSize(CIDSoundData, b.size, soundDataHeaderSize+len(b.data))
	if err != nil {
		return nil, err
	}

	return &SoundDataChunk{
		size:      size,
		offset:    *b.offset,
		blockSize: *b.blockSize,
		data:      append([]byte{}, b.data...),
	}, nil
}

func readSoundDataChunk(r *Reader) (*SoundDataChunk, error) {
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	if size < soundDataHeaderSize {
		return nil, payloadTooSmall(CIDSoundData, r.Offset(), int(size), soundDataHeaderSize)
	}

	offset, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	blockSize, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	data, err := r.ReadBytes(int(size) - soundDataHeaderSize)
	if err != nil {
		return nil, err
	}

	return NewSoundDataChunkBuilder().
		WithChunkSize(size).
		WithOffset(offset).
		WithBlockSize(blockSize).
		WithSampleData(data).
		Build()
}

func (c *SoundDataChunk) encode(w *Writer) error {
	if err := w.WriteID(CIDSoundData); err != nil {
		return err
	}

	if err := w.WriteInt32(c.size); err != nil {
		return err
	}

	if err := w.WriteUint32(c.offset); err != nil {
		return err
	}

	if err := w.WriteUint32(c.blockSize); err != nil {
		return err
	}

	return w.WriteBytes(c.data)
}
