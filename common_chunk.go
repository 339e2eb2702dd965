package aiff

import (
	"fmt"

	"github.com/go-audio/audio"
)

// commonChunkBaseSize is the payload size of a COMM chunk without the
// AIFF-C compression fields.
const commonChunkBaseSize = sizeInt16 + sizeInt32 + sizeInt16 + sizeExtended

// CommonChunk describes the sampled sound: channel count, frame count,
// sample size and rate. AIFF-C files add a compression type and name.
type CommonChunk struct {
	size            int32
	numChannels     int16
	numSampleFrames uint32
	sampleSize      int16
	sampleRate      Extended
	compressionType *ID
	compressionName PString
}

// ID returns COMM.
func (c *CommonChunk) ID() ID { return CIDCommon }

// Size returns the declared payload size: 18 for AIFF, more for AIFF-C.
func (c *CommonChunk) Size() int32 { return c.size }

// PhysicalSize returns the encoded length including header and pad byte.
func (c *CommonChunk) PhysicalSize() int { return physicalSize(c.size) }

// NumChannels returns the number of audio channels.
func (c *CommonChunk) NumChannels() int16 { return c.numChannels }

// NumSampleFrames returns the number of sample frames in the SSND chunk.
func (c *CommonChunk) NumSampleFrames() uint32 { return c.numSampleFrames }

// SampleSize returns the number of bits per sample.
func (c *CommonChunk) SampleSize() int16 { return c.sampleSize }

// SampleRate returns the sample rate as an 80 bit extended float.
func (c *CommonChunk) SampleRate() Extended { return c.sampleRate }

// Compression returns the AIFF-C compression type and name. ok is false
// for plain AIFF common chunks.
func (c *CommonChunk) Compression() (codec ID, name PString, ok bool) {
	if c.compressionType == nil {
		return ID{}, "", false
	}

	return *c.compressionType, c.compressionName, true
}

// Format returns the channel count and integer sample rate as an audio.Format.
func (c *CommonChunk) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(c.numChannels),
		SampleRate:  c.sampleRate.Int(),
	}
}

func (c *CommonChunk) String() string {
	if codec, name, ok := c.Compression(); ok {
		return fmt.Sprintf("channels=%d frames=%d bits=%d rate=%d compression=%s %q",
			c.numChannels, c.numSampleFrames, c.sampleSize, c.sampleRate.Int(), codec, string(name))
	}

	return fmt.Sprintf("channels=%d frames=%d bits=%d rate=%d",
		c.numChannels, c.numSampleFrames, c.sampleSize, c.sampleRate.Int())
}

func (c *CommonChunk) payloadSize() int {
	n := commonChunkBaseSize
	if c.compressionType != nil {
		n += sizeID + c.compressionName.Size()
	}

	return n
}

// CommonChunkBuilder stages the fields of a CommonChunk.
type CommonChunkBuilder struct {
	size            *int32
	numChannels     *int16
	numSampleFrames *uint32
	sampleSize      *int16
	sampleRate      *Extended
	compressionType *ID
	compressionName *PString
}

// NewCommonChunkBuilder returns an empty builder.
func NewCommonChunkBuilder() *CommonChunkBuilder {
	return &CommonChunkBuilder{}
}

// WithChunkSize sets the declared payload size. When unset, Build derives it.
func (b *CommonChunkBuilder) WithChunkSize(size int32) *CommonChunkBuilder {
	b.size = &size
	return b
}

// WithNumChannels sets the channel count.
func (b *CommonChunkBuilder) WithNumChannels(n int16) *CommonChunkBuilder {
	b.numChannels = &n
	return b
}

// WithNumSampleFrames sets the sample frame count.
func (b *CommonChunkBuilder) WithNumSampleFrames(n uint32) *CommonChunkBuilder {
	b.numSampleFrames = &n
	return b
}

// WithSampleSize sets the bits per sample.
func (b *CommonChunkBuilder) WithSampleSize(bits int16) *CommonChunkBuilder {
	b.sampleSize = &bits
	return b
}

// WithSampleRate sets the sample rate.
func (b *CommonChunkBuilder) WithSampleRate(rate Extended) *CommonChunkBuilder {
	b.sampleRate = &rate
	return b
}

// WithCompressionType sets the AIFF-C codec. It requires WithCompressionName.
func (b *CommonChunkBuilder) WithCompressionType(codec ID) *CommonChunkBuilder {
	b.compressionType = &codec
	return b
}

// WithCompressionName sets the AIFF-C codec name.
func (b *CommonChunkBuilder) WithCompressionName(name PString) *CommonChunkBuilder {
	b.compressionName = &name
	return b
}

// Build validates the staged fields and returns the chunk.
func (b *CommonChunkBuilder) Build() (*CommonChunk, error) {
	switch {
	case b.numChannels == nil:
		return nil, missingField(CIDCommon, "numChannels")
	case b.numSampleFrames == nil:
		return nil, missingField(CIDCommon, "numSampleFrames")
	case b.sampleSize == nil:
		return nil, missingField(CIDCommon, "sampleSize")
	case b.sampleRate == nil:
		return nil, missingField(CIDCommon, "sampleRate")
	}

	if (b.compressionType == nil) != (b.compressionName == nil) {
		return nil, invariantError(CIDCommon, "compression", "compression type and name must be set together")
	}

	c := &CommonChunk{
		numChannels:     *b.numChannels,
		numSampleFrames: *b.numSampleFrames,
		sampleSize:      *b.sampleSize,
		sampleRate:      *b.sampleRate,
	}

	if b.compressionType != nil {
		if err := b.compressionName.validate(); err != nil {
			return nil, invariantError(CIDCommon, "compressionName", "%v", err)
		}

		codec := *b.compressionType
		c.compressionType = &codec
		c.compressionName = *b.compressionName
	}

	size, err := checkDeclaredSize(CIDCommon, b.size, c.payloadSize())
	if err != nil {
		return nil, err
	}

	c.size = size

	return c, nil
}

func readCommonChunk(r *Reader) (*CommonChunk, error) {
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	if size < commonChunkBaseSize {
		return nil, payloadTooSmall(CIDCommon, r.Offset(), int(size), commonChunkBaseSize)
	}

	numChannels, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}

	numSampleFrames, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}

	sampleSize, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}

	sampleRate, err := r.ReadExtended()
	if err != nil {
		return nil, err
	}

	b := NewCommonChunkBuilder().
		WithChunkSize(size).
		WithNumChannels(numChannels).
		WithNumSampleFrames(numSampleFrames).
		WithSampleSize(sampleSize).
		WithSampleRate(sampleRate)

	// AIFF-C common chunks carry the compression fields after the rate.
	if size > commonChunkBaseSize {
		codec, err := r.ReadID()
		if err != nil {
			return nil, err
		}

		name, err := r.ReadPString()
		if err != nil {
			return nil, err
		}

		b.WithCompressionType(codec).WithCompressionName(name)
	}

	return b.Build()
}

func (c *CommonChunk) encode(w *Writer) error {
	if err := w.WriteID(CIDCommon); err != nil {
		return err
	}

	if err := w.WriteInt32(c.size); err != nil {
		return err
	}

	if err := w.WriteInt16(c.numChannels); err != nil {
		return err
	}

	if err := w.WriteUint32(c.numSampleFrames); err != nil {
		return err
	}

	if err := w.WriteInt16(c.sampleSize); err != nil {
		return err
	}

	if err := w.WriteExtended(c.sampleRate); err != nil {
		return err
	}

	if c.compressionType != nil {
		if err := w.WriteID(*c.compressionType); err != nil {
			return err
		}

		if err := w.WritePString(c.compressionName); err != nil {
			return err
		}
	}

	return nil
}
