package aiff

import "fmt"

// formHeaderSize is the part of the FORM payload preceding the chunks:
// the form type code.
const formHeaderSize = sizeID

// Container is a decoded AIFF file: the FORM header and the chunks keyed
// by chunk ID. Keys are kept in first-seen order and chunks of the same
// ID in encounter order. The encoder writes chunks in the order they were
// encountered, so chunk types that interleave in the source stay
// interleaved.
type Container struct {
	id       ID
	size     int32
	formType ID
	order    []ID
	chunks   map[ID][]Chunk
	sequence []Chunk
}

// ID returns the container chunk ID, always FORM for valid files.
func (c *Container) ID() ID { return c.id }

// Size returns the declared FORM size: form type plus all chunks.
func (c *Container) Size() int32 { return c.size }

// FormType returns AIFF or AIFC.
func (c *Container) FormType() ID { return c.formType }

// IDs returns the chunk IDs in first-seen order.
func (c *Container) IDs() []ID {
	return append([]ID(nil), c.order...)
}

// Get returns the chunks stored under id, in encounter order.
func (c *Container) Get(id ID) []Chunk {
	return append([]Chunk(nil), c.chunks[id]...)
}

// Chunks returns every chunk in encounter order.
func (c *Container) Chunks() []Chunk {
	return append([]Chunk(nil), c.sequence...)
}

// Len returns the total number of chunks.
func (c *Container) Len() int {
	return len(c.sequence)
}

// Common returns the first COMM chunk, if any.
func (c *Container) Common() (*CommonChunk, bool) {
	return first[*CommonChunk](c, CIDCommon)
}

// SoundData returns the first SSND chunk, if any.
func (c *Container) SoundData() (*SoundDataChunk, bool) {
	return first[*SoundDataChunk](c, CIDSoundData)
}

// Marker returns the first MARK chunk, if any.
func (c *Container) Marker() (*MarkerChunk, bool) {
	return first[*MarkerChunk](c, CIDMarker)
}

// Instrument returns the first INST chunk, if any.
func (c *Container) Instrument() (*InstrumentChunk, bool) {
	return first[*InstrumentChunk](c, CIDInstrument)
}

// Applications returns every APPL chunk in encounter order.
func (c *Container) Applications() []*ApplicationChunk {
	var out []*ApplicationChunk
	for _, ch := range c.chunks[CIDApplication] {
		if appl, ok := ch.(*ApplicationChunk); ok {
			out = append(out, appl)
		}
	}

	return out
}

func first[T Chunk](c *Container, id ID) (T, bool) {
	var zero T

	chunks := c.chunks[id]
	if len(chunks) == 0 {
		return zero, false
	}

	v, ok := chunks[0].(T)

	return v, ok
}

func (c *Container) add(ch Chunk) {
	if c.chunks == nil {
		c.chunks = make(map[ID][]Chunk)
	}

	id := ch.ID()
	if _, seen := c.chunks[id]; !seen {
		c.order = append(c.order, id)
	}

	c.chunks[id] = append(c.chunks[id], ch)
	c.sequence = append(c.sequence, ch)
}

func (c *Container) physicalSize() int {
	n := formHeaderSize
	for _, ch := range c.sequence {
		n += ch.PhysicalSize()
	}

	return n
}

// ContainerBuilder assembles a Container programmatically.
type ContainerBuilder struct {
	formType ID
	size     *int32
	chunks   []Chunk
}

// NewContainerBuilder returns a builder for a container of the passed
// form type (CIDAiff or CIDAifc).
func NewContainerBuilder(formType ID) *ContainerBuilder {
	return &ContainerBuilder{formType: formType}
}

// WithSize sets the declared FORM size. When unset, Build derives it.
func (b *ContainerBuilder) WithSize(size int32) *ContainerBuilder {
	b.size = &size
	return b
}

// Add appends a chunk. Chunks are encoded in the order they are added.
func (b *ContainerBuilder) Add(ch Chunk) *ContainerBuilder {
	b.chunks = append(b.chunks, ch)
	return b
}

// Build validates the staged chunks and returns the container.
func (b *ContainerBuilder) Build() (*Container, error) {
	if err := checkFormType(b.formType); err != nil {
		return nil, &Error{Kind: KindInvariant, ChunkID: CIDForm, Offset: -1, Field: "formType", Cause: err}
	}

	c := &Container{id: CIDForm, formType: b.formType}

	for i, ch := range b.chunks {
		if isNilChunk(ch) {
			return nil, &Error{Kind: KindInvariant, ChunkID: CIDForm, Offset: -1, Field: fmt.Sprintf("chunks[%d]", i), Cause: errNilChunk}
		}

		c.add(ch)
	}

	size, err := checkDeclaredSize(CIDForm, b.size, c.physicalSize())
	if err != nil {
		return nil, err
	}

	c.size = size

	return c, nil
}

// isNilChunk reports whether ch is nil or a nil pointer to one of the
// chunk variants.
func isNilChunk(ch Chunk) bool {
	switch v := ch.(type) {
	case nil:
		return true
	case *CommonChunk:
		return v == nil
	case *SoundDataChunk:
		return v == nil
	case *ApplicationChunk:
		return v == nil
	case *MarkerChunk:
		return v == nil
	case *InstrumentChunk:
		return v == nil
	case *UnknownChunk:
		return v == nil
	}

	return false
}

func checkFormType(formType ID) error {
	if formType != CIDAiff && formType != CIDAifc {
		return fmt.Errorf("%w: %q", ErrUnsupportedForm, formType.String())
	}

	return nil
}
