package aiff

import (
	"fmt"
	"strconv"
)

// Marker is a named position in the sound data. Position counts sample
// frames from the start of the sound data.
type Marker struct {
	ID       int16
	Position uint32
	Name     PString
}

// NewMarker returns a marker entry. Names longer than 255 bytes are
// rejected.
func NewMarker(id int16, position uint32, name string) (Marker, error) {
	if err := PString(name).validate(); err != nil {
		return Marker{}, invariantError(CIDMarker, "name", "%v", err)
	}

	return Marker{ID: id, Position: position, Name: PString(name)}, nil
}

// Size returns the encoded size of the marker entry.
func (m Marker) Size() int {
	return sizeInt16 + sizeInt32 + m.Name.Size()
}

func (m Marker) String() string {
	return fmt.Sprintf("Marker{id=%d position=%d name=%q}", m.ID, m.Position, string(m.Name))
}

// MarkerChunk lists the markers of the sound data.
type MarkerChunk struct {
	size       int32
	numMarkers uint16
	markers    []Marker
}

// ID returns MARK.
func (c *MarkerChunk) ID() ID { return CIDMarker }

// Size returns the declared payload size.
func (c *MarkerChunk) Size() int32 { return c.size }

// PhysicalSize returns the encoded length including header and pad byte.
func (c *MarkerChunk) PhysicalSize() int { return physicalSize(c.size) }

// NumMarkers returns the declared marker count.
func (c *MarkerChunk) NumMarkers() uint16 { return c.numMarkers }

// Markers returns a copy of the markers in stored order.
func (c *MarkerChunk) Markers() []Marker {
	return append([]Marker(nil), c.markers...)
}

func (c *MarkerChunk) String() string {
	return "markers=" + strconv.Itoa(int(c.numMarkers))
}

// MarkerChunkBuilder stages the fields of a MarkerChunk.
type MarkerChunkBuilder struct {
	size       *int32
	numMarkers *uint16
	markers    []Marker
}

// NewMarkerChunkBuilder returns an empty builder.
func NewMarkerChunkBuilder() *MarkerChunkBuilder {
	return &MarkerChunkBuilder{}
}

// WithChunkSize sets the declared payload size. When unset, Build derives it.
func (b *MarkerChunkBuilder) WithChunkSize(size int32) *MarkerChunkBuilder {
	b.size = &size
	return b
}

// WithNumMarkers sets the declared marker count. Build checks it against the added markers.
func (b *MarkerChunkBuilder) WithNumMarkers(n uint16) *MarkerChunkBuilder {
	b.numMarkers = &n
	return b
}

// WithMarker appends a marker.
func (b *MarkerChunkBuilder) WithMarker(m Marker) *MarkerChunkBuilder {
	b.markers = append(b.markers, m)
	return b
}

// Build validates the staged fields and returns the chunk. The declared
// marker count must match the number of markers added.
func (b *MarkerChunkBuilder) Build() (*MarkerChunk, error) {
	if b.numMarkers == nil {
		return nil, missingField(CIDMarker, "numMarkers")
	}

	if int(*b.numMarkers) != len(b.markers) {
		return nil, invariantError(CIDMarker, "numMarkers",
			"mismatch between markers and numMarkers: %d declared, %d supplied", *b.numMarkers, len(b.markers))
	}

	payload := sizeInt16
	for i, m := range b.markers {
		if err := m.Name.validate(); err != nil {
			return nil, invariantError(CIDMarker, "markers["+strconv.Itoa(i)+"].name", "%v", err)
		}

		payload += m.Size()
	}

	size, err := checkDeclaredSize(CIDMarker, b.size, payload)
	if err != nil {
		return nil, err
	}

	return &MarkerChunk{
		size:       size,
		numMarkers: *b.numMarkers,
		markers:    append([]Marker(nil), b.markers...),
	}, nil
}

func readMarkerChunk(r *Reader) (*MarkerChunk, error) {
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	numMarkers, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}

	b := NewMarkerChunkBuilder().
		WithChunkSize(size).
		WithNumMarkers(numMarkers)

	for i := uint16(0); i < numMarkers; i++ {
		id, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}

		position, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}

		name, err := r.ReadPString()
		if err != nil {
			return nil, err
		}

		b.WithMarker(Marker{ID: id, Position: position, Name: name})
	}

	return b.Build()
}

func (c *MarkerChunk) encode(w *Writer) error {
	if err := w.WriteID(CIDMarker); err != nil {
		return err
	}

	if err := w.WriteInt32(c.size); err != nil {
		return err
	}

	if err := w.WriteUint16(c.numMarkers); err != nil {
		return err
	}

	for _, m := range c.markers {
		if err := writeMarker(w, m); err != nil {
			return err
		}
	}

	return nil
}

func writeMarker(w *Writer, m Marker) error {
	if err := w.WriteInt16(m.ID); err != nil {
		return err
	}

	if err := w.WriteUint32(m.Position); err != nil {
		return err
	}

	return w.WritePString(m.Name)
}
