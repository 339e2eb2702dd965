package aiff

import "fmt"

// Loop play modes.
const (
	NoLooping              int16 = 0
	ForwardLooping         int16 = 1
	ForwardBackwardLooping int16 = 2
)

const (
	loopSize                = 3 * sizeInt16
	instrumentChunkDataSize = 6*sizeInt8 + sizeInt16 + 2*loopSize
)

// Loop describes a sustain or release loop. Begin and End are marker IDs.
type Loop struct {
	PlayMode int16
	Begin    int16
	End      int16
}

// InstrumentChunk holds the parameters for playing the sound on a sampler.
type InstrumentChunk struct {
	size         int32
	baseNote     int8
	detune       int8
	lowNote      int8
	highNote     int8
	lowVelocity  int8
	highVelocity int8
	gain         int16
	sustainLoop  Loop
	releaseLoop  Loop
}

// ID returns INST.
func (c *InstrumentChunk) ID() ID { return CIDInstrument }

// Size always returns 20.
func (c *InstrumentChunk) Size() int32 { return c.size }

// PhysicalSize returns the encoded length including header and pad byte.
func (c *InstrumentChunk) PhysicalSize() int { return physicalSize(c.size) }

// BaseNote returns the MIDI note the sample was recorded at.
func (c *InstrumentChunk) BaseNote() int8 { return c.baseNote }

// Detune returns the pitch shift in cents.
func (c *InstrumentChunk) Detune() int8 { return c.detune }

// LowNote returns the lowest MIDI note of the playback range.
func (c *InstrumentChunk) LowNote() int8 { return c.lowNote }

// HighNote returns the highest MIDI note of the playback range.
func (c *InstrumentChunk) HighNote() int8 { return c.highNote }

// LowVelocity returns the lowest MIDI velocity of the playback range.
func (c *InstrumentChunk) LowVelocity() int8 { return c.lowVelocity }

// HighVelocity returns the highest MIDI velocity of the playback range.
func (c *InstrumentChunk) HighVelocity() int8 { return c.highVelocity }

// Gain returns the gain in decibels.
func (c *InstrumentChunk) Gain() int16 { return c.gain }

// SustainLoop returns the loop played while the note is held.
func (c *InstrumentChunk) SustainLoop() Loop { return c.sustainLoop }

// ReleaseLoop returns the loop played after the note is released.
func (c *InstrumentChunk) ReleaseLoop() Loop { return c.releaseLoop }

func (c *InstrumentChunk) String() string {
	return fmt.Sprintf("baseNote=%d detune=%d notes=%d-%d velocity=%d-%d gain=%d sustain=%+v release=%+v",
		c.baseNote, c.detune, c.lowNote, c.highNote, c.lowVelocity, c.highVelocity, c.gain, c.sustainLoop, c.releaseLoop)
}

// InstrumentChunkBuilder stages the fields of an InstrumentChunk.
type InstrumentChunkBuilder struct {
	size         *int32
	baseNote     *int8
	detune       *int8
	lowNote      *int8
	highNote     *int8
	lowVelocity  *int8
	highVelocity *int8
	gain         *int16
	sustainLoop  *Loop
	releaseLoop  *Loop
}

// NewInstrumentChunkBuilder returns an empty builder.
func NewInstrumentChunkBuilder() *InstrumentChunkBuilder {
	return &InstrumentChunkBuilder{}
}

// WithChunkSize sets the declared payload size. When unset, Build derives it.
func (b *InstrumentChunkBuilder) WithChunkSize(size int32) *InstrumentChunkBuilder {
	b.size = &size
	return b
}

// WithBaseNote sets the base MIDI note.
func (b *InstrumentChunkBuilder) WithBaseNote(v int8) *InstrumentChunkBuilder {
	b.baseNote = &v
	return b
}

// WithDetune sets the detune in cents.
func (b *InstrumentChunkBuilder) WithDetune(v int8) *InstrumentChunkBuilder {
	b.detune = &v
	return b
}

// WithLowNote sets the lowest note.
func (b *InstrumentChunkBuilder) WithLowNote(v int8) *InstrumentChunkBuilder {
	b.lowNote = &v
	return b
}

// WithHighNote sets the highest note.
func (b *InstrumentChunkBuilder) WithHighNote(v int8) *InstrumentChunkBuilder {
	b.highNote = &v
	return b
}

// WithLowVelocity sets the lowest velocity.
func (b *InstrumentChunkBuilder) WithLowVelocity(v int8) *InstrumentChunkBuilder {
	b.lowVelocity = &v
	return b
}

// WithHighVelocity sets the highest velocity.
func (b *InstrumentChunkBuilder) WithHighVelocity(v int8) *InstrumentChunkBuilder {
	b.highVelocity = &v
	return b
}

// WithGain sets the gain in decibels.
func (b *InstrumentChunkBuilder) WithGain(v int16) *InstrumentChunkBuilder {
	b.gain = &v
	return b
}

// WithSustainLoop sets the sustain loop.
func (b *InstrumentChunkBuilder) WithSustainLoop(l Loop) *InstrumentChunkBuilder {
	b.sustainLoop = &l
	return b
}

// WithReleaseLoop sets the release loop.
func (b *InstrumentChunkBuilder) WithReleaseLoop(l Loop) *InstrumentChunkBuilder {
	b.releaseLoop = &l
	return b
}

// Build validates the staged fields and returns the chunk.
func (b *InstrumentChunkBuilder) Build() (*InstrumentChunk, error) {
	switch {
	case b.baseNote == nil:
		return nil, missingField(CIDInstrument, "baseNote")
	case b.detune == nil:
		return nil, missingField(CIDInstrument, "detune")
	case b.lowNote == nil:
		return nil, missingField(CIDInstrument, "lowNote")
	case b.highNote == nil:
		return nil, missingField(CIDInstrument, "highNote")
	case b.lowVelocity == nil:
		return nil, missingField(CIDInstrument, "lowVelocity")
	case b.highVelocity == nil:
		return nil, missingField(CIDInstrument, "highVelocity")
	case b.gain == nil:
		return nil, missingField(CIDInstrument, "gain")
	case b.sustainLoop == nil:
		return nil, missingField(CIDInstrument, "sustainLoop")
	case b.releaseLoop == nil:
		return nil, missingField(CIDInstrument, "releaseLoop")
	}

	size, err := checkDeclaredSize(CIDInstrument, b.size, instrumentChunkDataSize)
	if err != nil {
		return nil, err
	}

	return &InstrumentChunk{
		size:         size,
		baseNote:     *b.baseNote,
		detune:       *b.detune,
		lowNote:      *b.lowNote,
		highNote:     *b.highNote,
		lowVelocity:  *b.lowVelocity,
		highVelocity: *b.highVelocity,
		gain:         *b.gain,
		sustainLoop:  *b.sustainLoop,
		releaseLoop:  *b.releaseLoop,
	}, nil
}

func readInstrumentChunk(r *Reader) (*InstrumentChunk, error) {
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	if size < instrumentChunkDataSize {
		return nil, payloadTooSmall(CIDInstrument, r.Offset(), int(size), instrumentChunkDataSize)
	}

	var notes [6]int8
	for i := range notes {
		if notes[i], err = r.ReadInt8(); err != nil {
			return nil, err
		}
	}

	gain, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}

	sustain, err := readLoop(r)
	if err != nil {
		return nil, err
	}

	release, err := readLoop(r)
	if err != nil {
		return nil, err
	}

	return NewInstrumentChunkBuilder().
		WithChunkSize(size).
		WithBaseNote(notes[0]).
		WithDetune(notes[1]).
		WithLowNote(notes[2]).
		WithHighNote(notes[3]).
		WithLowVelocity(notes[4]).
		WithHighVelocity(notes[5]).
		WithGain(gain).
		WithSustainLoop(sustain).
		WithReleaseLoop(release).
		Build()
}

func readLoop(r *Reader) (Loop, error) {
	var (
		l   Loop
		err error
	)

	if l.PlayMode, err = r.ReadInt16(); err != nil {
		return Loop{}, err
	}

	if l.Begin, err = r.ReadInt16(); err != nil {
		return Loop{}, err
	}

	if l.End, err = r.ReadInt16(); err != nil {
		return Loop{}, err
	}

	return l, nil
}

func (c *InstrumentChunk) encode(w *Writer) error {
	if err := w.WriteID(CIDInstrument); err != nil {
		return err
	}

	if err := w.WriteInt32(c.size); err != nil {
		return err
	}

	for _, v := range [...]int8{c.baseNote, c.detune, c.lowNote, c.highNote, c.lowVelocity, c.highVelocity} {
		if err := w.WriteInt8(v); err != nil {
			return err
		}
	}

	if err := w.WriteInt16(c.gain); err != nil {
		return err
	}

	if err := writeLoop(w, c.sustainLoop); err != nil {
		return err
	}

	return writeLoop(w, c.releaseLoop)
}

func writeLoop(w *Writer, l Loop) error {
	if err := w.WriteInt16(l.PlayMode); err != nil {
		return err
	}

	if err := w.WriteInt16(l.Begin); err != nil {
		return err
	}

	return w.WriteInt16(l.End)
}
