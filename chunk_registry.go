package aiff

import "fmt"

// chunkHandler decodes and encodes one chunk variant. Decode is called
// once the chunk ID has been consumed and reads the size field and the
// payload; Encode writes header and payload, without the pad byte.
type chunkHandler interface {
	CanHandle(id ID) bool
	Decode(r *Reader, id ID) (Chunk, error)
	Encode(w *Writer, c Chunk) error
}

// chunkRegistry resolves chunk IDs to handlers. The lookup is total: IDs
// no handler claims resolve to the unknown chunk handler.
type chunkRegistry struct {
	handlers []chunkHandler
	fallback chunkHandler
}

var defaultRegistry = newDefaultChunkRegistry()

func newDefaultChunkRegistry() *chunkRegistry {
	return &chunkRegistry{
		handlers: []chunkHandler{
			&commonChunkHandler{},
			&soundDataChunkHandler{},
			&applicationChunkHandler{},
			&markerChunkHandler{},
			&instrumentChunkHandler{},
		},
		fallback: &unknownChunkHandler{},
	}
}

func (r *chunkRegistry) lookup(id ID) chunkHandler {
	for _, h := range r.handlers {
		if h.CanHandle(id) {
			return h
		}
	}

	return r.fallback
}

// isRecognized reports whether the codec interprets chunks with this ID.
func isRecognized(id ID) bool {
	return defaultRegistry.lookup(id) != defaultRegistry.fallback
}

func unexpectedChunkType(c Chunk) error {
	return fmt.Errorf("unsupported chunk implementation %T for %q", c, c.ID().String())
}

type commonChunkHandler struct{}

func (h *commonChunkHandler) CanHandle(id ID) bool { return id == CIDCommon }

func (h *commonChunkHandler) Decode(r *Reader, _ ID) (Chunk, error) {
	return readCommonChunk(r)
}

func (h *commonChunkHandler) Encode(w *Writer, c Chunk) error {
	chunk, ok := c.(*CommonChunk)
	if !ok {
		return unexpectedChunkType(c)
	}

	return chunk.encode(w)
}

type soundDataChunkHandler struct{}

func (h *soundDataChunkHandler) CanHandle(id ID) bool { return id == CIDSoundData }

func (h *soundDataChunkHandler) Decode(r *Reader, _ ID) (Chunk, error) {
	return readSoundDataChunk(r)
}

func (h *soundDataChunkHandler) Encode(w *Writer, c Chunk) error {
	chunk, ok := c.(*SoundDataChunk)
	if !ok {
		return unexpectedChunkType(c)
	}

	return chunk.encode(w)
}

type applicationChunkHandler struct{}

func (h *applicationChunkHandler) CanHandle(id ID) bool { return id == CIDApplication }

func (h *applicationChunkHandler) Decode(r *Reader, _ ID) (Chunk, error) {
	return readApplicationChunk(r)
}

func (h *applicationChunkHandler) Encode(w *Writer, c Chunk) error {
	chunk, ok := c.(*ApplicationChunk)
	if !ok {
		return unexpectedChunkType(c)
	}

	return chunk.encode(w)
}

type markerChunkHandler struct{}

func (h *markerChunkHandler) CanHandle(id ID) bool { return id == CIDMarker }

func (h *markerChunkHandler) Decode(r *Reader, _ ID) (Chunk, error) {
	return readMarkerChunk(r)
}

func (h *markerChunkHandler) Encode(w *Writer, c Chunk) error {
	chunk, ok := c.(*MarkerChunk)
	if !ok {
		return unexpectedChunkType(c)
	}

	return chunk.encode(w)
}

type instrumentChunkHandler struct{}

func (h *instrumentChunkHandler) CanHandle(id ID) bool { return id == CIDInstrument }

func (h *instrumentChunkHandler) Decode(r *Reader, _ ID) (Chunk, error) {
	return readInstrumentChunk(r)
}

func (h *instrumentChunkHandler) Encode(w *Writer, c Chunk) error {
	chunk, ok := c.(*InstrumentChunk)
	if !ok {
		return unexpectedChunkType(c)
	}

	return chunk.encode(w)
}

type unknownChunkHandler struct{}

func (h *unknownChunkHandler) CanHandle(_ ID) bool { return true }

func (h *unknownChunkHandler) Decode(r *Reader, id ID) (Chunk, error) {
	return readUnknownChunk(r, id)
}

func (h *unknownChunkHandler) Encode(w *Writer, c Chunk) error {
	chunk, ok := c.(*UnknownChunk)
	if !ok {
		return unexpectedChunkType(c)
	}

	return chunk.encode(w)
}
