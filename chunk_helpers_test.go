package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"
)

type testChunk struct {
	id   string
	size int32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidFormHdr       = errors.New("invalid FORM header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// makeForm assembles a FORM container from raw chunk payloads, deriving
// every size field from the payload lengths.
func makeForm(t *testing.T, formType string, chunks ...testChunk) []byte {
	t.Helper()

	var b bytes.Buffer
	b.WriteString("FORM")
	b.Write([]byte{0, 0, 0, 0})
	b.WriteString(formType)

	for _, ch := range chunks {
		writeTestChunk(t, &b, ch.id, ch.data)
	}

	out := b.Bytes()
	binary.BigEndian.PutUint32(out[4:8], uint32(len(out)-8))

	return out
}

func writeTestChunk(t *testing.T, b *bytes.Buffer, id string, payload []byte) {
	t.Helper()

	if len(id) != 4 {
		t.Fatalf("chunk id must be 4 bytes, got %q", id)
	}

	b.WriteString(id)

	if err := binary.Write(b, binary.BigEndian, int32(len(payload))); err != nil {
		t.Fatalf("write chunk size for %q: %v", id, err)
	}

	b.Write(payload)

	if len(payload)%2 == 1 {
		b.WriteByte(0)
	}
}

// parseFormChunks walks a FORM container independently of the codec.
func parseFormChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "FORM" {
		return nil, errInvalidFormHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int32(binary.BigEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

func commPayload(channels int16, frames uint32, bits int16, rate int) []byte {
	out := make([]byte, 8, commonChunkBaseSize)
	binary.BigEndian.PutUint16(out[0:2], uint16(channels))
	binary.BigEndian.PutUint32(out[2:6], frames)
	binary.BigEndian.PutUint16(out[6:8], uint16(bits))

	ext := NewExtended(rate)

	return append(out, ext[:]...)
}

// markerPayload holds two markers: {1, 0, "A"} and {2, 100, "Loop"}.
var markerPayload = []byte{
	0x00, 0x02,
	0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 'A',
	0x00, 0x02, 0x00, 0x00, 0x00, 0x64, 0x04, 'L', 'o', 'o', 'p', 0x00,
}

var instrumentPayload = []byte{
	60, 0, 0, 127, 1, 127,
	0x00, 0x06,
	0x00, 0x01, 0x00, 0x01, 0x00, 0x02,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// fullFixture returns an AIFF file using every chunk variant, with two
// interleaved APPL chunks and odd sized payloads that need pad bytes.
func fullFixture(t *testing.T) []byte {
	t.Helper()

	return makeForm(t, "AIFF",
		testChunk{id: "COMM", data: commPayload(1, 3, 8, 8000)},
		testChunk{id: "APPL", data: []byte("pdoshello")},
		testChunk{id: "MARK", data: markerPayload},
		testChunk{id: "NAME", data: []byte("abc")},
		testChunk{id: "INST", data: instrumentPayload},
		testChunk{id: "APPL", data: []byte("op-1\x01\x02")},
		testChunk{id: "SSND", data: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0x10, 0x80, 0x7F}},
	)
}
