package aiff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkerChunkEncoding(t *testing.T) {
	mark, err := NewMarkerChunkBuilder().
		WithNumMarkers(2).
		WithMarker(Marker{ID: 1, Position: 0, Name: "A"}).
		WithMarker(Marker{ID: 2, Position: 100, Name: "Loop"}).
		Build()
	require.NoError(t, err)
	require.Equal(t, int32(22), mark.Size())
	require.Equal(t, 30, mark.PhysicalSize())

	var buf bytes.Buffer
	require.NoError(t, mark.encode(NewWriter(&buf)))

	want := append([]byte("MARK\x00\x00\x00\x16"), markerPayload...)
	require.Equal(t, want, buf.Bytes())

	r := NewReader(bytes.NewReader(buf.Bytes()))
	id, err := r.ReadID()
	require.NoError(t, err)
	require.Equal(t, CIDMarker, id)

	back, err := readMarkerChunk(r)
	require.NoError(t, err)
	require.Equal(t, mark, back)
}

func TestMarkerChunkBuilder(t *testing.T) {
	t.Run("count mismatch", func(t *testing.T) {
		_, err := NewMarkerChunkBuilder().
			WithNumMarkers(2).
			WithMarker(Marker{ID: 1, Name: "A"}).
			Build()
		require.ErrorIs(t, err, ErrInvariant)
		require.ErrorContains(t, err, "mismatch between markers and numMarkers")
	})

	t.Run("missing count", func(t *testing.T) {
		_, err := NewMarkerChunkBuilder().WithMarker(Marker{ID: 1}).Build()
		require.ErrorIs(t, err, ErrInvariant)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := NewMarkerChunkBuilder().
			WithNumMarkers(1).
			WithMarker(Marker{ID: 1, Name: PString(strings.Repeat("x", 256))}).
			Build()
		require.ErrorIs(t, err, ErrInvariant)

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, "markers[0].name", cerr.Field)
	})

	t.Run("empty", func(t *testing.T) {
		mark, err := NewMarkerChunkBuilder().WithNumMarkers(0).Build()
		require.NoError(t, err)
		require.Equal(t, int32(2), mark.Size())
		require.Empty(t, mark.Markers())
	})

	t.Run("declared size", func(t *testing.T) {
		_, err := NewMarkerChunkBuilder().
			WithChunkSize(10).
			WithNumMarkers(1).
			WithMarker(Marker{ID: 1, Name: "A"}).
			Build()
		require.ErrorIs(t, err, ErrSizeMismatch)
	})
}

func TestNewMarker(t *testing.T) {
	m, err := NewMarker(3, 4410, "sustain")
	require.NoError(t, err)
	require.Equal(t, Marker{ID: 3, Position: 4410, Name: "sustain"}, m)
	require.Equal(t, 2+4+8, m.Size())

	_, err = NewMarker(3, 0, strings.Repeat("n", 256))
	require.ErrorIs(t, err, ErrInvariant)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, CIDMarker, cerr.ChunkID)
	require.Equal(t, "name", cerr.Field)
}

func TestMarkerChunkIsImmutable(t *testing.T) {
	mark, err := NewMarkerChunkBuilder().
		WithNumMarkers(1).
		WithMarker(Marker{ID: 7, Position: 3, Name: "cue"}).
		Build()
	require.NoError(t, err)

	markers := mark.Markers()
	markers[0].Name = "changed"

	require.Equal(t, PString("cue"), mark.Markers()[0].Name)
}
