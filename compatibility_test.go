package aiff

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	goaiff "github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/stretchr/testify/require"
)

func buildPCMContainer(t *testing.T, samples []int16) *Container {
	t.Helper()

	var data bytes.Buffer

	w := NewWriter(&data)
	for _, s := range samples {
		require.NoError(t, w.WriteInt16(s))
	}

	comm, err := NewCommonChunkBuilder().
		WithNumChannels(1).
		WithNumSampleFrames(uint32(len(samples))).
		WithSampleSize(16).
		WithSampleRate(NewExtended(44100)).
		Build()
	require.NoError(t, err)

	ssnd, err := NewSoundDataChunkBuilder().
		WithOffset(0).
		WithBlockSize(0).
		WithSampleData(data.Bytes()).
		Build()
	require.NoError(t, err)

	c, err := NewContainerBuilder(CIDAiff).Add(comm).Add(ssnd).Build()
	require.NoError(t, err)

	return c
}

func TestCompatibility_GoAudioDecodesOutput(t *testing.T) {
	out, err := EncodeBytes(buildPCMContainer(t, []int16{1, -2, 300, -300}))
	require.NoError(t, err)

	d := goaiff.NewDecoder(bytes.NewReader(out))
	require.True(t, d.IsValidFile())
	require.Equal(t, 1, int(d.NumChans))
	require.Equal(t, 16, int(d.BitDepth))
	require.Equal(t, 44100, int(d.SampleRate))

	buf, err := goaiff.NewDecoder(bytes.NewReader(out)).FullPCMBuffer()
	require.NoError(t, err)
	require.Equal(t, []int{1, -2, 300, -300}, buf.Data)
}

func TestCompatibility_RoundTripGoAudioOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go-audio.aif")

	f, err := os.Create(path)
	require.NoError(t, err)

	enc := goaiff.NewEncoder(f, 22050, 16, 2)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 22050},
		SourceBitDepth: 16,
		Data:           []int{0, 1, -1, 1000, -1000, 32767, -32768, 5},
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	in, err := os.ReadFile(path)
	require.NoError(t, err)

	c, err := DecodeBytes(in)
	require.NoError(t, err)

	comm, ok := c.Common()
	require.True(t, ok)
	require.Equal(t, int16(2), comm.NumChannels())
	require.Equal(t, int16(16), comm.SampleSize())
	require.Equal(t, 22050, comm.SampleRate().Int())

	ssnd, ok := c.SoundData()
	require.True(t, ok)
	require.Len(t, ssnd.Data(), 16)

	out, err := EncodeBytes(c)
	require.NoError(t, err)
	require.Equal(t, in, out)
}
