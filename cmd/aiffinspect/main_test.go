package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/aiff"
)

func writeTestFile(t *testing.T, dir string) string {
	t.Helper()

	comm, err := aiff.NewCommonChunkBuilder().
		WithNumChannels(1).
		WithNumSampleFrames(2).
		WithSampleSize(16).
		WithSampleRate(aiff.NewExtended(44100)).
		Build()
	require.NoError(t, err)

	ssnd, err := aiff.NewSoundDataChunkBuilder().
		WithOffset(0).
		WithBlockSize(0).
		WithSampleData([]byte{0x00, 0x01, 0xFF, 0xFE}).
		Build()
	require.NoError(t, err)

	c, err := aiff.NewContainerBuilder(aiff.CIDAiff).Add(comm).Add(ssnd).Build()
	require.NoError(t, err)

	data, err := aiff.EncodeBytes(c)
	require.NoError(t, err)

	path := filepath.Join(dir, "tone.aif")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestInspectPrintsChunks(t *testing.T) {
	color.NoColor = true

	path := writeTestFile(t, t.TempDir())

	var out bytes.Buffer
	_, err := newApp(&out).Parse([]string{"--verify", path})
	require.NoError(t, err)

	got := out.String()
	require.Contains(t, got, "FORM AIFF")
	require.Contains(t, got, "chunks: 2")
	require.Contains(t, got, "1 channels, 44100 Hz, 16 bit")
	require.Contains(t, got, "      12  COMM")
	require.Contains(t, got, "      38  SSND")
	require.Contains(t, got, "round trip: identical")
}

func TestInspectRejectsInvalidFile(t *testing.T) {
	color.NoColor = true

	path := filepath.Join(t.TempDir(), "bad.aif")
	require.NoError(t, os.WriteFile(path, []byte("RIFF\x04\x00\x00\x00WAVE"), 0o600))

	var out bytes.Buffer
	_, err := newApp(&out).Parse([]string{path})
	require.ErrorContains(t, err, "1 of 1 files failed")
}

func TestInspectRequiresExistingFile(t *testing.T) {
	var out bytes.Buffer
	_, err := newApp(&out).Parse([]string{filepath.Join(t.TempDir(), "missing.aif")})
	require.Error(t, err)
}
