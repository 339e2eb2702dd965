package main

import (
	"encoding/binary"
	"fmt"

	"github.com/go-audio/audio"

	"github.com/cwbudde/aiff"
)

// toContainer builds an AIFF holding the samples of buf.
func toContainer(buf *audio.IntBuffer) (*aiff.Container, error) {
	comm, err := aiff.NewCommonChunkBuilder().
		WithNumChannels(int16(buf.Format.NumChannels)).
		WithNumSampleFrames(uint32(buf.NumFrames())).
		WithSampleSize(int16(buf.SourceBitDepth)).
		WithSampleRate(aiff.NewExtended(buf.Format.SampleRate)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build COMM chunk: %w", err)
	}

	ssnd, err := aiff.NewSoundDataChunkBuilder().
		WithOffset(0).
		WithBlockSize(0).
		WithSampleData(encodePCM(buf)).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build SSND chunk: %w", err)
	}

	return aiff.NewContainerBuilder(aiff.CIDAiff).
		Add(comm).
		Add(ssnd).
		Build()
}

// encodePCM serializes the samples as big endian signed integers.
func encodePCM(buf *audio.IntBuffer) []byte {
	bytesPerSample := buf.SourceBitDepth / 8
	out := make([]byte, len(buf.Data)*bytesPerSample)

	for i, v := range buf.Data {
		dst := out[i*bytesPerSample:]

		switch bytesPerSample {
		case 1:
			dst[0] = byte(int8(v))
		case 2:
			binary.BigEndian.PutUint16(dst, uint16(int16(v)))
		case 3:
			dst[0], dst[1], dst[2] = byte(v>>16), byte(v>>8), byte(v)
		case 4:
			binary.BigEndian.PutUint32(dst, uint32(int32(v)))
		}
	}

	return out
}
