package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

const wavFormatPCM = 1

var (
	errNotPCM         = errors.New("only PCM wav files are supported")
	errMissingFmt     = errors.New("missing fmt chunk")
	errMissingData    = errors.New("missing data chunk")
	errUnsupportedBit = errors.New("unsupported bit depth")
)

type wavFmt struct {
	audioFormat    uint16
	numChannels    uint16
	sampleRate     uint32
	avgBytesPerSec uint32
	blockAlign     uint16
	bitsPerSample  uint16
}

// readWav reads the fmt and data chunks of a PCM wav stream and returns
// the samples as signed integers.
func readWav(r io.Reader) (*audio.IntBuffer, error) {
	p := riff.New(r)

	id, size, err := p.IDnSize()
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return nil, fmt.Errorf("%s - %w", string(id[:]), riff.ErrFmtNotSupported)
	}

	p.ID, p.Size = id, size

	if err := binary.Read(r, binary.BigEndian, &p.Format); err != nil {
		return nil, fmt.Errorf("failed to read format: %w", err)
	}

	if p.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%s - %w", string(p.Format[:]), riff.ErrFmtNotSupported)
	}

	var (
		format *wavFmt
		data   []byte
	)

	for {
		id, size, err := p.IDnSize()
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("error reading chunk header - %w", err)
		}

		// riff.Parser.NextChunk folds the pad byte into the chunk size,
		// which would leak it into the samples of odd sized data chunks.
		chunk := &riff.Chunk{ID: id, Size: int(size), R: io.LimitReader(r, int64(size))}

		switch chunk.ID {
		case riff.FmtID:
			if format, err = readFmtChunk(chunk); err != nil {
				return nil, err
			}
		case riff.DataFormatID:
			if data, err = io.ReadAll(chunk.R); err != nil {
				return nil, fmt.Errorf("failed to read data chunk: %w", err)
			}
		default:
			chunk.Drain()
		}

		if size%2 == 1 {
			if _, err := io.CopyN(io.Discard, r, 1); err != nil {
				break
			}
		}
	}

	switch {
	case format == nil:
		return nil, errMissingFmt
	case data == nil:
		return nil, errMissingData
	}

	return decodePCM(format, data)
}

func readFmtChunk(chunk *riff.Chunk) (*wavFmt, error) {
	f := &wavFmt{}

	for _, field := range []struct {
		name string
		dst  any
	}{
		{"wav format", &f.audioFormat},
		{"channels", &f.numChannels},
		{"sample rate", &f.sampleRate},
		{"avg bytes/sec", &f.avgBytesPerSec},
		{"block align", &f.blockAlign},
		{"bit depth", &f.bitsPerSample},
	} {
		if err := chunk.ReadLE(field.dst); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", field.name, err)
		}
	}

	chunk.Drain()

	if f.audioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", errNotPCM, f.audioFormat)
	}

	return f, nil
}

func decodePCM(f *wavFmt, data []byte) (*audio.IntBuffer, error) {
	bytesPerSample := int(f.bitsPerSample) / 8

	switch f.bitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", errUnsupportedBit, f.bitsPerSample)
	}

	if f.numChannels == 0 {
		return nil, fmt.Errorf("invalid channel count %d", f.numChannels)
	}

	// drop a partial trailing frame
	frameSize := bytesPerSample * int(f.numChannels)
	data = data[:len(data)-len(data)%frameSize]

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(f.numChannels),
			SampleRate:  int(f.sampleRate),
		},
		SourceBitDepth: int(f.bitsPerSample),
		Data:           make([]int, len(data)/bytesPerSample),
	}

	for i := range buf.Data {
		b := data[i*bytesPerSample : (i+1)*bytesPerSample]

		switch bytesPerSample {
		case 1:
			buf.Data[i] = int(b[0]) - 128
		case 2:
			buf.Data[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case 3:
			buf.Data[i] = int(int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8)
		case 4:
			buf.Data[i] = int(int32(binary.LittleEndian.Uint32(b)))
		}
	}

	return buf, nil
}
