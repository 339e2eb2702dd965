package aiff

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestReaderWriterPrimitives(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteUint8(0xFE))
	require.NoError(t, w.WriteInt8(-2))
	require.NoError(t, w.WriteUint16(0xBEEF))
	require.NoError(t, w.WriteInt16(-300))
	require.NoError(t, w.WriteUint32(0xDEADBEEF))
	require.NoError(t, w.WriteInt32(-70000))
	require.NoError(t, w.WriteUint64(0x0102030405060708))
	require.NoError(t, w.WriteInt64(-1))
	require.NoError(t, w.WriteID(CIDCommon))
	require.NoError(t, w.WriteExtended(NewExtended(22050)))
	require.NoError(t, w.WritePString("Loop"))
	require.NoError(t, w.WriteBytes([]byte{7, 8, 9}))
	require.Equal(t, int64(1+1+2+2+4+4+8+8+4+10+6+3), w.Offset())

	require.Equal(t, []byte{0xBE, 0xEF}, buf.Bytes()[2:4])

	r := NewReader(bytes.NewReader(buf.Bytes()))

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xFE), u8)

	i8, err := r.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-2), i8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), u16)

	i16, err := r.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(-300), i16)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-70000), i32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-1), i64)

	id, err := r.ReadID()
	require.NoError(t, err)
	require.Equal(t, CIDCommon, id)

	ext, err := r.ReadExtended()
	require.NoError(t, err)
	require.Equal(t, 22050, ext.Int())

	s, err := r.ReadPString()
	require.NoError(t, err)
	require.Equal(t, PString("Loop"), s)

	raw, err := r.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 8, 9}, raw)

	require.Equal(t, w.Offset(), r.Offset())

	_, err = r.ReadUint8()
	require.ErrorIs(t, err, ErrStructural)
}

func TestWritePStringPadding(t *testing.T) {
	tests := []struct {
		in   PString
		want []byte
	}{
		{in: "", want: []byte{0x00, 0x00}},
		{in: "A", want: []byte{0x01, 'A'}},
		{in: "AB", want: []byte{0x02, 'A', 'B', 0x00}},
		{in: "Loop", want: []byte{0x04, 'L', 'o', 'o', 'p', 0x00}},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(&buf).WritePString(tt.in))

			if diff := cmp.Diff(tt.want, buf.Bytes()); diff != "" {
				t.Fatalf("encoding mismatch (-want +got):\n%s", diff)
			}

			r := NewReader(bytes.NewReader(buf.Bytes()))
			got, err := r.ReadPString()
			require.NoError(t, err)
			require.Equal(t, tt.in, got)
			require.Equal(t, int64(tt.in.Size()), r.Offset())
		})
	}
}

func TestWritePStringTooLong(t *testing.T) {
	var buf bytes.Buffer

	err := NewWriter(&buf).WritePString(PString(strings.Repeat("x", 256)))
	require.ErrorIs(t, err, ErrInvariant)
	require.ErrorIs(t, err, errPStringTooLong)
	require.Zero(t, buf.Len())

	require.NoError(t, NewWriter(&buf).WritePString(PString(strings.Repeat("x", 255))))
	require.Equal(t, 256, buf.Len())
}

func TestReadPad(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x00, 0x7F}))
	require.NoError(t, r.ReadPad())

	err := r.ReadPad()
	require.ErrorIs(t, err, ErrStructural)
	require.ErrorIs(t, err, errNonZeroPad)
	require.ErrorContains(t, err, "0x7F")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, int64(1), cerr.Offset)

	_, err = NewReader(bytes.NewReader([]byte{0x02, 'A', 'B', 0x01})).ReadPString()
	require.ErrorIs(t, err, errNonZeroPad)
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))

	_, err := r.ReadUint16()
	require.NoError(t, err)

	_, err = r.ReadUint32()
	require.ErrorIs(t, err, ErrStructural)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, int64(2), cerr.Offset)
	require.Equal(t, "uint32", cerr.Field)

	_, err = NewReader(bytes.NewReader(nil)).ReadID()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// pad byte missing
	_, err = NewReader(bytes.NewReader([]byte{0x02, 'A', 'B'})).ReadPString()
	require.ErrorIs(t, err, ErrStructural)
}

func TestReadBytes(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil)).ReadBytes(-1)
	require.ErrorIs(t, err, ErrStructural)
	require.ErrorIs(t, err, errNegativeLength)

	empty, err := NewReader(bytes.NewReader(nil)).ReadBytes(0)
	require.NoError(t, err)
	require.Empty(t, empty)

	large := bytes.Repeat([]byte{0xA5}, readChunkSize*3+7)

	r := NewReader(bytes.NewReader(large))
	got, err := r.ReadBytes(len(large))
	require.NoError(t, err)
	require.Equal(t, large, got)
	require.Equal(t, int64(len(large)), r.Offset())

	r = NewReader(bytes.NewReader(large[:readChunkSize*2]))
	_, err = r.ReadBytes(len(large))
	require.ErrorIs(t, err, ErrStructural)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Equal(t, int64(readChunkSize*2), r.Offset())
}

var errBrokenPipe = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBrokenPipe }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestWriterErrors(t *testing.T) {
	err := NewWriter(failingWriter{}).WriteUint32(1)
	require.ErrorIs(t, err, errBrokenPipe)

	w := NewWriter(shortWriter{})
	err = w.WriteUint32(1)
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.Equal(t, int64(2), w.Offset())

	require.NoError(t, NewWriter(failingWriter{}).WriteBytes(nil))
}
