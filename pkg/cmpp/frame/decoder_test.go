package frame

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type decoderTestSequence struct {
	in     []byte
	frame  *Frame
	err    error
	inProg bool
}

type decoderTestSequenceBuilder struct {
	seq []decoderTestSequence
}

func decoderTestSequences() *decoderTestSequenceBuilder {
	return &decoderTestSequenceBuilder{}
}

func (b *decoderTestSequenceBuilder) on(in ...byte) *decoderTestSequenceBuilder {
	b.seq = append(b.seq, decoderTestSequence{in: in, inProg: true})
	return b
}

func (b *decoderTestSequenceBuilder) frame(start StartByte, payload ...byte) *decoderTestSequenceBuilder {
	s := &b.seq[len(b.seq)-1]
	s.frame = &Frame{Start: start}
	copy(s.frame.Payload[:], payload)
	s.inProg = false
	return b
}

func (b *decoderTestSequenceBuilder) fails(err error) *decoderTestSequenceBuilder {
	s := &b.seq[len(b.seq)-1]
	s.err, s.inProg = err, false
	return b
}

func (b *decoderTestSequenceBuilder) build() []decoderTestSequence {
	return b.seq
}

func TestDecoder(t *testing.T) {
	testCases := []struct {
		name string
		seq  []decoderTestSequence
	}{
		{
			name: "set word",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x87).frame(StartSTX, 0xC1, 0x50, 0x61, 0x02).
				build(),
		},
		{
			name: "ack with esc in payload",
			seq: decoderTestSequences().
				on(0x1B, 0x06, 0x01, 0x86, 0x03, 0x1B, 0x1B, 0x1B, 0x03, 0x52).frame(StartACK, 0x01, 0x86, 0x03, 0x1B).
				build(),
		},
		{
			name: "checksum is esc",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 0x00, 0xE0, 0x00, 0x00, 0x1B, 0x03, 0x1B, 0x1B).frame(StartSTX, 0x00, 0xE0, 0x00, 0x00).
				build(),
		},
		{
			name: "frames back to back",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x87).frame(StartSTX, 0xC1, 0x50, 0x61, 0x02).
				on(0x1B, 0x06, 0x01, 0x86, 0x03, 0x1B, 0x1B, 0x1B, 0x03, 0x52).frame(StartACK, 0x01, 0x86, 0x03, 0x1B).
				build(),
		},
		{
			name: "first byte is taken as esc",
			seq: decoderTestSequences().
				on(0x00, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x87).frame(StartSTX, 0xC1, 0x50, 0x61, 0x02).
				build(),
		},
		{
			name: "invalid start byte",
			seq: decoderTestSequences().
				on(0x1B, 0x00).fails(&InvalidStartByteError{Byte: 0}).
				on(0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x87).frame(StartSTX, 0xC1, 0x50, 0x61, 0x02).
				build(),
		},
		{
			name: "buffer overflow",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 1, 2, 3, 4, 5).fails(ErrBufferOverflow).
				build(),
		},
		{
			name: "stuffed esc overflows",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 1, 2, 3, 4, 0x1B, 0x1B).fails(ErrBufferOverflow).
				build(),
		},
		{
			name: "short payload",
			seq: decoderTestSequences().
				on(0x1B, 0x06, 0x00, 0x50, 0x02, 0x1B, 0x03).fails(ErrShortPayload).
				on(0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x87).frame(StartSTX, 0xC1, 0x50, 0x61, 0x02).
				build(),
		},
		{
			name: "empty payload",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 0x1B, 0x03).fails(ErrShortPayload).
				build(),
		},
		{
			name: "unexpected byte after esc",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 1, 0x1B, 0x05).fails(&UnexpectedByteError{Byte: 0x05}).
				build(),
		},
		{
			name: "invalid checksum",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x88).fails(&ChecksumError{Expected: 0x87, Received: 0x88}).
				build(),
		},
		{
			name: "bare esc checksum",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x1B).fails(ErrChecksumIsEscButNotDuplicated).
				build(),
		},
		{
			name: "esc checksum not duplicated",
			seq: decoderTestSequences().
				on(0x1B, 0x02, 0x00, 0xE0, 0x00, 0x00, 0x1B, 0x03, 0x1B, 0x00).fails(ErrChecksumIsEscButNotDuplicated).
				build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var decoder Decoder
			for n, s := range tc.seq {
				var (
					f   *Frame
					err error
				)
				for i, b := range s.in {
					f, err = decoder.Parse(b)
					if i+1 < len(s.in) {
						require.NoErrorf(t, err, "seq[%d][%d] unexpected error", n, i)
						require.Nilf(t, f, "seq[%d][%d] unexpected frame", n, i)
					}
				}
				require.Equalf(t, s.err, err, "seq[%d] error mismatch", n)
				require.Equalf(t, s.frame, f, "seq[%d] frame mismatch", n)
				require.Equalf(t, s.inProg, decoder.InProgress(), "seq[%d] state mismatch", n)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	payloads := []Payload{
		{}, {ESC, ESC, ESC, ESC}, {0xff, 0xff, 0xff, 0xff}, {0xC1, 0x50, 0x61, 0x02},
		{0x00, 0xE0, 0x00, 0x00}, {ETX, STX, ACK, NACK},
	}
	for i := 0; i < 512; i++ {
		payloads = append(payloads, Payload{byte(i), byte(i >> 1), byte(i * 31), byte(i*13 + 0x1B)})
	}
	for _, start := range []StartByte{StartSTX, StartACK, StartNACK} {
		for _, payload := range payloads {
			encoded := New(start, payload).Bytes()
			decoded, err := Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, start, decoded.Start)
			require.Equal(t, payload, decoded.Payload)
		}
	}
}

func TestDecode(t *testing.T) {
	_, err := Decode([]byte{0x1B, 0x02, 0xC1})
	require.Equal(t, io.ErrUnexpectedEOF, err)
	_, err = Decode([]byte{0x1B, 0x06, 0x00, 0x50, 0x02, 0x1B, 0x03, 0xA5})
	require.Equal(t, ErrShortPayload, err)
	f, err := Decode([]byte{0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x87, 0x1B})
	require.Equal(t, ErrTrailingBytes, err)
	require.Equal(t, StartSTX, f.Start)
}

func TestDecoderReset(t *testing.T) {
	var decoder Decoder
	_, err := decoder.Parse(0x1B)
	require.NoError(t, err)
	require.True(t, decoder.InProgress())
	decoder.Reset()
	require.False(t, decoder.InProgress())
}
