package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartByte(t *testing.T) {
	require.True(t, StartSTX.IsValid())
	require.True(t, StartACK.IsValid())
	require.True(t, StartNACK.IsValid())
	for _, b := range []byte{0x00, ESC, ETX, 0xff} {
		require.False(t, StartByte(b).IsValid())
	}
	require.Equal(t, "NACK", StartNACK.String())
	require.Equal(t, "0x1b", StartByte(ESC).String())
}

func TestChecksum(t *testing.T) {
	testCases := []struct {
		name    string
		start   StartByte
		payload Payload
		expect  byte
	}{
		{"set word", StartSTX, Payload{0xC1, 0x50, 0x61, 0x02}, 0x87},
		{"ack with esc", StartACK, Payload{0x01, 0x86, 0x03, 0x1B}, 0x52},
		{"all esc", StartSTX, Payload{ESC, ESC, ESC, ESC}, 0x8F},
		{"checksum is esc", StartSTX, Payload{0x00, 0xE0, 0x00, 0x00}, ESC},
		{"zero", StartNACK, Payload{}, 0xE8},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sum := Checksum(tc.start, tc.payload)
			require.Equal(t, tc.expect, sum)
			total := byte(tc.start) + ETX + sum
			for _, b := range tc.payload {
				total += b
			}
			require.Zero(t, total)
		})
	}
}

func TestFrameBytes(t *testing.T) {
	testCases := []struct {
		name   string
		frame  Frame
		expect []byte
	}{
		{
			"set word",
			New(StartSTX, Payload{0xC1, 0x50, 0x61, 0x02}),
			[]byte{0x1B, 0x02, 0xC1, 0x50, 0x61, 0x02, 0x1B, 0x03, 0x87},
		},
		{
			"payload with esc",
			New(StartACK, Payload{0x01, 0x86, 0x03, 0x1B}),
			[]byte{0x1B, 0x06, 0x01, 0x86, 0x03, 0x1B, 0x1B, 0x1B, 0x03, 0x52},
		},
		{
			"all esc",
			New(StartSTX, Payload{ESC, ESC, ESC, ESC}),
			[]byte{0x1B, 0x02, 0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x03, 0x8F},
		},
		{
			"checksum is esc",
			New(StartSTX, Payload{0x00, 0xE0, 0x00, 0x00}),
			[]byte{0x1B, 0x02, 0x00, 0xE0, 0x00, 0x00, 0x1B, 0x03, 0x1B, 0x1B},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, tc.frame.Bytes())
			var buf bytes.Buffer
			n, err := tc.frame.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, int64(len(tc.expect)), n)
			require.Equal(t, tc.expect, buf.Bytes())
		})
	}
}

func TestFrameEncodeStopsOnError(t *testing.T) {
	errStop := errors.New("stop")
	var emitted []byte
	err := New(StartSTX, Payload{1, 2, 3, 4}).Encode(func(b byte) error {
		if len(emitted) == 3 {
			return errStop
		}
		emitted = append(emitted, b)
		return nil
	})
	require.Equal(t, errStop, err)
	require.Equal(t, []byte{ESC, STX, 1}, emitted)
}

func TestFrameEncodedLength(t *testing.T) {
	for _, start := range []StartByte{StartSTX, StartACK, StartNACK} {
		for i := 0; i < 256; i++ {
			f := New(start, Payload{byte(i), byte(255 - i), byte(i * 7), byte(i ^ 0x1B)})
			l := len(f.Bytes())
			require.True(t, l >= 9 && l <= MaxEncodedSize, "length %d out of range", l)
		}
	}
}

func TestPayloadWord(t *testing.T) {
	require.Equal(t, uint16(0x0261), Payload{0xC1, 0x50, 0x61, 0x02}.Word())
}
