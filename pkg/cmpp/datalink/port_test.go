package datalink_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/slave"
)

func TestPortTransactions(t *testing.T) {
	s := slave.New(MustChannel(7))
	conn := slave.NewConn(s)
	port := NewPort(conn)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go port.Run(ctx)

	dl := NewOver(MustChannel(7), time.Second, port)
	_, err := dl.SetWord16(0x30, 0xabcd)
	require.NoError(t, err)
	require.Equal(t, uint16(0xabcd), s.Register(0x30))
	w, err := dl.GetWord16(0x30)
	require.NoError(t, err)
	require.Equal(t, uint16(0xabcd), w)
}

type writeCounter struct {
	*slave.Conn
	writes [][]byte
}

func (w *writeCounter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, append([]byte(nil), p...))
	return w.Conn.Write(p)
}

func TestPortWritesWholeFrame(t *testing.T) {
	conn := &writeCounter{Conn: slave.NewConn(slave.New(MustChannel(2)))}
	port := NewPort(conn)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go port.Run(ctx)

	dl := NewOver(MustChannel(2), time.Second, port)
	_, err := dl.SetWord16(0x30, 0x1b1b)
	require.NoError(t, err)
	require.Len(t, conn.writes, 1)
	require.Equal(t, Request(DirectionSet, MustChannel(2), 0x30, 0x1b1b).Bytes(), conn.writes[0])

	_, err = dl.GetWord16(0x30)
	require.NoError(t, err)
	require.Len(t, conn.writes, 2)
	require.NoError(t, port.Flush())
	require.Len(t, conn.writes, 2)
}

func TestPortReadFailure(t *testing.T) {
	conn := slave.NewConn()
	port := NewPort(conn)
	errCh := make(chan error, 1)
	go func() { errCh <- port.Run(context.Background()) }()
	conn.Close()

	select {
	case err := <-errCh:
		require.Equal(t, io.EOF, err)
	case <-time.After(time.Second):
		t.Fatal("port not stopped")
	}

	_, err := NewOver(MustChannel(0), time.Second, port).GetWord16(0)
	var txErr *SerialTransmissionError
	require.True(t, errors.As(err, &txErr))
	require.True(t, errors.Is(err, io.ErrClosedPipe))
}

func TestPortDiscard(t *testing.T) {
	port := NewPort(slave.NewConn())
	require.Equal(t, 0, port.Discard())
	n := port.Now()
	time.Sleep(time.Millisecond)
	require.True(t, port.Now() > n)
}
