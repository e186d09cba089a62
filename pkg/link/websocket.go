package link

import (
	"net"
	"net/url"

	"golang.org/x/net/websocket"
)

// BinaryConn sends written bytes as binary websocket frames.
type BinaryConn websocket.Conn

// NewBinaryConn wraps websocket.Conn.
func NewBinaryConn(conn *websocket.Conn) *BinaryConn {
	conn.PayloadType = websocket.BinaryFrame
	return (*BinaryConn)(conn)
}

// Read implements io.Reader.
func (c *BinaryConn) Read(p []byte) (int, error) {
	return (*websocket.Conn)(c).Read(p)
}

// Write implements io.Writer.
func (c *BinaryConn) Write(p []byte) (int, error) {
	return (*websocket.Conn)(c).Write(p)
}

// Close implements io.Closer.
func (c *BinaryConn) Close() error {
	return (*websocket.Conn)(c).Close()
}

func openWebsocket(u *url.URL) (*Link, error) {
	origin := "http://" + u.Host
	if u.Scheme == "wss" {
		origin = "https://" + u.Host
	}
	conn, err := websocket.Dial(u.String(), "", origin)
	if err != nil {
		return nil, err
	}
	return &Link{ReadWriteCloser: NewBinaryConn(conn)}, nil
}

func openTCP(u *url.URL) (*Link, error) {
	conn, err := net.Dial("tcp", u.Host)
	if err != nil {
		return nil, err
	}
	return &Link{ReadWriteCloser: conn}, nil
}
