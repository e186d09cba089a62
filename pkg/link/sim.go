package link

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/slave"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
)

// Sim returns the emulated bus if the link is sim://.
func (l *Link) Sim() *slave.Conn {
	conn, _ := l.ReadWriteCloser.(*slave.Conn)
	return conn
}

func openSim(u *url.URL) (*Link, error) {
	channels := u.Query().Get("channels")
	if channels == "" {
		channels = "0"
	}
	var slaves []*slave.Slave
	for _, s := range strings.Split(channels, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		ch, err := datalink.NewChannel(n)
		if err != nil {
			return nil, err
		}
		slaves = append(slaves, transport.NewSimulatedSlave(ch))
	}
	return &Link{ReadWriteCloser: slave.NewConn(slaves...)}, nil
}
