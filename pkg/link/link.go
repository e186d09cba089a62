// Package link opens byte streams to CMPP slaves by URL.
//
// Supported schemes:
//
//	serial:///dev/ttyUSB0?baud=9600   local serial port
//	ws://host:port/path               websocket serial bridge
//	tcp://host:port                   raw TCP serial server
//	mqtt://host:port/prefix/          serial stream tunneled over MQTT
//	sim://?channels=0,1               emulated slaves
package link

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
)

// DefaultBaud is used when neither URL nor caller specify a baud rate.
const DefaultBaud = 9600

// Link is an opened byte stream.
type Link struct {
	io.ReadWriteCloser
	// ReadTimeout indicates Read returns periodically without data.
	ReadTimeout bool
	URL         *url.URL
}

// Options customizes Open.
type Options struct {
	Baud        int
	ReadTimeout time.Duration
}

// Open opens a link from URL.
func Open(rawURL string, opts Options) (*Link, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid link URL %q: %w", rawURL, err)
	}
	if s := u.Query().Get("baud"); s != "" {
		if opts.Baud, err = strconv.Atoi(s); err != nil {
			return nil, fmt.Errorf("invalid baud %q: %w", s, err)
		}
	}
	if opts.Baud <= 0 {
		opts.Baud = DefaultBaud
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 10 * time.Millisecond
	}
	var l *Link
	switch strings.ToLower(u.Scheme) {
	case "serial", "":
		l, err = openSerial(u, opts)
	case "ws", "wss":
		l, err = openWebsocket(u)
	case "tcp":
		l, err = openTCP(u)
	case "mqtt", "mqtts":
		l, err = openMQTT(u)
	case "sim":
		l, err = openSim(u)
	default:
		err = fmt.Errorf("unsupported link scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	l.URL = u
	glog.Infof("link %s opened", u.Redacted())
	return l, nil
}
