package link

import (
	"fmt"
	"net/url"

	"github.com/tarm/serial"
)

func openSerial(u *url.URL, opts Options) (*Link, error) {
	name := u.Path
	if name == "" {
		name = u.Opaque
	}
	if name == "" {
		return nil, fmt.Errorf("serial port name missing")
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        opts.Baud,
		ReadTimeout: opts.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s error: %w", name, err)
	}
	return &Link{ReadWriteCloser: port, ReadTimeout: true}, nil
}
