package env

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
	"github.com/robotalks/cmpp.go/pkg/link"
	"github.com/robotalks/cmpp.go/pkg/store"
)

// Env is the runtime of a host program talking to one slave.
type Env struct {
	Config    *Config
	Store     *store.Store
	Link      *link.Link
	Port      *datalink.Port
	Datalink  *datalink.Datalink
	Transport *transport.TransportLayer

	closers []io.Closer
}

// NewEnv loads the parameter store and opens the link.
func (c *Config) NewEnv() (*Env, error) {
	env, err := c.NewOfflineEnv()
	if err != nil {
		return nil, err
	}
	ch, err := datalink.NewChannel(c.Link.Channel)
	if err != nil {
		env.Close()
		return nil, err
	}
	baud := c.Link.Baud
	if baud == 0 {
		baud = env.Store.Equipamento.BaudRate()
	}
	l, err := link.Open(c.Link.URL, link.Options{Baud: baud})
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("open link error: %w", err)
	}
	env.Link = l
	env.closers = append(env.closers, l)
	env.Port = datalink.NewPort(l)
	env.Port.ReadTimeout = l.ReadTimeout
	env.Datalink = datalink.NewOver(ch, c.Link.Timeout, env.Port)

	mp, ok := c.Mechanics()
	if !ok {
		mp = env.Store.Eixo.MechanicalProperties()
	}
	env.Transport = transport.New(env.Datalink, mp)
	env.Transport.Retries = c.Link.Retries
	glog.Infof("channel %d on %s, %d pulses per 100mm", ch, c.Link.URL, mp.PulsesPerMmX100())
	return env, nil
}

// NewOfflineEnv only loads the parameter store.
func (c *Config) NewOfflineEnv() (*Env, error) {
	env := &Env{Config: c}
	var dev store.EEPROM
	if c.EEPROM.Path != "" {
		f, err := store.OpenFile(c.EEPROM.Path)
		if err != nil {
			return nil, fmt.Errorf("open EEPROM error: %w", err)
		}
		env.closers = append(env.closers, f)
		dev = f
	} else {
		dev = store.NewMemory(store.DefaultSize)
	}
	env.Store = store.New(dev)
	if err := env.Store.LoadAll(); err != nil {
		env.Close()
		return nil, fmt.Errorf("load EEPROM error: %w", err)
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// MustNewOfflineEnv creates an offline Env and fails on error.
func (c *Config) MustNewOfflineEnv() *Env {
	env, err := c.NewOfflineEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// Name implements framework.Named.
func (e *Env) Name() string {
	return "port"
}

// Run pumps received bytes until ctx is done.
func (e *Env) Run(ctx context.Context) error {
	if e.Port == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	return e.Port.Run(ctx)
}

// Close releases the link and the EEPROM image.
func (e *Env) Close() error {
	var firstErr error
	for n := len(e.closers) - 1; n >= 0; n-- {
		if err := e.closers[n].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.closers = nil
	return firstErr
}
