// Package device provides shell commands operating the connected slave.
package device

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/cmpp.go/pkg/cli/sh"
	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
	"github.com/robotalks/cmpp.go/pkg/store"
)

// OperationTimeout bounds reference and stop commands.
var OperationTimeout = 30 * time.Second

type paramInfo struct {
	Name      string `json:"name"`
	Addr      uint8  `json:"addr"`
	Location  string `json:"location"`
	Bit       uint   `json:"bit,omitempty"`
	Dimension string `json:"dimension"`
	ReadOnly  bool   `json:"read_only,omitempty"`
}

type paramValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Text  string `json:"text"`
}

func lookupParam(c *ishell.Context) (transport.ParamID, bool) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("NAME required"))
		return 0, false
	}
	id, ok := transport.Lookup(c.Args[0])
	if !ok {
		c.Err(fmt.Errorf("unknown parameter %q", c.Args[0]))
	}
	return id, ok
}

// FormatValue formats a value read from parameter id.
func FormatValue(id transport.ParamID, value int64) string {
	if p := id.Param(); p.Location == transport.LocationBit {
		return p.Kind.Format(value != 0)
	}
	return strconv.FormatInt(value, 10)
}

// ParseValue parses text into a value of parameter id.
func ParseValue(id transport.ParamID, text string) (int64, error) {
	if p := id.Param(); p.Location == transport.LocationBit {
		bit, err := p.Kind.Parse(text)
		if bit {
			return 1, err
		}
		return 0, err
	}
	return strconv.ParseInt(text, 0, 64)
}

func withTimeout(c *ishell.Context, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(sh.ShellFrom(c).Context(), OperationTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		sh.PrintStatus(c, 0, err)
		return
	}
	st, err := sh.ShellFrom(c).Transport().GetStatus()
	sh.PrintStatus(c, st, err)
}

var (
	// ParamsCmd lists device parameters.
	ParamsCmd = ishell.Cmd{
		Name:    "params",
		Aliases: []string{"p"},
		Help:    "",
		Func: func(c *ishell.Context) {
			infos := make([]paramInfo, 0, transport.NumParams)
			for n := range transport.Params {
				p := &transport.Params[n]
				infos = append(infos, paramInfo{
					Name:      p.Name,
					Addr:      uint8(p.Addr),
					Location:  p.Location.String(),
					Bit:       p.Bit,
					Dimension: p.Dimension.String(),
					ReadOnly:  p.ReadOnly,
				})
			}
			if sh.ShellFrom(c).OutputJSON {
				sh.Print(c, infos, "")
				return
			}
			for n := range transport.Params {
				p := &transport.Params[n]
				c.Printf("%-40s %s\n", p.String(), p.Dimension)
			}
		},
	}

	// GetCmd reads a parameter.
	GetCmd = ishell.Cmd{
		Name:    "get",
		Aliases: []string{"g"},
		Help:    "NAME",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			id, ok := lookupParam(c)
			if !ok {
				return
			}
			value, err := sh.ShellFrom(c).Transport().Get(id)
			if err != nil {
				sh.PrintStatus(c, 0, err)
				return
			}
			text := FormatValue(id, value)
			sh.Print(c, &paramValue{Name: id.String(), Value: value, Text: text}, text)
		}),
	}

	// SetCmd writes a parameter.
	SetCmd = ishell.Cmd{
		Name:    "set",
		Aliases: []string{"s"},
		Help:    "NAME VALUE",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			id, ok := lookupParam(c)
			if !ok {
				return
			}
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			value, err := ParseValue(id, c.Args[1])
			if err != nil {
				c.Err(fmt.Errorf("Invalid VALUE: %v", err))
				return
			}
			st, err := sh.ShellFrom(c).Transport().Set(id, value)
			sh.PrintStatus(c, st, err)
		}),
	}

	// StatusCmd reads the slave status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			st, err := sh.ShellFrom(c).Transport().GetStatus()
			sh.PrintStatus(c, st, err)
		}),
	}

	// ReferenceCmd references the axis.
	ReferenceCmd = ishell.Cmd{
		Name:    "reference",
		Aliases: []string{"ref"},
		Help:    "[VELOCITY ACCELERATION]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			opts := transport.ReferenceOptions{
				Velocity:     s.Store().Eixo.VelocidadeDeReferencia,
				Acceleration: s.Store().Eixo.AceleracaoDeReferencia,
			}
			if len(c.Args) >= 2 {
				vel, err := strconv.ParseUint(c.Args[0], 0, 16)
				if err != nil {
					c.Err(fmt.Errorf("Invalid VELOCITY: %v", err))
					return
				}
				acc, err := strconv.ParseUint(c.Args[1], 0, 16)
				if err != nil {
					c.Err(fmt.Errorf("Invalid ACCELERATION: %v", err))
					return
				}
				opts.Velocity, opts.Acceleration = uint16(vel), uint16(acc)
			}
			withTimeout(c, func(ctx context.Context) error {
				return s.Transport().ForceReference(ctx, opts)
			})
		}),
	}

	// LooseCmd drops the reference.
	LooseCmd = ishell.Cmd{
		Name:    "loose",
		Aliases: []string{"lr"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			st, err := sh.ShellFrom(c).Transport().ForceLooseReference()
			sh.PrintStatus(c, st, err)
		}),
	}

	// StartCmd starts the axis.
	StartCmd = ishell.Cmd{
		Name:    "start",
		Aliases: []string{"go"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			st, err := sh.ShellFrom(c).Transport().Start()
			sh.PrintStatus(c, st, err)
		}),
	}

	// StopCmd stops the axis and waits.
	StopCmd = ishell.Cmd{
		Name:    "stop",
		Aliases: []string{"halt"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			withTimeout(c, sh.ShellFrom(c).Transport().Stop)
		}),
	}

	// PrintCmd triggers a print test.
	PrintCmd = ishell.Cmd{
		Name:    "print",
		Aliases: []string{"pg"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			st, err := sh.ShellFrom(c).Transport().PrintGo()
			sh.PrintStatus(c, st, err)
		}),
	}

	// ResetErrorCmd acknowledges an error event.
	ResetErrorCmd = ishell.Cmd{
		Name:    "reset-error",
		Aliases: []string{"re"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			t := sh.ShellFrom(c).Transport()
			st, err := t.SerialReinicioDeErro().SetActivation(transport.Activated)
			sh.PrintStatus(c, st, err)
		}),
	}

	// SendCmd writes a record to the slave, by default the current program
	// followed by the axis configuration.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"tx"},
		Help:    "[RECORD]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			var records []store.Record
			if len(c.Args) > 0 {
				rec, err := s.Store().Record(c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				records = append(records, rec)
			} else {
				records = append(records, s.Store().Current(), &s.Store().Eixo)
			}
			var last datalink.Status
			for _, rec := range records {
				statuses, err := store.SendAll(s.Transport(), rec)
				if err != nil {
					sh.PrintStatus(c, 0, err)
					return
				}
				if len(statuses) > 0 {
					last = statuses[len(statuses)-1]
				}
			}
			sh.PrintStatus(c, last, nil)
		}),
	}
)

func init() {
	sh.AddCmds(
		&ParamsCmd,
		&GetCmd,
		&SetCmd,
		&StatusCmd,
		&ReferenceCmd,
		&LooseCmd,
		&StartCmd,
		&StopCmd,
		&PrintCmd,
		&ResetErrorCmd,
		&SendCmd,
	)
}
