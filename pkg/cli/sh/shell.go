package sh

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
	"github.com/robotalks/cmpp.go/pkg/env"
	fx "github.com/robotalks/cmpp.go/pkg/framework"
	"github.com/robotalks/cmpp.go/pkg/store"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *env.Config
	Env    *env.Env

	runner *fx.Runner
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[offline] > "
)

var (
	// flags

	evalOnly    bool
	outputJSON  bool
	autoConnect = true

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.BoolVar(&autoConnect, "connect", autoConnect, "Connect the slave on start.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell with the parameter store loaded.
func New(conf *env.Config) (*Shell, error) {
	offline, err := conf.NewOfflineEnv()
	if err != nil {
		return nil, err
	}
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		Env:    offline,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s, nil
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Connected indicates the slave link is open.
func (s *Shell) Connected() bool {
	return s.runner != nil
}

// Transport returns the transport layer when connected.
func (s *Shell) Transport() *transport.TransportLayer {
	if s.runner == nil {
		return nil
	}
	return s.Env.Transport
}

// Store returns the parameter store.
func (s *Shell) Store() *store.Store {
	return s.Env.Store
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if !ShellFrom(c).Connected() {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// Print prints v as JSON in JSON mode, or text otherwise.
func Print(c *ishell.Context, v interface{}, text string) {
	if !ShellFrom(c).OutputJSON {
		c.Println(text)
		return
	}
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

type statusResult struct {
	Status     uint8  `json:"status"`
	Flags      string `json:"flags"`
	SlaveError string `json:"slave_error,omitempty"`
}

// PrintStatus prints the outcome of an operation returning a status.
// A NACK is printed with the status carried by it.
func PrintStatus(c *ishell.Context, st datalink.Status, err error) {
	var slaveErr *datalink.SlaveError
	if errors.As(err, &slaveErr) {
		Print(c, &statusResult{
			Status:     uint8(slaveErr.Status),
			Flags:      slaveErr.Status.String(),
			SlaveError: slaveErr.Code.String(),
		}, fmt.Sprintf("NACK %v: %v", slaveErr.Code, slaveErr.Status))
		return
	}
	if err != nil {
		c.Err(err)
		return
	}
	Print(c, &statusResult{Status: uint8(st), Flags: st.String()}, st.String())
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect opens the slave link and starts receiving. Records edited in
// RAM are kept. An open link is closed first, so reconnecting reuses the
// same device. When opening fails the shell is left offline.
func (s *Shell) Connect() error {
	wasOnline := s.runner != nil
	s.stop()
	online, err := s.Config.NewEnv()
	if err != nil {
		if wasOnline {
			if offErr := s.goOffline(); offErr != nil {
				log.Printf("offline store: %v", offErr)
			}
		}
		return err
	}
	carryRecords(online.Store, s.Env.Store)
	s.Env.Close()
	s.Env = online
	s.runner = fx.NewRunner().Go(online)
	s.Shell.SetPrompt(fmt.Sprintf("[%d] > ", online.Datalink.Channel))
	return nil
}

// Disconnect closes the slave link. Records edited in RAM are kept.
func (s *Shell) Disconnect() error {
	if s.runner == nil {
		return nil
	}
	s.stop()
	return s.goOffline()
}

// goOffline replaces the stopped env with an offline one.
func (s *Shell) goOffline() error {
	s.Shell.SetPrompt(unconnectedPrompt)
	offline, err := s.Config.NewOfflineEnv()
	if err != nil {
		return err
	}
	carryRecords(offline.Store, s.Env.Store)
	s.Env = offline
	return nil
}

func (s *Shell) stop() {
	if s.runner == nil {
		return
	}
	s.runner.Stop()
	// closing the link unblocks the pending read
	s.Env.Close()
	if err := s.runner.Wait(); err != nil {
		log.Printf("link stopped: %v", err)
	}
	s.runner = nil
}

func carryRecords(dst, src *store.Store) {
	dev := dst.Device
	*dst = *src
	dst.Device = dev
}

// Close disconnects and releases the parameter store.
func (s *Shell) Close() error {
	s.stop()
	return s.Env.Close()
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Close()
	if s.AutoConnect {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Link.URL)
		}
		if err := s.Connect(); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Link.URL, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Context gets the context of the connection, canceled on disconnect.
func (s *Shell) Context() context.Context {
	if s.runner == nil {
		return context.Background()
	}
	return s.runner.Context()
}

var (
	// ConnectCmd opens the slave link.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[URL]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Config.Link.URL = c.Args[0]
			}
			if err := s.Connect(); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd closes the slave link.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Disconnect(); err != nil {
				c.Err(err)
			}
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf, err := env.NewConfig()
	if err != nil {
		log.Fatalln(err)
	}
	s, err := New(conf)
	if err != nil {
		log.Fatalln(err)
	}
	s.WithAutoConnect(autoConnect).Run(flag.Args()...)
}
