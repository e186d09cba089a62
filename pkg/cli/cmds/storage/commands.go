// Package storage provides shell commands editing the parameter records
// and their EEPROM image.
package storage

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/cmpp.go/pkg/cli/sh"
	"github.com/robotalks/cmpp.go/pkg/store"
)

type fieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// recordArg gets the record named by the n-th argument, or the current
// program.
func recordArg(c *ishell.Context, n int) (store.Record, bool) {
	s := sh.ShellFrom(c).Store()
	if len(c.Args) <= n {
		return s.Current(), true
	}
	rec, err := s.Record(c.Args[n])
	if err != nil {
		c.Err(err)
		return nil, false
	}
	return rec, true
}

// eachRecord runs fn on the named record, or all records for "all".
func eachRecord(c *ishell.Context, fn func(s *store.Store, name string) error) {
	s := sh.ShellFrom(c).Store()
	names := []string{"programa" + strconv.Itoa(s.Gui.Program)}
	if len(c.Args) > 0 {
		names = names[:0]
		if c.Args[0] == "all" {
			names = store.RecordNames()
		} else {
			names = append(names, c.Args[0])
		}
	}
	for _, name := range names {
		if err := fn(s, name); err != nil {
			c.Err(fmt.Errorf("%s: %v", name, err))
			return
		}
	}
	sh.Print(c, names, "OK")
}

var (
	// ProgramCmd shows or selects the current program.
	ProgramCmd = ishell.Cmd{
		Name:    "program",
		Aliases: []string{"prog"},
		Help:    "[N]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c).Store()
			if len(c.Args) > 0 {
				n, err := strconv.Atoi(c.Args[0])
				if err != nil {
					c.Err(fmt.Errorf("Invalid N: %v", err))
					return
				}
				if err := s.SelectProgram(n); err != nil {
					c.Err(err)
					return
				}
			}
			sh.Print(c, s.Gui.Program, strconv.Itoa(s.Gui.Program))
		},
	}

	// ShowCmd prints the fields of a record.
	ShowCmd = ishell.Cmd{
		Name:    "show",
		Aliases: []string{"ls"},
		Help:    "[RECORD]",
		Func: func(c *ishell.Context) {
			rec, ok := recordArg(c, 0)
			if !ok {
				return
			}
			fields := store.Fields(rec)
			if sh.ShellFrom(c).OutputJSON {
				values := make([]fieldValue, 0, len(fields))
				for _, f := range fields {
					values = append(values, fieldValue{Name: f.Name, Value: f.String()})
				}
				sh.Print(c, values, "")
				return
			}
			for _, f := range fields {
				mark := " "
				if _, ok := f.Param(); ok {
					mark = "*"
				}
				c.Printf("%s %-40s %s\n", mark, f.Name, f.String())
			}
		},
	}

	// EditCmd changes a field of a record in RAM.
	EditCmd = ishell.Cmd{
		Name:    "edit",
		Aliases: []string{"e"},
		Help:    "FIELD VALUE [RECORD]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("FIELD and VALUE required"))
				return
			}
			rec, ok := recordArg(c, 2)
			if !ok {
				return
			}
			if err := store.SetField(rec, c.Args[0], c.Args[1]); err != nil {
				c.Err(err)
				return
			}
			f, _ := store.FieldByName(rec, c.Args[0])
			sh.Print(c, &fieldValue{Name: f.Name, Value: f.String()}, f.String())
		},
	}

	// SaveCmd writes records to EEPROM.
	SaveCmd = ishell.Cmd{
		Name:    "save",
		Aliases: []string{"w"},
		Help:    "[RECORD|all]",
		Func: func(c *ishell.Context) {
			eachRecord(c, func(s *store.Store, name string) error {
				return s.SaveRecord(name)
			})
		},
	}

	// LoadCmd reads records from EEPROM.
	LoadCmd = ishell.Cmd{
		Name:    "load",
		Aliases: []string{"r"},
		Help:    "[RECORD|all]",
		Func: func(c *ishell.Context) {
			eachRecord(c, func(s *store.Store, name string) error {
				return s.LoadRecord(name)
			})
		},
	}

	// FactoryCmd restores factory values in RAM.
	FactoryCmd = ishell.Cmd{
		Name:    "factory",
		Aliases: []string{"reset"},
		Help:    "[RECORD|all]",
		Func: func(c *ishell.Context) {
			eachRecord(c, func(s *store.Store, name string) error {
				rec, err := s.Record(name)
				if err == nil {
					rec.Reset()
				}
				return err
			})
		},
	}
)

func init() {
	sh.AddCmds(
		&ProgramCmd,
		&ShowCmd,
		&EditCmd,
		&SaveCmd,
		&LoadCmd,
		&FactoryCmd,
	)
}
