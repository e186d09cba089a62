package store

import (
	"fmt"
	"strconv"
	"strings"
)

// GuiState is the operator state which is never persisted.
type GuiState struct {
	Program int
}

// Store holds the parameter records in RAM and persists them.
type Store struct {
	Device      EEPROM
	Programs    [NumPrograms]ArquivoDeEixo
	Eixo        ConfiguracaoDoEixo
	Equipamento ConfiguracaoDoEquipamento
	Gui         GuiState
}

// New creates a Store with factory values.
func New(dev EEPROM) *Store {
	s := &Store{Device: dev}
	for n := range s.Programs {
		s.Programs[n].Reset()
	}
	s.Eixo.Reset()
	s.Equipamento.Reset()
	return s
}

// Current is the selected program.
func (s *Store) Current() *ArquivoDeEixo {
	return &s.Programs[s.Gui.Program]
}

// SelectProgram changes the selected program.
func (s *Store) SelectProgram(program int) error {
	if _, err := ProgramBase(program); err != nil {
		return err
	}
	s.Gui.Program = program
	return nil
}

// LoadProgram loads a program from EEPROM.
func (s *Store) LoadProgram(program int) error {
	base, err := ProgramBase(program)
	if err != nil {
		return err
	}
	_, _, err = Load(s.Device, base, &s.Programs[program])
	return err
}

// SaveProgram saves a program to EEPROM.
func (s *Store) SaveProgram(program int) error {
	base, err := ProgramBase(program)
	if err != nil {
		return err
	}
	_, _, err = Save(s.Device, base, &s.Programs[program])
	return err
}

// LoadConfig loads the shared configuration records.
func (s *Store) LoadConfig() error {
	next, _, err := Load(s.Device, SharedBase, &s.Eixo)
	if err != nil {
		return err
	}
	_, _, err = Load(s.Device, next, &s.Equipamento)
	return err
}

// SaveConfig saves the shared configuration records.
func (s *Store) SaveConfig() error {
	next, _, err := Save(s.Device, SharedBase, &s.Eixo)
	if err != nil {
		return err
	}
	_, _, err = Save(s.Device, next, &s.Equipamento)
	return err
}

// LoadAll loads every record.
func (s *Store) LoadAll() error {
	for n := range s.Programs {
		if err := s.LoadProgram(n); err != nil {
			return err
		}
	}
	return s.LoadConfig()
}

// SaveAll saves every record.
func (s *Store) SaveAll() error {
	for n := range s.Programs {
		if err := s.SaveProgram(n); err != nil {
			return err
		}
	}
	return s.SaveConfig()
}

// RecordNames lists the names accepted by Record.
func RecordNames() []string {
	names := make([]string, 0, NumPrograms+2)
	for n := 0; n < NumPrograms; n++ {
		names = append(names, "programa"+strconv.Itoa(n))
	}
	return append(names, "eixo", "equipamento")
}

// Record finds a record by name: programaN, eixo or equipamento.
func (s *Store) Record(name string) (Record, error) {
	switch name {
	case "eixo":
		return &s.Eixo, nil
	case "equipamento":
		return &s.Equipamento, nil
	}
	if strings.HasPrefix(name, "programa") {
		n, err := strconv.Atoi(strings.TrimPrefix(name, "programa"))
		if err == nil {
			if _, err = ProgramBase(n); err != nil {
				return nil, err
			}
			return &s.Programs[n], nil
		}
	}
	return nil, fmt.Errorf("unknown record %q", name)
}

// LoadRecord loads a record by name. The configuration records are
// stored together, so loading one of them loads both.
func (s *Store) LoadRecord(name string) error {
	return s.persist(name, s.LoadProgram, s.LoadConfig)
}

// SaveRecord saves a record by name. The configuration records are
// stored together, so saving one of them saves both.
func (s *Store) SaveRecord(name string) error {
	return s.persist(name, s.SaveProgram, s.SaveConfig)
}

func (s *Store) persist(name string, program func(int) error, config func() error) error {
	if _, err := s.Record(name); err != nil {
		return err
	}
	switch name {
	case "eixo", "equipamento":
		return config()
	}
	n, _ := strconv.Atoi(strings.TrimPrefix(name, "programa"))
	return program(n)
}
