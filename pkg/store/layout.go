package store

import "fmt"

// NumPrograms is the number of axis programs kept in EEPROM.
const NumPrograms = 2

// SharedBase is where ConfiguracaoDoEixo and ConfiguracaoDoEquipamento
// are stored back to back.
const SharedBase = 200

var programBases = [NumPrograms]int{0, 100}

// UnknownProgramError indicates a program number without a slot.
type UnknownProgramError struct {
	Program int
}

// Error implements error.
func (e *UnknownProgramError) Error() string {
	return fmt.Sprintf("unknown program %d", e.Program)
}

// ProgramBase is the EEPROM address of the program.
func ProgramBase(program int) (int, error) {
	if program < 0 || program >= NumPrograms {
		return 0, &UnknownProgramError{Program: program}
	}
	return programBases[program], nil
}
