// Package transport reads and writes typed parameters of a CMPP slave.
//
// Every device parameter is described by an entry of Params: the word
// address, the part of the word it occupies and its physical dimension.
// Manipulators convert between user units (mm, mm/s, mm/s2, ms) and device
// words using the MechanicalProperties of the axis. Byte and bit writes
// never clobber the rest of the word.
package transport
