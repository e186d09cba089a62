// Package store keeps the operator parameter records and persists them in
// a byte addressable EEPROM.
//
// Every record starts with a 16-bit signature followed by its fields in
// declaration order: words as two bytes little-endian, cursors as the
// three bytes current, start, end.
package store
