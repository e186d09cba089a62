// Package frame provides the CMPP v1 frame codec.
package frame

// A CMPP frame carries exactly four payload bytes between a master (the
// operator panel or host) and a slave (the motion controller) over an
// asynchronous serial line. On the wire a frame is wrapped as
//
//	ESC <start> <payload...> ESC ETX <checksum>
//
// where every ESC inside payload or checksum is doubled. The checksum makes
// the sum of start byte, payload and ETX equal to zero modulo 256.
//
// The codec is pure: it never performs I/O and never allocates on the
// encoding path. See package datalink for transactions.
