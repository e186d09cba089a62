// Package datalink performs CMPP master/slave transactions.
package datalink

// A transaction encodes one master frame on a numbered channel, sends it
// byte by byte through a ByteSink, then decodes the slave reply from a
// ByteSource until it completes or the timeout elapses. Bytes and time are
// injected (ByteSink, ByteSource, Clock) so a Datalink runs the same over a
// real serial Port, a websocket bridge or an emulated slave.
//
// Transactions are never retried here; the caller decides retry policy.
// At most one transaction is in flight per Datalink.
