package transport

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
)

// ErrReadOnly indicates a write to a read-only parameter.
var ErrReadOnly = errors.New("parameter is read-only")

// Link is the word level access to a slave, implemented by
// *datalink.Datalink.
type Link interface {
	GetWord16(addr datalink.WordAddress) (uint16, error)
	SetWord16(addr datalink.WordAddress, word uint16) (datalink.Status, error)
	SetBitmask(addr datalink.WordAddress, mask uint16) (datalink.Status, error)
	ResetBitmask(addr datalink.WordAddress, mask uint16) (datalink.Status, error)
}

// TransportLayer reads and writes typed device parameters.
type TransportLayer struct {
	Link      Link
	Mechanics MechanicalProperties
	// Retries is the number of times a transaction is re-issued after a
	// link error. Slave errors are never retried.
	Retries int
}

// New creates a TransportLayer.
func New(link Link, mp MechanicalProperties) *TransportLayer {
	return &TransportLayer{Link: link, Mechanics: mp}
}

func (t *TransportLayer) retry(what fmt.Stringer, op func() error) error {
	for n := 0; ; n++ {
		err := op()
		if err == nil || !datalink.IsLinkError(err) || n >= t.Retries {
			return err
		}
		glog.Warningf("%v: retry %d/%d after: %v", what, n+1, t.Retries, err)
	}
}

func (t *TransportLayer) getWord(addr datalink.WordAddress) (w uint16, err error) {
	err = t.retry(addr, func() (err error) {
		w, err = t.Link.GetWord16(addr)
		return
	})
	return
}

func (t *TransportLayer) setWord(addr datalink.WordAddress, w uint16) (st datalink.Status, err error) {
	err = t.retry(addr, func() (err error) {
		st, err = t.Link.SetWord16(addr, w)
		return
	})
	return
}

func (t *TransportLayer) setBits(addr datalink.WordAddress, mask uint16, set bool) (st datalink.Status, err error) {
	err = t.retry(addr, func() (err error) {
		if set {
			st, err = t.Link.SetBitmask(addr, mask)
		} else {
			st, err = t.Link.ResetBitmask(addr, mask)
		}
		return
	})
	return
}

// Word creates the manipulator of a word parameter.
func (t *TransportLayer) Word(id ParamID) WordManipulator {
	return WordManipulator{t: t, p: id.Param()}
}

// Byte creates the manipulator of a byte parameter.
func (t *TransportLayer) Byte(id ParamID) ByteManipulator {
	return ByteManipulator{t: t, p: id.Param()}
}

// Binary creates the manipulator of a bit parameter.
func (t *TransportLayer) Binary(id ParamID) BinaryManipulator {
	return BinaryManipulator{t: t, p: id.Param()}
}

// Get reads any parameter as an integer in user units. Bits read as 0 or 1.
func (t *TransportLayer) Get(id ParamID) (int64, error) {
	if !id.Valid() {
		return 0, fmt.Errorf("invalid parameter %v", id)
	}
	switch id.Param().Location {
	case LocationByteLow, LocationByteHigh:
		v, err := t.Byte(id).Get()
		return int64(v), err
	case LocationBit:
		v, err := t.Binary(id).Get()
		if v {
			return 1, err
		}
		return 0, err
	}
	return t.Word(id).Get()
}

// Set writes any parameter from an integer in user units.
func (t *TransportLayer) Set(id ParamID, value int64) (datalink.Status, error) {
	if !id.Valid() {
		return 0, fmt.Errorf("invalid parameter %v", id)
	}
	p := id.Param()
	switch p.Location {
	case LocationByteLow, LocationByteHigh:
		if value < 0 || value > 0xff {
			return 0, &OutOfRangeError{Value: value, Dimension: p.Dimension}
		}
		return t.Byte(id).Set(uint8(value))
	case LocationBit:
		return t.Binary(id).Set(value != 0)
	}
	return t.Word(id).Set(value)
}
