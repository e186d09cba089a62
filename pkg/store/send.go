package store

import (
	"github.com/golang/glog"

	"github.com/robotalks/cmpp.go/pkg/cmpp/datalink"
	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
)

// Binding sends a record field to a device parameter.
type Binding struct {
	Param transport.ParamID
	Field Field
}

// Bindings lists the fields of rec which have a device parameter, in
// declaration order.
func Bindings(rec Record) []Binding {
	var bindings []Binding
	for _, f := range Fields(rec) {
		if id, ok := f.Param(); ok && !id.Param().ReadOnly {
			bindings = append(bindings, Binding{Param: id, Field: f})
		}
	}
	return bindings
}

// SendAll writes every bound field of rec to the device. It stops at the
// first error and returns the statuses of the parameters written so far.
func SendAll(t *transport.TransportLayer, rec Record) ([]datalink.Status, error) {
	bindings := Bindings(rec)
	statuses := make([]datalink.Status, 0, len(bindings))
	for _, b := range bindings {
		st, err := t.Set(b.Param, b.Field.Value())
		if err != nil {
			glog.Errorf("send %v: %v", b.Param, err)
			return statuses, err
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
