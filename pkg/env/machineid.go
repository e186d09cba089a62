package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// MachineID identifies this host. The ID is hashed with the application
// name so the raw machine ID never leaves the host.
func MachineID() string {
	id, err := machineid.ProtectedID("cmpp")
	if err == nil {
		return id
	}
	glog.Warningf("machine id unavailable: %v", err)
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "cmpp"
}
