// Package all registers all shell commands.
package all

import (
	// command providers
	_ "github.com/robotalks/cmpp.go/pkg/cli/cmds/device"
	_ "github.com/robotalks/cmpp.go/pkg/cli/cmds/storage"
)
