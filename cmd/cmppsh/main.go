package main

import (
	"github.com/robotalks/cmpp.go/pkg/cli/sh"
	"github.com/robotalks/cmpp.go/pkg/env"

	_ "github.com/robotalks/cmpp.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags(nil)
}

func main() {
	sh.Main()
}
