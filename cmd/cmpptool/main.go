package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cmpptool",
		Short: "Offline tool for CMPP parameter images",
		Long: `cmpptool creates, inspects and edits the EEPROM image holding the
axis programs and configuration of a CMPP panel. It also lists the device
parameters addressable over the serial link.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newParamsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
