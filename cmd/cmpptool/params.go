package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List device parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tADDR\tLOCATION\tDIMENSION\tACCESS")
			for n := range transport.Params {
				p := &transport.Params[n]
				loc := p.Location.String()
				if p.Location == transport.LocationBit {
					loc = fmt.Sprintf("D%d", p.Bit)
				}
				access := "rw"
				if p.ReadOnly {
					access = "ro"
				}
				fmt.Fprintf(w, "%s\t%v\t%s\t%v\t%s\n", p.Name, p.Addr, loc, p.Dimension, access)
			}
			return w.Flush()
		},
	}
}
