package cmd

import (
	"fmt"

	"access2csv/source"

	"github.com/spf13/cobra"
)

func newDriversCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List installed ODBC drivers",
		Long: `List the ODBC drivers registered on this machine. The driver that is used
for Access files when --driver is not given is marked with '*'.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			drivers, err := systemDrivers.Drivers()
			if err != nil {
				return fmt.Errorf("error listing ODBC drivers: %w", err)
			}
			if len(drivers) == 0 {
				fmt.Fprintln(a.stdout, "No ODBC drivers found.")
				return nil
			}
			picked, ok := source.PickAccessDriver(drivers)
			fmt.Fprintln(a.stdout, "Installed ODBC drivers:")
			for _, d := range drivers {
				mark := " "
				if ok && d == picked {
					mark = "*"
				}
				fmt.Fprintf(a.stdout, "%s %s\n", mark, d)
			}
			if !ok {
				fmt.Fprintln(a.stderr, "warning: no Microsoft Access driver among them")
			}
			return nil
		},
	}
}
