package cmd

import (
	"access2csv/dbexport"

	"github.com/spf13/cobra"
)

func newFieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <table> [db_path]",
		Short: "List all fields in the specified table",
		Args:  usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			if err := a.resolve(cmd, args[1:]); err != nil {
				return err
			}
			return a.withSource(func(s *session) error {
				cols, err := s.src.Columns(s.ctx, table)
				if err != nil {
					return &dbexport.ReadError{Object: table, Err: err}
				}
				return dbexport.PrintFields(a.stdout, table, cols)
			})
		},
	}
}
