package cmd

import (
	"access2csv/dbexport"

	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	tablesCmd := &cobra.Command{
		Use:   "tables [db_path]",
		Short: "List all tables in the database",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.resolve(cmd, args); err != nil {
				return err
			}
			return a.withSource(func(s *session) error {
				tables, views, err := s.src.ListObjects(s.ctx, a.cfg.IncludeViews)
				if err != nil {
					return &dbexport.ReadError{Err: err}
				}
				if !a.cfg.IncludeViews {
					views = nil
				} else if views == nil {
					views = []string{}
				}
				dbexport.PrintObjects(a.stdout, tables, views)
				return nil
			})
		},
	}
	tablesCmd.Flags().BoolVar(&a.cfg.IncludeViews, "include-views", false, "Also list views (saved select queries)")
	return tablesCmd
}
