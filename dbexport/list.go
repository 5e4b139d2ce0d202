package dbexport

import (
	"fmt"
	"io"
	"text/tabwriter"

	"access2csv/source"
)

// PrintObjects writes the table list, and the view list when views is not nil.
func PrintObjects(w io.Writer, tables, views []string) {
	fmt.Fprintln(w, "Tables in the database:")
	for _, t := range tables {
		fmt.Fprintln(w, t)
	}
	if views == nil {
		return
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Views in the database:")
	for _, v := range views {
		fmt.Fprintln(w, v)
	}
}

// PrintFields writes one line per column of table.
func PrintFields(w io.Writer, table string, cols []source.Column) error {
	fmt.Fprintf(w, "Fields in table '%s':\n", table)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Column Name\tType\tNullable")
	for _, c := range cols {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Type, c.Nullable)
	}
	return tw.Flush()
}
