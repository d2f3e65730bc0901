package arcade

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Print writes the table as aligned columns.
func (t *Table) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tNAME\tTITLE\tALIASES")
	for _, r := range t.routes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Path, r.Name, r.DisplayTitle(), strings.Join(r.Alias, ","))
	}
	return tw.Flush()
}
