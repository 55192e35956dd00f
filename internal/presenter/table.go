package presenter

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// PrintTable formats and writes data as an aligned table.
// Header and rows are given as string slices.
func PrintTable(out io.Writer, header []string, rows [][]string) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	headerStr := ""
	separatorStr := ""
	for i, col := range header {
		headerStr += col
		// Separator line (ex: "-----") sized to the header cell.
		for range len(col) {
			separatorStr += "-"
		}
		if i < len(header)-1 {
			headerStr += "\t"
			separatorStr += "\t"
		}
	}
	fmt.Fprintln(w, headerStr)
	fmt.Fprintln(w, separatorStr)

	for _, row := range rows {
		rowStr := ""
		for i, cell := range row {
			rowStr += cell
			if i < len(row)-1 {
				rowStr += "\t"
			}
		}
		fmt.Fprintf(w, "%s\n", rowStr)
	}
	w.Flush()
}
