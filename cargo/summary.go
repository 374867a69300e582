package cargo

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// WriteSummary renders the compiler-artifact events of a build as a table,
// one row per reported target. Used in verbose mode only.
func WriteSummary(w io.Writer, msgs []Message) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Target", "Kind", "Output"})
	for _, msg := range msgs {
		if msg.Reason != reasonCompilerArtifact {
			continue
		}
		tbl.Append([]string{
			msg.Target.Name,
			strings.Join(msg.Target.Kind, ", "),
			strings.Join(msg.Filenames, "\n"),
		})
	}
	tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})
	tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	tbl.SetCenterSeparator("|")
	tbl.Render()
}
