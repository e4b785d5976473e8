package report

import (
	"bufio"
	"fmt"
	"io"
)

const (
	heading   = "STRUCTURA PROFESSIONAL ENGINEERING REPORT"
	separator = "------------------------------------------"
	engine    = "ENGINE: LOCAL STRUCTURA RELAY (OFFLINE)"

	// DateLayout formats the dossier timestamp
	DateLayout = "2006-01-02 15:04:05"
)

// WriteText writes the plain-text dossier
func WriteText(w io.Writer, d Dossier) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, heading)
	fmt.Fprintf(bw, "REPORT ID: %s\n", d.ID)
	fmt.Fprintf(bw, "DATE: %s\n", d.CreatedAt.Format(DateLayout))
	fmt.Fprintln(bw, separator)

	fmt.Fprintln(bw, "ANALYSIS PARAMETERS:")
	for _, l := range d.parameterLines() {
		fmt.Fprintf(bw, "- %s: %s\n", l.label, l.value)
	}
	fmt.Fprintln(bw, separator)

	fmt.Fprintln(bw, "SIMULATION RESULTS:")
	for _, l := range d.resultLines() {
		fmt.Fprintf(bw, "- %s: %s\n", l.label, l.value)
	}
	fmt.Fprintln(bw, separator)

	fmt.Fprintf(bw, "STATUS: %s\n", d.Result.Status())
	fmt.Fprintln(bw, separator)
	fmt.Fprint(bw, engine)

	return bw.Flush()
}
