package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// WritePDF renders the dossier as a single A4 page
func WritePDF(w io.Writer, d Dossier) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.Title, false)
	pdf.SetCreator("structura", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, heading)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Title: %s", d.Title))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Report ID: %s", d.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", d.CreatedAt.Format(DateLayout)))
	pdf.Ln(10)

	section := func(title string, lines []line) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range lines {
			pdf.CellFormat(70, 6, l.label, "B", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, l.value, "B", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}
	section("Analysis Parameters", d.parameterLines())
	section("Simulation Results", d.resultLines())

	pdf.SetFont("Helvetica", "B", 12)
	if d.Result.IsCompliant {
		pdf.SetTextColor(16, 185, 129)
	} else {
		pdf.SetTextColor(220, 38, 38)
	}
	pdf.Cell(0, 8, "Status: "+d.Result.Status())
	pdf.Ln(12)

	pdf.SetTextColor(113, 113, 122)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, engine)

	return pdf.Output(w)
}
