package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ShapeSamples is the resolution of the exported deflected shape
const ShapeSamples = 50

// ExportDeflectedShape exports the deflected shape of the beam to an image
// file. The format follows the extension (.png, .svg, .pdf); anything else
// gets .png appended. It returns the path actually written.
func ExportDeflectedShape(data BeamDiagramData, filename string) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Deflected Shape (%s)", strings.ToUpper(string(data.LoadType)))
	p.X.Label.Text = "Position along span (m)"
	p.Y.Label.Text = "Deflection (mm)"

	// Undeformed beam axis
	axis, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.Span, Y: 0},
	})
	if err != nil {
		return "", err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Gray{Y: 128}
	axis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(axis)

	// Deflected shape, drawn downward
	samples := DeflectedShape(data, ShapeSamples)
	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i] = plotter.XY{X: s.X, Y: -s.Y}
	}
	curve, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	curve.LineStyle.Width = vg.Points(2)
	if data.IsCompliant {
		curve.LineStyle.Color = color.RGBA{R: 16, G: 185, B: 129, A: 255}
	} else {
		curve.LineStyle.Color = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	}
	p.Add(curve)
	p.Legend.Add("deflected", curve)
	p.Legend.Add("undeformed", axis)

	// Pinned supports
	supports, err := plotter.NewScatter(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.Span, Y: 0},
	})
	if err != nil {
		return "", err
	}
	supports.GlyphStyle.Shape = draw.TriangleGlyph{}
	supports.GlyphStyle.Color = color.Black
	supports.GlyphStyle.Radius = vg.Points(5)
	p.Add(supports)

	// Midspan label
	mid, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: data.Span / 2, Y: -data.MaxDeflectionMm}},
		Labels: []string{fmt.Sprintf("δmax = %.3f mm", data.MaxDeflectionMm)},
	})
	if err != nil {
		return "", err
	}
	p.Add(mid)

	width := 8 * vg.Inch
	height := 4 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}

	out := ImageFileName(filename)
	if err := p.Save(width, height, out); err != nil {
		return "", fmt.Errorf("save diagram: %w", err)
	}
	return out, nil
}

// ImageFileName returns filename with .png appended unless it already
// names a supported image format
func ImageFileName(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return filename
	default:
		return filename + ".png"
	}
}
