package diagram

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// GraphSamples is the number of points plotted by DrawDeflectionGraph; odd so
// midspan is sampled
const GraphSamples = 61

// DrawDeflectionGraph plots the deflected shape as an ASCII line graph.
// Deflection is drawn downward, so the curve sags like the beam.
func DrawDeflectionGraph(data BeamDiagramData) string {
	pts := DeflectedShape(data, GraphSamples-1)
	series := make([]float64, len(pts))
	for i, pt := range pts {
		series[i] = -pt.Y
	}

	return asciigraph.Plot(series,
		asciigraph.Height(8),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("deflection (mm) over L = %g m", data.Span)),
	)
}
