package diagram

import (
	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/catalog"
)

// Point is a sample of the deflected shape: X along the span (m), Y the
// downward deflection (mm)
type Point struct {
	X float64
	Y float64
}

// BeamDiagramData holds what the diagrams need from one analysis
type BeamDiagramData struct {
	Span            float64 // m
	LoadKg          float64
	LoadType        analysis.LoadType
	MaxDeflectionMm float64
	StressMPa       float64
	MaterialName    string
	ShapeLabel      string
	IsCompliant     bool
}

// FromAnalysis collects diagram data from a parameter set and its result
func FromAnalysis(p analysis.Parameters, r analysis.Result) BeamDiagramData {
	data := BeamDiagramData{
		Span:            p.Span,
		LoadKg:          p.Load,
		LoadType:        p.LoadType,
		MaxDeflectionMm: r.DeflectionMm,
		StressMPa:       r.StressMPa,
		MaterialName:    p.MaterialID,
		ShapeLabel:      p.ShapeID,
		IsCompliant:     r.IsCompliant,
	}
	if m, ok := catalog.LookupMaterial(p.MaterialID); ok {
		data.MaterialName = m.Name
	}
	if s, ok := catalog.LookupShape(p.ShapeID); ok {
		data.ShapeLabel = s.Label
	}
	return data
}

// NormalizedDeflection is the elastic curve of a simply supported beam
// divided by its midspan value, at xi = x/L in [0, 1]
func NormalizedDeflection(lt analysis.LoadType, xi float64) float64 {
	if xi <= 0 || xi >= 1 {
		return 0
	}
	if lt == analysis.UDL {
		// w·x(L³ - 2Lx² + x³)/24EI over 5wL⁴/384EI
		return 16.0 / 5.0 * xi * (1 - 2*xi*xi + xi*xi*xi)
	}
	// Symmetric about midspan: P·x(3L² - 4x²)/48EI over PL³/48EI
	if xi > 0.5 {
		xi = 1 - xi
	}
	return xi * (3 - 4*xi*xi)
}

// DeflectedShape samples the deflected shape at n+1 evenly spaced points
func DeflectedShape(data BeamDiagramData, n int) []Point {
	if n < 2 {
		n = 2
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		xi := float64(i) / float64(n)
		pts[i] = Point{
			X: xi * data.Span,
			Y: NormalizedDeflection(data.LoadType, xi) * data.MaxDeflectionMm,
		}
	}
	return pts
}
