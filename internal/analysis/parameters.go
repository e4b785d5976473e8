package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/structura/structura/internal/catalog"
)

// LoadType describes how the load is applied along the span
type LoadType string

const (
	PointLoad LoadType = "point" // Single load at midspan
	UDL       LoadType = "udl"   // Uniformly distributed over the span
)

// Valid reports whether the load type is known
func (lt LoadType) Valid() bool {
	return lt == PointLoad || lt == UDL
}

// Parameters is one analysis input set. It is a plain value: callers build a
// new one for every change instead of mutating the one they evaluated.
type Parameters struct {
	// Geometry and loading
	Span     float64  `json:"span" yaml:"span"`           // m
	Load     float64  `json:"load" yaml:"load"`           // kg
	LoadType LoadType `json:"load_type" yaml:"load_type"` // point or udl

	// Section
	MaterialID string  `json:"material" yaml:"material"`
	Depth      float64 `json:"depth" yaml:"depth"` // mm
	Width      float64 `json:"width" yaml:"width"` // mm
	ShapeID    string  `json:"shape" yaml:"shape"`

	// Design factors
	SafetyFactor float64 `json:"safety_factor" yaml:"safety_factor"`
	SeismicZone  string  `json:"seismic_zone" yaml:"seismic_zone"`

	// Environment and foundation
	WindSpeed   float64 `json:"wind_speed" yaml:"wind_speed"`     // km/h
	Height      float64 `json:"height" yaml:"height"`             // m
	FootingArea float64 `json:"footing_area" yaml:"footing_area"` // m²
}

// DefaultParameters returns the calculator's starting values
func DefaultParameters() Parameters {
	return Parameters{
		Span:         12.5,
		Load:         4500,
		LoadType:     PointLoad,
		MaterialID:   catalog.DefaultMaterial,
		Depth:        450,
		Width:        200,
		ShapeID:      catalog.DefaultShape,
		SafetyFactor: 1.5,
		SeismicZone:  catalog.DefaultSeismicZone,
		WindSpeed:    120,
		Height:       35,
		FootingArea:  4.5,
	}
}

// ValidationError lists every problem found in a parameter set
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid parameters: " + strings.Join(e.Problems, "; ")
}

// Validate checks ranges and reference-table keys. Evaluate does not call
// it; the CLI, API, batch runner and session do before evaluating.
func (p Parameters) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	numbers := []struct {
		name  string
		value float64
	}{
		{"span", p.Span},
		{"load", p.Load},
		{"depth", p.Depth},
		{"width", p.Width},
		{"safety_factor", p.SafetyFactor},
		{"wind_speed", p.WindSpeed},
		{"height", p.Height},
		{"footing_area", p.FootingArea},
	}
	for _, n := range numbers {
		if math.IsNaN(n.value) || math.IsInf(n.value, 0) {
			add("%s must be a finite number", n.name)
		}
	}

	if p.Span <= 0 {
		add("span must be positive (got %g)", p.Span)
	}
	if p.Load < 0 {
		add("load must not be negative (got %g)", p.Load)
	}
	if !p.LoadType.Valid() {
		add("load_type must be %q or %q (got %q)", PointLoad, UDL, p.LoadType)
	}
	if p.Depth <= 0 {
		add("depth must be positive (got %g)", p.Depth)
	}
	if p.Width <= 0 {
		add("width must be positive (got %g)", p.Width)
	}
	if p.SafetyFactor <= 0 {
		add("safety_factor must be positive (got %g)", p.SafetyFactor)
	}
	if p.WindSpeed < 0 {
		add("wind_speed must not be negative (got %g)", p.WindSpeed)
	}
	if p.Height < 0 {
		add("height must not be negative (got %g)", p.Height)
	}
	// Zero is floored by the engine, so only negative footing areas are rejected
	if p.FootingArea < 0 {
		add("footing_area must not be negative (got %g)", p.FootingArea)
	}

	if _, ok := catalog.LookupMaterial(p.MaterialID); !ok {
		add("unknown material %q", p.MaterialID)
	}
	if _, ok := catalog.LookupSeismicZone(p.SeismicZone); !ok {
		add("unknown seismic_zone %q", p.SeismicZone)
	}
	if _, ok := catalog.LookupShape(p.ShapeID); !ok {
		add("unknown shape %q", p.ShapeID)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
