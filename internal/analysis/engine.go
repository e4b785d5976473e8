package analysis

import (
	"math"

	"github.com/structura/structura/internal/catalog"
)

// Formula constants. Their values are part of the output contract.
const (
	Gravity         = 9.81  // m/s²
	AirDensity      = 1.225 // kg/m³
	DragCoefficient = 1.2
	KmhPerMs        = 3.6

	// DeflectionCeilingMm is a flat limit, independent of span
	DeflectionCeilingMm = 5.0

	// InertiaScale folds the /12 of b·h³/12 together with a /1000 unit normalization
	InertiaScale    = 12000.0
	DeflectionScale = 100.0

	// MinDivisor replaces a zero or negative span or footing area
	MinDivisor = 1e-6
)

// Evaluate computes the full result for p from scratch. It never fails:
// span and footing area are floored at MinDivisor, and unknown catalog keys
// fall back to the catalog defaults. Safe for concurrent use.
func Evaluate(p Parameters) Result {
	mat := material(p.MaterialID)
	zone := seismicZone(p.SeismicZone)
	shape := crossSection(p.ShapeID)

	span := floor(p.Span)
	footing := floor(p.FootingArea)

	inertia := MomentOfInertia(p.Width, p.Depth)
	raw := RawDeflection(p.LoadType, p.Load, span, mat.ElasticModulus, inertia)
	deflection := (raw * p.SafetyFactor * zone.Multiplier) / DeflectionScale

	area := EffectiveArea(p.Width, p.Depth, shape.Factor)
	stress := (p.Load * Gravity) / (area * 1_000_000)

	return Result{
		DeflectionMm:    deflection,
		StressMPa:       stress,
		WindPressureKPa: WindPressure(p.WindSpeed, p.Height),
		SoilPressureKPa: (p.Load * Gravity) / (footing * 1000),
		WeightKg:        int(math.Round(area * span * mat.Density)),
		IsCompliant:     IsCompliant(deflection, stress, mat.YieldStrength),
	}
}

// MomentOfInertia returns the normalized second moment of a width×depth
// rectangle (both in mm)
func MomentOfInertia(width, depth float64) float64 {
	return width * math.Pow(depth, 3) / InertiaScale
}

// RawDeflection is the simply supported midspan deflection before safety,
// seismic and unit factors. p is the total load; for a UDL it is spread as
// p/span over the span.
func RawDeflection(lt LoadType, p, span, e, inertia float64) float64 {
	if lt == UDL {
		w := p / span
		return (5 * w * math.Pow(span, 4)) / (384 * e * inertia)
	}
	return (p * math.Pow(span, 3)) / (48 * e * inertia)
}

// WindPressure is the simplified dynamic pressure in kPa for a wind speed
// in km/h at a structure height in m
func WindPressure(windSpeedKmh, height float64) float64 {
	v := windSpeedKmh / KmhPerMs
	exposure := 1 + height/100
	return (0.5 * AirDensity * math.Pow(v, 2) * DragCoefficient * exposure) / 1000
}

// EffectiveArea converts mm dimensions to m² and applies the shape factor
func EffectiveArea(width, depth, shapeFactor float64) float64 {
	return (width / 1000) * (depth / 1000) * shapeFactor
}

// IsCompliant applies the strict deflection ceiling and yield checks
func IsCompliant(deflectionMm, stressMPa, yieldStrength float64) bool {
	return deflectionMm < DeflectionCeilingMm && stressMPa < yieldStrength
}

func floor(v float64) float64 {
	if v <= 0 {
		return MinDivisor
	}
	return v
}

func material(id string) catalog.Material {
	if m, ok := catalog.LookupMaterial(id); ok {
		return m
	}
	m, _ := catalog.LookupMaterial(catalog.DefaultMaterial)
	return m
}

func seismicZone(level string) catalog.SeismicZone {
	if z, ok := catalog.LookupSeismicZone(level); ok {
		return z
	}
	z, _ := catalog.LookupSeismicZone(catalog.DefaultSeismicZone)
	return z
}

func crossSection(id string) catalog.Shape {
	if s, ok := catalog.LookupShape(id); ok {
		return s
	}
	s, _ := catalog.LookupShape(catalog.DefaultShape)
	return s
}
