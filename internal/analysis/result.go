package analysis

import "math"

// Result holds the derived values of one evaluation
type Result struct {
	DeflectionMm    float64 `json:"deflection_mm" yaml:"deflection_mm"`
	StressMPa       float64 `json:"stress_mpa" yaml:"stress_mpa"`
	WindPressureKPa float64 `json:"wind_pressure_kpa" yaml:"wind_pressure_kpa"`
	SoilPressureKPa float64 `json:"soil_pressure_kpa" yaml:"soil_pressure_kpa"`
	WeightKg        int     `json:"weight_kg" yaml:"weight_kg"`
	IsCompliant     bool    `json:"is_compliant" yaml:"is_compliant"`
}

// Display precision
const (
	DeflectionDecimals = 3
	StressDecimals     = 2
	PressureDecimals   = 2
)

// Rounded returns a copy rounded for display. Round once, at the output
// boundary; never feed a rounded result back into a calculation.
func (r Result) Rounded() Result {
	return Result{
		DeflectionMm:    roundTo(r.DeflectionMm, DeflectionDecimals),
		StressMPa:       roundTo(r.StressMPa, StressDecimals),
		WindPressureKPa: roundTo(r.WindPressureKPa, PressureDecimals),
		SoilPressureKPa: roundTo(r.SoilPressureKPa, PressureDecimals),
		WeightKg:        r.WeightKg,
		IsCompliant:     r.IsCompliant,
	}
}

// Status is the dossier status line for the result
func (r Result) Status() string {
	if r.IsCompliant {
		return "STRUCTURALLY SOUND"
	}
	return "DESIGN ALERT: CRITICAL FAILURE"
}

// Finite reports whether every value is a finite number. Inputs that pass
// Validate can still overflow, e.g. a load near the float64 maximum.
func (r Result) Finite() bool {
	for _, v := range []float64{r.DeflectionMm, r.StressMPa, r.WindPressureKPa, r.SoilPressureKPa} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
