package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/structura/structura/internal/analysis"
)

// addParameterFlags registers one flag per analysis field. Defaults are only
// shown in help; parametersFromFlags applies the flags the user changed.
func addParameterFlags(cmd *cobra.Command) {
	d := analysis.DefaultParameters()
	f := cmd.Flags()

	// Geometry and loading
	f.Float64P("span", "L", d.Span, "Beam span (m)")
	f.Float64P("load", "P", d.Load, "Applied load (kg)")
	f.String("load-type", string(d.LoadType), "Load distribution: point or udl")

	// Section
	f.StringP("material", "m", d.MaterialID, "Material ID (see 'structura catalog')")
	f.Float64P("depth", "d", d.Depth, "Section depth (mm)")
	f.Float64P("width", "b", d.Width, "Section width (mm)")
	f.String("shape", d.ShapeID, "Section shape ID: ibeam, box or solid")

	// Design factors
	f.Float64("safety-factor", d.SafetyFactor, "Safety factor applied to deflection")
	f.String("seismic-zone", d.SeismicZone, "Seismic zone level (1 - 4)")

	// Environment and foundation
	f.Float64("wind-speed", d.WindSpeed, "Design wind speed (km/h)")
	f.Float64("height", d.Height, "Structure height (m)")
	f.Float64("footing-area", d.FootingArea, "Footing area (m²)")
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// parametersFromFlags starts from the defaults, or from file when one is
// given, then applies every parameter flag set on the command line
func parametersFromFlags(cmd *cobra.Command, file string) (analysis.Parameters, error) {
	p := analysis.DefaultParameters()
	if file != "" {
		var err error
		if p, err = analysis.LoadFile(file); err != nil {
			return analysis.Parameters{}, err
		}
	}

	for _, field := range analysis.FieldNames {
		name := flagName(field)
		if !cmd.Flags().Changed(name) {
			continue
		}
		if err := p.SetField(field, cmd.Flags().Lookup(name).Value.String()); err != nil {
			return analysis.Parameters{}, err
		}
	}

	if err := p.Validate(); err != nil {
		return analysis.Parameters{}, err
	}
	return p, nil
}
