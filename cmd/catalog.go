package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/structura/structura/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List materials, seismic zones and section shapes",
	Long: `Print the reference tables the engine evaluates against.

Use the ID column values with the --material, --zone and --shape flags
of the analyze command.`,
	Run: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) {
	rule("STRUCTURA REFERENCE CATALOG")

	section("MATERIALS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tName\tE (GPa)\tYield (MPa)\tDensity (kg/m³)")
	for _, m := range catalog.Materials {
		def := ""
		if m.ID == catalog.DefaultMaterial {
			def = " *"
		}
		fmt.Fprintf(w, "  %s%s\t%s\t%g\t%g\t%g\n", m.ID, def, m.Name, m.ElasticModulus, m.YieldStrength, m.Density)
	}
	w.Flush()
	fmt.Println()

	section("SEISMIC ZONES:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Level\tLabel\tMultiplier")
	for _, z := range catalog.SeismicZones {
		fmt.Fprintf(w, "  %s\t%s\t×%.2f\n", z.Level, z.Label, z.Multiplier)
	}
	w.Flush()
	fmt.Println()

	section("SECTION SHAPES:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tLabel\tArea factor")
	for _, s := range catalog.Shapes {
		fmt.Fprintf(w, "  %s\t%s\t%.2f\n", s.ID, s.Label, s.Factor)
	}
	w.Flush()
	fmt.Println()
	fmt.Println("  * default material")
	fmt.Println()
}
