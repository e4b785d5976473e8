package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/diagram"
	"github.com/structura/structura/internal/report"
)

var (
	analyzeFile       string
	analyzeDiagram    bool
	analyzeExportFile string
	analyzeJSON       bool
	analyzeSave       bool
	analyzeTitle      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a simply supported beam",
	Long: `Evaluate deflection, stress, wind pressure, soil pressure and
self-weight for one parameter set and check it for compliance.

A section is compliant when its maximum deflection is below 5 mm and
its bending stress is below the material yield strength.

Parameters start from the defaults (or from --file) and every flag
given on the command line overrides them.

Examples:
  # Default 12.5 m steel I-beam under 4500 kg at midspan
  structura analyze

  # Timber box section under a distributed load in seismic zone 3
  structura analyze --span 6 --load 800 --load-type udl -m timber --shape box --seismic-zone 3

  # Parameters from a file, with ASCII diagrams and a PNG plot
  structura analyze --file beam.yaml --diagram -o deflection.png

  # Machine readable output
  structura analyze -L 8 -P 2000 --json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addParameterFlags(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read parameters from a YAML or JSON file")
	analyzeCmd.Flags().BoolVar(&analyzeDiagram, "diagram", false, "Show ASCII beam and deflection diagrams")
	analyzeCmd.Flags().StringVarP(&analyzeExportFile, "output", "o", "", "Export the deflected shape to file (png, svg, pdf)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print parameters and result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Archive the analysis as a dossier")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Dossier title used with --save")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := parametersFromFlags(cmd, analyzeFile)
	if err != nil {
		return err
	}

	result := analysis.Evaluate(p)
	logger.Debug("analysis evaluated",
		zap.Float64("span", p.Span),
		zap.Float64("load", p.Load),
		zap.String("material", p.MaterialID),
		zap.Float64("deflection_mm", result.DeflectionMm),
		zap.Bool("compliant", result.IsCompliant),
	)

	if analyzeJSON {
		out, err := json.MarshalIndent(struct {
			Parameters analysis.Parameters `json:"parameters"`
			Result     analysis.Result     `json:"result"`
			Status     string              `json:"status"`
		}{p, result, result.Status()}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	} else {
		printAnalysis(p, result)
	}

	data := diagram.FromAnalysis(p, result)
	if analyzeDiagram && !analyzeJSON {
		fmt.Println(diagram.DrawBeamElevation(data))
		fmt.Println(diagram.DrawDeflectedShape(data))
		fmt.Println(diagram.DrawDeflectionGraph(data))
		fmt.Println()
		fmt.Println(diagram.DrawSummaryBox(result.Status(), []string{
			fmt.Sprintf("δ = %.3f mm", result.Rounded().DeflectionMm),
			fmt.Sprintf("σ = %.2f MPa", result.Rounded().StressMPa),
		}))
	}

	if analyzeExportFile != "" {
		path, err := diagram.ExportDeflectedShape(data, analyzeExportFile)
		if err != nil {
			return fmt.Errorf("export diagram: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Diagram exported to: %s\n", path)
	}

	if analyzeSave {
		store, err := openArchive()
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("archive is disabled; set archive.path in %s", configPath)
		}
		defer store.Close()

		d := report.New(analyzeTitle, p, time.Now())
		if err := store.Save(context.Background(), d); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Dossier archived: %s\n", d.ID)
	}
	return nil
}

func printAnalysis(p analysis.Parameters, result analysis.Result) {
	r := result.Rounded()
	d := report.Dossier{Parameters: p}

	rule("STRUCTURAL ANALYSIS - SIMPLY SUPPORTED BEAM")

	section("INPUT DATA:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Span (L):\t%g m\n", p.Span)
	fmt.Fprintf(w, "  Load (P):\t%g kg (%s)\n", p.Load, strings.ToUpper(string(p.LoadType)))
	fmt.Fprintf(w, "  Material:\t%s\n", d.MaterialName())
	fmt.Fprintf(w, "  Section (b × h):\t%g × %g mm (%s)\n", p.Width, p.Depth, p.ShapeID)
	fmt.Fprintf(w, "  Safety factor:\t%g\n", p.SafetyFactor)
	fmt.Fprintf(w, "  Seismic zone:\t%s\n", p.SeismicZone)
	fmt.Fprintf(w, "  Wind speed:\t%g km/h at %g m\n", p.WindSpeed, p.Height)
	fmt.Fprintf(w, "  Footing area:\t%g m²\n", p.FootingArea)
	w.Flush()
	fmt.Println()

	section("RESULTS:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Maximum deflection (δ):\t%.3f mm", r.DeflectionMm)
	if result.DeflectionMm >= analysis.DeflectionCeilingMm {
		fmt.Fprintf(w, " ⚠ (≥ %g mm)", analysis.DeflectionCeilingMm)
	} else {
		fmt.Fprintf(w, " ✓")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Bending stress (σ):\t%.2f MPa\n", r.StressMPa)
	fmt.Fprintf(w, "  Wind pressure:\t%.2f kPa\n", r.WindPressureKPa)
	fmt.Fprintf(w, "  Soil pressure:\t%.2f kPa\n", r.SoilPressureKPa)
	fmt.Fprintf(w, "  Self-weight:\t%d kg\n", r.WeightKg)
	w.Flush()
	fmt.Println()

	section("STATUS:")
	if r.IsCompliant {
		fmt.Printf("  ✓ %s\n", r.Status())
	} else {
		fmt.Printf("  ✗ %s\n", r.Status())
	}
	fmt.Println()
}
