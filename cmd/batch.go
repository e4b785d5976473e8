package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/batch"
)

var (
	batchFile    string
	batchWorkers int
	batchOut     string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate many parameter sets from a file",
	Long: `Evaluate every parameter set in a YAML, JSON or Excel file.

YAML and JSON files hold a list of parameter objects; fields left out
keep their default values. Excel workbooks are read from the first
sheet: the header row names the fields (span, load, load_type,
material, ...) and every following row is one item.

Invalid items are reported and skipped; they never stop the run.

Examples:
  # Evaluate a list of beams
  structura batch --file beams.yaml

  # Read a workbook and write results back as a new workbook
  structura batch -f survey.xlsx --out results.xlsx --workers 8`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Input file (.yaml, .yml, .json or .xlsx) [required]")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent evaluations (default from config)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Write results to an Excel workbook")

	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	items, err := batch.ReadFile(batchFile)
	if err != nil {
		return err
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	outcomes, err := batch.Run(ctx, items, workers)
	if err != nil {
		return err
	}
	summary := batch.Summarize(outcomes)
	logger.Info("batch evaluated",
		zap.Int("items", len(items)),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)),
	)

	rule("BATCH ANALYSIS")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tSpan (m)\tLoad (kg)\tMaterial\tδ (mm)\tσ (MPa)\tStatus")
	for _, o := range outcomes {
		p := o.Parameters
		if !o.OK() {
			fmt.Fprintf(w, "  %d\t%g\t%g\t%s\t-\t-\tINVALID: %s\n", o.Index+1, p.Span, p.Load, p.MaterialID, firstLine(o.Error))
			continue
		}
		r := o.Result.Rounded()
		fmt.Fprintf(w, "  %d\t%g\t%g\t%s\t%.3f\t%.2f\t%s\n", o.Index+1, p.Span, p.Load, p.MaterialID, r.DeflectionMm, r.StressMPa, r.Status())
	}
	w.Flush()
	fmt.Println()

	section("SUMMARY:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Compliant:\t%d\n", summary.Compliant)
	fmt.Fprintf(w, "  Non-compliant:\t%d\n", summary.NonCompliant)
	fmt.Fprintf(w, "  Invalid:\t%d\n", summary.Invalid)
	w.Flush()
	fmt.Println()

	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return err
		}
		if err := batch.WriteWorkbook(f, outcomes); err != nil {
			f.Close()
			return fmt.Errorf("write workbook: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Results written to: %s\n", batchOut)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
