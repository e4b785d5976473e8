package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/report"
)

var (
	reportFile   string
	reportFormat string
	reportTitle  string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export an audit dossier for one analysis",
	Long: `Evaluate a parameter set and write it as a text or PDF audit dossier.

The dossier carries a report ID, the export time, the material and
loading inputs, the computed results and the compliance status. When
archiving is enabled the dossier is also stored in the archive.

Examples:
  # Text dossier with the default title in the current directory
  structura report

  # PDF dossier for a timber beam
  structura report -m timber --span 4 --format pdf --title "Deck Joist"

  # Write to an explicit path
  structura report --file beam.yaml --out audits/beam.txt`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	addParameterFlags(reportCmd)

	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "Read parameters from a YAML or JSON file")
	reportCmd.Flags().StringVar(&reportFormat, "format", "txt", "Dossier format: txt or pdf")
	reportCmd.Flags().StringVarP(&reportTitle, "title", "t", "", "Dossier title (default from config)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Output path (default <report.output_dir>/Structura_Audit_<title>.<format>)")
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return err
	}
	p, err := parametersFromFlags(cmd, reportFile)
	if err != nil {
		return err
	}

	title := reportTitle
	if title == "" {
		title = cfg.Report.Title
	}
	d := report.New(title, p, time.Now())

	path := reportOut
	if path == "" {
		path = filepath.Join(cfg.Report.OutputDir, report.FileName(d.Title, string(format)))
	}
	if err := writeDossier(d, format, path); err != nil {
		return err
	}
	logger.Info("dossier exported",
		zap.String("id", d.ID),
		zap.String("path", path),
		zap.String("format", string(format)),
	)
	fmt.Printf("Dossier %s written to: %s\n", d.ID, path)
	fmt.Printf("Status: %s\n", d.Result.Status())

	store, err := openArchive()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if err := store.Save(context.Background(), d); err != nil {
			return err
		}
		fmt.Printf("Archived in: %s\n", store.Path())
	}
	return nil
}

// writeDossier renders d fully before creating path so a failed render
// leaves no partial file
func writeDossier(d report.Dossier, format report.Format, path string) error {
	var buf bytes.Buffer
	if err := report.Write(&buf, d, format); err != nil {
		return fmt.Errorf("render dossier: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
