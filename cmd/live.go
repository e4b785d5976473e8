package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/archive"
	"github.com/structura/structura/internal/report"
	"github.com/structura/structura/internal/session"
	"github.com/structura/structura/internal/ui"
)

var liveFile string

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Open the live terminal calculator",
	Long: `Open an interactive calculator that re-evaluates on every keystroke.

The Analysis tab edits parameters, the Workflow tab tracks project
phases and the Compliance tab holds the site checklist. Press e to
export the current analysis as a text dossier into report.output_dir.

Examples:
  structura live
  structura live --file beam.yaml`,
	RunE: runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().StringVarP(&liveFile, "file", "f", "", "Start from parameters in a YAML or JSON file")
}

func runLive(cmd *cobra.Command, args []string) error {
	var opts []session.Option
	if liveFile != "" {
		p, err := parametersFromFlags(cmd, liveFile)
		if err != nil {
			return err
		}
		opts = append(opts, session.WithParameters(p))
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	// bubbletea owns the terminal; the status line reports exports instead
	model := ui.New(session.New(opts...), dossierExporter(cfg.Report.OutputDir, store, zap.NewNop()))
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// dossierExporter writes text dossiers into dir and archives them when
// store is non-nil
func dossierExporter(dir string, store *archive.Store, log *zap.Logger) ui.Exporter {
	return func(d report.Dossier) (string, error) {
		path := filepath.Join(dir, report.FileName(d.Title, string(report.FormatText)))
		if err := writeDossier(d, report.FormatText, path); err != nil {
			return "", err
		}
		if store != nil {
			if err := store.Save(context.Background(), d); err != nil {
				return "", fmt.Errorf("archive dossier: %w", err)
			}
		}
		log.Info("dossier exported", zap.String("id", d.ID), zap.String("path", path))
		return path, nil
	}
}
