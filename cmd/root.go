package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/archive"
	"github.com/structura/structura/internal/config"
	"github.com/structura/structura/internal/logging"
	"github.com/structura/structura/internal/version"
)

var (
	configPath string
	verbose    bool

	// Loaded once per invocation by the root PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "structura",
	Short: "Structural Analysis Engine",
	Long: `structura - Structural Analysis Engine

A CLI tool for the preliminary check of simply supported beams.

From a span, a load and a section it computes:
  - Maximum deflection (point load at midspan or uniformly distributed)
  - Bending stress on the effective section area
  - Wind pressure at height and soil bearing pressure
  - Member self-weight
  - Compliance against the 5 mm deflection ceiling and material yield

Results can be printed, exported as audit dossiers, archived,
served over HTTP or explored in the live terminal calculator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   structura v%-45s║\n", version.Version)
		fmt.Println("  ║   Structural Analysis Engine                              ║")
		fmt.Printf("  ║   %s ©  %-31s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Deflection, stress, wind, soil and self-weight checks")
		fmt.Println("  for simply supported beams.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Point and uniformly distributed load analysis")
		fmt.Println("    • Seismic zone amplification and safety factors")
		fmt.Println("    • Text and PDF audit dossiers with a local archive")
		fmt.Println("    • Batch evaluation from YAML, JSON or Excel workbooks")
		fmt.Println("    • HTTP API and live terminal calculator")
		fmt.Println()
		fmt.Println("  Use 'structura --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// openArchive opens the configured archive, or returns nil when archiving
// is disabled
func openArchive() (*archive.Store, error) {
	if !cfg.ArchiveEnabled() {
		return nil, nil
	}
	store, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	logger.Debug("archive opened", zap.String("path", store.Path()))
	return store, nil
}

// rule prints a section heading in the report style used by every command
func rule(title string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     %s\n", title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

func section(title string) {
	fmt.Println(title)
	fmt.Println("───────────────────────────────────────────────────────────────")
}
