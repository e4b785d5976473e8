package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/structura/structura/internal/archive"
	"github.com/structura/structura/internal/report"
)

var (
	historyLimit int
	historyID    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or show archived dossiers",
	Long: `List the most recent archived dossiers, or print one by ID.

Examples:
  # Ten most recent dossiers
  structura history --limit 10

  # Print one dossier as text
  structura history --id 3F9A0C21B`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", archive.DefaultLimit, "Number of dossiers to list")
	historyCmd.Flags().StringVar(&historyID, "id", "", "Print the dossier with this ID")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("archive is disabled")
	}
	defer store.Close()

	ctx := context.Background()

	if historyID != "" {
		d, err := store.Get(ctx, historyID)
		if err != nil {
			return err
		}
		return report.WriteText(os.Stdout, d)
	}

	dossiers, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	rule("ARCHIVED DOSSIERS")

	if len(dossiers) == 0 {
		fmt.Println("  No dossiers archived yet.")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tCreated\tTitle\tMaterial\tStatus")
	for _, d := range dossiers {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			d.ID,
			d.CreatedAt.Local().Format("2006-01-02 15:04"),
			d.Title,
			d.MaterialName(),
			d.Result.Status(),
		)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  Showing %d of %d (%s)\n", len(dossiers), total, store.Path())
	fmt.Println()
	return nil
}
