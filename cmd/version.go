package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/structura/structura/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of structura",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Structural Analysis Engine")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
