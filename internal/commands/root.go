package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statementhub/statementhub/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "statementhub",
		Short:   "Bank statement ingestion and transaction coding for accounting practices",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "statementhub.yaml", "path to config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newIngestCommand(&configPath))
	rootCmd.AddCommand(newReviewCommand(&configPath))
	rootCmd.AddCommand(newPatternsCommand(&configPath))
	rootCmd.AddCommand(newAccountsCommand(&configPath))

	return rootCmd
}
