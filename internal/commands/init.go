package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/statementhub/statementhub/internal/accounts"
	"github.com/statementhub/statementhub/internal/config"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new StatementHub workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "practice name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	cfg := config.Default(name)
	dataDir := filepath.Join(dir, cfg.DataDir)

	for _, d := range []string{dir, dataDir, filepath.Join(dir, "statements")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	configPath := filepath.Join(dir, "statementhub.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("workspace already initialized: %s exists", configPath)
	}
	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// The default chart covers both supported entity types.
	chart := append(accounts.DefaultChart("company"), accounts.DefaultChart("sole_trader")...)
	if err := accounts.NewService(chart).Save(dataDir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	fmt.Printf("Initialized StatementHub workspace at %s\n", dir)
	return nil
}
