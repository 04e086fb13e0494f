package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPatternsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect learned classification patterns",
	}

	cmd.AddCommand(newPatternsListCommand(configPath))
	cmd.AddCommand(newPatternsStatsCommand(configPath))

	return cmd
}

func newPatternsListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all saved patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			pats := a.patterns.All()
			if len(pats) == 0 {
				fmt.Println("No patterns saved.")
				return nil
			}
			for _, p := range pats {
				scope := p.EntityID
				if scope == "" {
					scope = "(global)"
				}
				fmt.Printf("%-12s  %-40s  %-4s %-24s  %-18s  used %dx\n",
					scope, p.DescriptionPattern, p.AccountCode, p.AccountName, p.TaxType, p.UsageCount)
			}
			return nil
		},
	}
}

func newPatternsStatsCommand(configPath *string) *cobra.Command {
	var entityID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show pattern usage statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			stats := a.patterns.StatsFor(entityID)
			fmt.Printf("Patterns: %d  Total uses: %d\n", stats.Total, stats.TotalUsage)
			for _, p := range stats.TopPatterns {
				fmt.Printf("  %-40s  %-4s %-24s  used %dx\n",
					p.DescriptionPattern, p.AccountCode, p.AccountName, p.UsageCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "restrict stats to one entity")

	return cmd
}
