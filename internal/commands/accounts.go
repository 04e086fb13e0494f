package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCommand(configPath *string) *cobra.Command {
	var entityType string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			accts := a.chart.All()
			if entityType != "" {
				accts = a.chart.ForEntityType(entityType)
			}
			for _, acct := range accts {
				fmt.Printf("%-4s  %-28s  %-14s  %-4s  %s\n",
					acct.Code, acct.Name, acct.Section, acct.TaxCode, acct.EntityType)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entityType, "entity-type", "", "filter by entity type")

	return cmd
}
