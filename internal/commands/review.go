package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statementhub/statementhub/internal/model"
)

func newReviewCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect and work review jobs",
	}

	cmd.AddCommand(newReviewListCommand(configPath))
	cmd.AddCommand(newReviewShowCommand(configPath))
	cmd.AddCommand(newReviewConfirmCommand(configPath))
	cmd.AddCommand(newReviewAcceptAllCommand(configPath))
	cmd.AddCommand(newReviewSubmitCommand(configPath))

	return cmd
}

func newReviewListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List review jobs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			jobs, err := a.review.List()
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				fmt.Println("No review jobs.")
				return nil
			}

			for _, job := range jobs {
				fmt.Printf("%-36s  %-16s  %-24s  %3d txns  %3d%%  %s\n",
					job.ID, job.Status, job.ClientName,
					job.TotalTransactions, job.ProgressPercent(), job.FileName)
			}
			return nil
		},
	}
}

func newReviewShowCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show a review job and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			job, err := a.review.Get(args[0])
			if err != nil {
				return err
			}

			printJobSummary(job)
			fmt.Println()
			for _, txn := range job.Transactions {
				code, name, tax := txn.SuggestedCode, txn.SuggestedName, txn.SuggestedTaxType
				mark := " "
				if txn.Confirmed {
					code, name, tax = txn.ConfirmedCode, txn.ConfirmedName, txn.ConfirmedTaxType
					mark = "*"
				}
				fmt.Printf("%s %-36s  %s  %10s  %-4s %-24s  %-18s  conf %d\n",
					mark, txn.ID, txn.Date.Format("2006-01-02"),
					txn.Amount.StringFixed(2), code, name, tax, txn.Confidence)
				if txn.Reasoning != "" {
					fmt.Printf("    %s\n", txn.Reasoning)
				}
			}
			return nil
		},
	}
}

func newReviewConfirmCommand(configPath *string) *cobra.Command {
	var (
		accountCode string
		accountName string
		taxLabel    string
	)

	cmd := &cobra.Command{
		Use:   "confirm <job-id> <transaction-id>",
		Short: "Confirm one transaction's coding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			taxType, ok := model.ParseTaxType(taxLabel)
			if !ok {
				return fmt.Errorf("unknown tax type %q", taxLabel)
			}
			if !a.chart.Exists(accountCode) {
				return fmt.Errorf("unknown account code %q", accountCode)
			}
			if accountName == "" {
				acct, _ := a.chart.Get(accountCode)
				accountName = acct.Name
			}

			job, err := a.review.Confirm(args[0], args[1], accountCode, accountName, taxType)
			if err != nil {
				return err
			}
			if err := a.flush(); err != nil {
				return err
			}

			printJobSummary(job)
			return nil
		},
	}

	cmd.Flags().StringVar(&accountCode, "code", "", "account code (required)")
	_ = cmd.MarkFlagRequired("code")
	cmd.Flags().StringVar(&accountName, "name", "", "account name (defaults to the chart entry)")
	cmd.Flags().StringVar(&taxLabel, "tax", string(model.TaxBASExcluded), "tax type label")

	return cmd
}

func newReviewAcceptAllCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "accept-all <job-id>",
		Short: "Accept every remaining suggested coding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			job, err := a.review.AcceptAll(args[0])
			if err != nil {
				return err
			}
			if err := a.flush(); err != nil {
				return err
			}

			printJobSummary(job)
			return nil
		},
	}
}

func newReviewSubmitCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <job-id>",
		Short: "Complete a fully confirmed review job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			job, err := a.review.Submit(args[0])
			if err != nil {
				return err
			}
			if err := a.flush(); err != nil {
				return err
			}

			fmt.Printf("Job %s completed at %s\n", job.ID, job.CompletedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func printJobSummary(job *model.ReviewJob) {
	fmt.Printf("Job %s  [%s]\n", job.ID, job.Status)
	fmt.Printf("  Client:   %s (%s)\n", job.ClientName, job.EntityID)
	fmt.Printf("  File:     %s\n", job.FileName)
	fmt.Printf("  Account:  %s %s %s\n", job.Metadata.AccountName, job.Metadata.BSB, job.Metadata.AccountNumber)
	fmt.Printf("  Progress: %d/%d confirmed (%d flagged, %d%%)\n",
		job.ConfirmedCount, job.TotalTransactions, job.FlaggedCount, job.ProgressPercent())
}
