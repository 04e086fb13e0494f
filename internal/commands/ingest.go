package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/statementhub/statementhub/internal/classify"
	"github.com/statementhub/statementhub/internal/ingest"
	"github.com/statementhub/statementhub/internal/parser"
)

func newIngestCommand(configPath *string) *cobra.Command {
	var (
		entityID      string
		entityType    string
		clientName    string
		submittedBy   string
		gstRegistered bool
		periodStart   string
		periodEnd     string
	)

	cmd := &cobra.Command{
		Use:   "ingest <statement-file>",
		Short: "Parse a bank statement, classify its transactions, and open a review job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			// Entity details from config unless overridden by flags.
			if e, ok := a.cfg.Entity(entityID); ok {
				if clientName == "" {
					clientName = e.Name
				}
				if entityType == "" {
					entityType = e.EntityType
				}
				if !cmd.Flags().Changed("gst-registered") {
					gstRegistered = e.GSTRegistered
				}
			}
			if entityType == "" {
				entityType = "company"
			}

			start, err := parsePeriodFlag(periodStart)
			if err != nil {
				return fmt.Errorf("invalid --period-start: %w", err)
			}
			end, err := parsePeriodFlag(periodEnd)
			if err != nil {
				return fmt.Errorf("invalid --period-end: %w", err)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading statement: %w", err)
			}

			classifier, err := classify.NewGeminiClassifier(cmd.Context(), a.cfg.Classifier.Model, a.log)
			if err != nil {
				return fmt.Errorf("creating classifier: %w", err)
			}
			orch := classify.NewOrchestrator(a.patterns, classifier, a.log)
			orch.SetBatchSize(a.cfg.Classifier.BatchSize)

			pipeline := ingest.NewPipeline(parser.DefaultRegistry(a.log), orch, a.review, a.chart, a.log)
			job, err := pipeline.Ingest(cmd.Context(), data, ingest.Params{
				EntityID:      entityID,
				EntityType:    entityType,
				ClientName:    clientName,
				FileName:      args[0],
				SubmittedBy:   submittedBy,
				Source:        "cli",
				GSTRegistered: gstRegistered,
				PeriodStart:   start,
				PeriodEnd:     end,
			})
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

	cmd.Flags().StringVar(&entityID, "entity", "", "entity ID (required)")
	_ = cmd.MarkFlagRequired("entity")
	cmd.Flags().StringVar(&entityType, "entity-type", "", "entity type (company or sole_trader)")
	cmd.Flags().StringVar(&clientName, "client", "", "client display name")
	cmd.Flags().StringVar(&submittedBy, "submitted-by", "", "who submitted the statement")
	cmd.Flags().BoolVar(&gstRegistered, "gst-registered", false, "entity is registered for GST")
	cmd.Flags().StringVar(&periodStart, "period-start", "", "only include transactions on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&periodEnd, "period-end", "", "only include transactions on or before this date (YYYY-MM-DD)")

	return cmd
}

func parsePeriodFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
