// Package ingest runs the statement pipeline end to end: extract page
// text, parse, filter to the statement period, classify, and open a
// review job.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/statementhub/statementhub/internal/accounts"
	"github.com/statementhub/statementhub/internal/classify"
	"github.com/statementhub/statementhub/internal/extract"
	"github.com/statementhub/statementhub/internal/model"
	"github.com/statementhub/statementhub/internal/parser"
	"github.com/statementhub/statementhub/internal/review"
)

// ErrNoTransactions is returned when a statement parses but yields no
// transactions inside the requested period.
var ErrNoTransactions = errors.New("no transactions found within the selected period")

// Params carries the ingestion context for one document.
type Params struct {
	EntityID      string
	EntityType    string
	ClientName    string
	FileName      string
	SubmittedBy   string
	Source        string
	GSTRegistered bool

	// Optional period bounds; transactions outside are excluded.
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Pipeline wires the parser registry, classifier, chart of accounts,
// and review service into one ingestion path.
type Pipeline struct {
	registry     *parser.Registry
	orchestrator *classify.Orchestrator
	review       *review.Service
	chart        *accounts.Service
	log          zerolog.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(reg *parser.Registry, orch *classify.Orchestrator, rev *review.Service, chart *accounts.Service, log zerolog.Logger) *Pipeline {
	return &Pipeline{registry: reg, orchestrator: orch, review: rev, chart: chart, log: log}
}

// Ingest processes one statement document and returns the created
// review job.
func (p *Pipeline) Ingest(ctx context.Context, data []byte, params Params) (*model.ReviewJob, error) {
	pages, err := extract.Pages(data)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", params.FileName, err)
	}

	stmt, err := p.registry.Parse(pages)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", params.FileName, err)
	}

	txns := p.filterPeriod(stmt.Transactions, params)
	if len(txns) == 0 {
		return nil, fmt.Errorf("%s: %w", params.FileName, ErrNoTransactions)
	}

	if diff := parser.Reconcile(stmt); !diff.IsZero() {
		p.log.Warn().
			Str("file", params.FileName).
			Str("difference", diff.StringFixed(2)).
			Msg("statement does not reconcile against closing balance")
	}

	classified := p.orchestrator.Classify(ctx, txns, classify.Params{
		EntityID:      params.EntityID,
		EntityType:    params.EntityType,
		GSTRegistered: params.GSTRegistered,
		ChartPrompt:   p.chart.Prompt(params.EntityType),
	})

	job, err := p.review.CreateJob(review.CreateJobParams{
		EntityID:      params.EntityID,
		ClientName:    params.ClientName,
		FileName:      params.FileName,
		SubmittedBy:   params.SubmittedBy,
		Source:        params.Source,
		GSTRegistered: params.GSTRegistered,
		Metadata:      stmt.Metadata,
		Transactions:  classified,
	})
	if err != nil {
		return nil, fmt.Errorf("creating review job: %w", err)
	}

	p.log.Info().
		Str("file", params.FileName).
		Str("bank", stmt.Bank).
		Str("job_id", job.ID).
		Int("transactions", job.TotalTransactions).
		Int("auto_confirmed", job.ConfirmedCount).
		Msg("statement ingested")
	return job, nil
}

// filterPeriod drops transactions outside the requested period bounds.
func (p *Pipeline) filterPeriod(txns []model.RawTransaction, params Params) []model.RawTransaction {
	if params.PeriodStart.IsZero() && params.PeriodEnd.IsZero() {
		return txns
	}

	var kept []model.RawTransaction
	excluded := 0
	for _, txn := range txns {
		if !params.PeriodStart.IsZero() && txn.Date.Before(params.PeriodStart) {
			excluded++
			continue
		}
		if !params.PeriodEnd.IsZero() && txn.Date.After(params.PeriodEnd) {
			excluded++
			continue
		}
		kept = append(kept, txn)
	}
	if excluded > 0 {
		p.log.Info().
			Int("total", len(txns)).
			Int("kept", len(kept)).
			Int("excluded", excluded).
			Msg("period filter applied")
	}
	return kept
}
