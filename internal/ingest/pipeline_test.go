package ingest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementhub/statementhub/internal/accounts"
	"github.com/statementhub/statementhub/internal/classify"
	"github.com/statementhub/statementhub/internal/model"
	"github.com/statementhub/statementhub/internal/parser"
	"github.com/statementhub/statementhub/internal/patterns"
	"github.com/statementhub/statementhub/internal/review"
)

type fixedClassifier struct{}

func (fixedClassifier) ClassifyBatch(_ context.Context, req classify.BatchRequest) ([]classify.Suggestion, error) {
	out := make([]classify.Suggestion, len(req.Transactions))
	for i, txn := range req.Transactions {
		code, name := "6100", "Fuel & Oil"
		if txn.Amount.Sign() >= 0 {
			code, name = "4000", "Sales"
		}
		out[i] = classify.Suggestion{AccountCode: code, AccountName: name, TaxType: "GST", Confidence: 4}
	}
	return out, nil
}

func newTestPipeline(t *testing.T) (*Pipeline, *review.Service, *patterns.Store) {
	t.Helper()
	log := zerolog.Nop()
	pats := patterns.NewStore(log)
	rev := review.NewService(review.NewInMemoryStore(), pats, log)
	orch := classify.NewOrchestrator(pats, fixedClassifier{}, log)
	chart := accounts.NewService(accounts.DefaultChart("company"))
	return NewPipeline(parser.DefaultRegistry(log), orch, rev, chart, log), rev, pats
}

func cbaFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/cba_statement.txt")
	require.NoError(t, err)
	return data
}

func TestPipeline_IngestCreatesJob(t *testing.T) {
	p, rev, _ := newTestPipeline(t)

	job, err := p.Ingest(context.Background(), cbaFixture(t), Params{
		EntityID:      "ent-1",
		EntityType:    "company",
		ClientName:    "Acme Trading Pty Ltd",
		FileName:      "statement_sep.txt",
		Source:        "upload",
		GSTRegistered: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, job.TotalTransactions)
	assert.Equal(t, model.StatusAwaitingReview, job.Status)
	assert.Equal(t, "062-904", job.Metadata.BSB)
	assert.True(t, job.GSTRegistered)

	stored, err := rev.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.TotalTransactions, stored.TotalTransactions)

	for _, txn := range stored.Transactions {
		assert.NotEmpty(t, txn.SuggestedCode)
		assert.False(t, txn.Amount.IsZero())
	}
}

func TestPipeline_PatternsAutoConfirmOnIngest(t *testing.T) {
	p, _, pats := newTestPipeline(t)
	pats.Upsert("ent-1", "EFTPOS BUNNINGS 652 WAREHOUSE", "6130", "Tools & Equipment", model.TaxGSTExpenses)

	job, err := p.Ingest(context.Background(), cbaFixture(t), Params{
		EntityID:      "ent-1",
		EntityType:    "company",
		ClientName:    "Acme Trading Pty Ltd",
		FileName:      "statement_sep.txt",
		GSTRegistered: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, job.ConfirmedCount)
	assert.Equal(t, model.StatusInProgress, job.Status)

	var matched *model.ClassifiedTransaction
	for i := range job.Transactions {
		if job.Transactions[i].FromPattern {
			matched = &job.Transactions[i]
		}
	}
	require.NotNil(t, matched)
	assert.Equal(t, "6130", matched.ConfirmedCode)
	assert.Equal(t, "10.00", matched.GSTAmount.StringFixed(2))
}

func TestPipeline_PeriodFilter(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	job, err := p.Ingest(context.Background(), cbaFixture(t), Params{
		EntityID:      "ent-1",
		EntityType:    "company",
		ClientName:    "Acme Trading Pty Ltd",
		FileName:      "statement_sep.txt",
		GSTRegistered: true,
		PeriodStart:   time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Only the 05 Sep and 08 Sep transactions fall in the window.
	assert.Equal(t, 2, job.TotalTransactions)
}

func TestPipeline_PeriodFilterExcludingEverything(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	_, err := p.Ingest(context.Background(), cbaFixture(t), Params{
		EntityID:      "ent-1",
		EntityType:    "company",
		ClientName:    "Acme Trading Pty Ltd",
		FileName:      "statement_sep.txt",
		GSTRegistered: true,
		PeriodStart:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestPipeline_UnsupportedFormat(t *testing.T) {
	p, _, _ := newTestPipeline(t)

	_, err := p.Ingest(context.Background(), []byte("Some Credit Union statement\n01/01/25 THING 5.00 10.00\n"), Params{
		FileName: "mystery.txt",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "mystery.txt")
}
