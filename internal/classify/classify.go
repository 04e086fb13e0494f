// Package classify assigns account codes and tax treatments to raw
// transactions: learned patterns first, then an external classifier in
// bounded batches, with GST and auto-confirmation derived from the
// result.
package classify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/statementhub/statementhub/internal/accounts"
	"github.com/statementhub/statementhub/internal/model"
	"github.com/statementhub/statementhub/internal/patterns"
)

// DefaultBatchSize bounds the number of transactions per classifier
// call to keep prompt size and latency predictable.
const DefaultBatchSize = 15

// Suggestion is one classifier result for one transaction. TaxType
// carries the classifier's short code (GST, ITS, N-T, GST-Free), not
// the full label.
type Suggestion struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	TaxType     string `json:"taxType"`
	Confidence  int    `json:"confidence"`
	Reasoning   string `json:"reasoning"`
}

// BatchRequest is one bounded classifier call.
type BatchRequest struct {
	Transactions  []model.RawTransaction
	ChartPrompt   string
	EntityType    string
	GSTRegistered bool
}

// Classifier proposes account codings for a batch of transactions.
// Implementations must return exactly one Suggestion per transaction.
type Classifier interface {
	ClassifyBatch(ctx context.Context, req BatchRequest) ([]Suggestion, error)
}

// Params carries the per-statement classification context.
type Params struct {
	EntityID      string
	EntityType    string
	GSTRegistered bool
	ChartPrompt   string
}

// Orchestrator resolves transactions against the pattern store and
// falls back to the classifier for the remainder.
type Orchestrator struct {
	patterns   *patterns.Store
	classifier Classifier
	batchSize  int
	log        zerolog.Logger
}

// NewOrchestrator creates an orchestrator with the default batch size.
func NewOrchestrator(store *patterns.Store, classifier Classifier, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		patterns:   store,
		classifier: classifier,
		batchSize:  DefaultBatchSize,
		log:        log,
	}
}

// SetBatchSize overrides the default batch size. Values below 1 are
// ignored.
func (o *Orchestrator) SetBatchSize(n int) {
	if n > 0 {
		o.batchSize = n
	}
}

// Classify assigns a suggested account, tax treatment, GST split, and
// auto-confirmation decision to every transaction. Classifier failures
// never abort the run: affected batches fall back to the Suspense
// default and stay reviewable.
func (o *Orchestrator) Classify(ctx context.Context, txns []model.RawTransaction, p Params) []model.ClassifiedTransaction {
	out := make([]model.ClassifiedTransaction, len(txns))
	var unknown []model.RawTransaction
	var unknownIdx []int

	for i, txn := range txns {
		out[i] = model.ClassifiedTransaction{
			ID:          uuid.NewString(),
			Date:        txn.Date,
			Description: txn.Description,
			Amount:      txn.Amount,
		}

		pat, ok := o.patterns.Find(p.EntityID, txn.Description)
		if !ok {
			unknown = append(unknown, txn)
			unknownIdx = append(unknownIdx, i)
			continue
		}

		taxType := pat.TaxType
		if !p.GSTRegistered && taxType.CarriesGST() {
			taxType = model.TaxBASExcluded
		}
		out[i].SuggestedCode = pat.AccountCode
		out[i].SuggestedName = pat.AccountName
		out[i].SuggestedTaxType = taxType
		out[i].Confidence = 5
		out[i].Reasoning = fmt.Sprintf("Matched saved pattern (used %dx)", pat.UsageCount)
		out[i].FromPattern = true
	}

	o.log.Info().
		Int("total", len(txns)).
		Int("from_patterns", len(txns)-len(unknown)).
		Int("for_classifier", len(unknown)).
		Msg("pattern pass complete")

	for start := 0; start < len(unknown); start += o.batchSize {
		end := min(start+o.batchSize, len(unknown))
		batch := unknown[start:end]

		suggestions := o.classifyBatch(ctx, batch, p)
		for j, sug := range suggestions {
			i := unknownIdx[start+j]
			out[i].SuggestedCode = sug.AccountCode
			out[i].SuggestedName = sug.AccountName
			out[i].SuggestedTaxType = MapTaxType(sug.TaxType, txns[i].Amount.Sign() >= 0, p.GSTRegistered)
			out[i].Confidence = sug.Confidence
			out[i].Reasoning = sug.Reasoning
		}
	}

	for i := range out {
		out[i].GSTAmount, out[i].NetAmount = ComputeGST(out[i].Amount, out[i].SuggestedTaxType, p.GSTRegistered)

		if out[i].FromPattern && out[i].Confidence >= 5 {
			out[i].Confirmed = true
			out[i].ConfirmedCode = out[i].SuggestedCode
			out[i].ConfirmedName = out[i].SuggestedName
			out[i].ConfirmedTaxType = out[i].SuggestedTaxType
		}
	}
	return out
}

// classifyBatch issues one classifier call and normalises the result
// to exactly one suggestion per transaction. A failed call yields the
// Suspense default for the whole batch.
func (o *Orchestrator) classifyBatch(ctx context.Context, batch []model.RawTransaction, p Params) []Suggestion {
	req := BatchRequest{
		Transactions:  batch,
		ChartPrompt:   p.ChartPrompt,
		EntityType:    p.EntityType,
		GSTRegistered: p.GSTRegistered,
	}

	suggestions, err := o.classifier.ClassifyBatch(ctx, req)
	if err != nil {
		o.log.Error().Err(err).Int("batch_size", len(batch)).Msg("classifier call failed")
		suggestions = nil
	}

	if len(suggestions) > len(batch) {
		suggestions = suggestions[:len(batch)]
	}
	for len(suggestions) < len(batch) {
		reason := "No classification returned"
		if err != nil {
			reason = fmt.Sprintf("Classification error: %v", err)
		}
		suggestions = append(suggestions, fallbackSuggestion(reason))
	}
	return suggestions
}

// fallbackSuggestion is the safe default applied when the classifier
// fails or returns short output.
func fallbackSuggestion(reason string) Suggestion {
	return Suggestion{
		AccountCode: accounts.SuspenseCode,
		AccountName: accounts.SuspenseName,
		TaxType:     "N-T",
		Confidence:  1,
		Reasoning:   reason,
	}
}
