package classify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementhub/statementhub/internal/model"
	"github.com/statementhub/statementhub/internal/patterns"
)

type stubClassifier struct {
	calls []BatchRequest
	fn    func(req BatchRequest) ([]Suggestion, error)
}

func (s *stubClassifier) ClassifyBatch(_ context.Context, req BatchRequest) ([]Suggestion, error) {
	s.calls = append(s.calls, req)
	if s.fn != nil {
		return s.fn(req)
	}
	out := make([]Suggestion, len(req.Transactions))
	for i := range out {
		out[i] = Suggestion{
			AccountCode: "6100",
			AccountName: "Fuel & Oil",
			TaxType:     "GST",
			Confidence:  4,
			Reasoning:   "fuel merchant",
		}
	}
	return out, nil
}

func rawTxn(desc string, amount int64) model.RawTransaction {
	return model.RawTransaction{
		Date:        time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.NewFromInt(amount),
	}
}

func TestOrchestrator_PatternHitAutoConfirms(t *testing.T) {
	store := patterns.NewStore(zerolog.Nop())
	store.Upsert("ent-1", "BP CONNECT", "6100", "Fuel & Oil", model.TaxGSTExpenses)
	store.Upsert("ent-1", "BP CONNECT", "6100", "Fuel & Oil", model.TaxGSTExpenses)

	stub := &stubClassifier{}
	o := NewOrchestrator(store, stub, zerolog.Nop())

	out := o.Classify(context.Background(), []model.RawTransaction{
		rawTxn("BP CONNECT 01/02/25", -55),
	}, Params{EntityID: "ent-1", GSTRegistered: true})

	require.Len(t, out, 1)
	txn := out[0]
	assert.True(t, txn.FromPattern)
	assert.True(t, txn.Confirmed)
	assert.Equal(t, "6100", txn.ConfirmedCode)
	assert.Equal(t, model.TaxGSTExpenses, txn.SuggestedTaxType)
	assert.Equal(t, 5, txn.Confidence)
	assert.Equal(t, "Matched saved pattern (used 2x)", txn.Reasoning)
	assert.Empty(t, stub.calls, "pattern hit must not reach the classifier")
}

func TestOrchestrator_PatternHitDowngradedWhenNotRegistered(t *testing.T) {
	store := patterns.NewStore(zerolog.Nop())
	store.Upsert("ent-1", "BP CONNECT", "6100", "Fuel & Oil", model.TaxGSTExpenses)

	o := NewOrchestrator(store, &stubClassifier{}, zerolog.Nop())
	out := o.Classify(context.Background(), []model.RawTransaction{
		rawTxn("BP CONNECT", -55),
	}, Params{EntityID: "ent-1", GSTRegistered: false})

	require.Len(t, out, 1)
	assert.Equal(t, model.TaxBASExcluded, out[0].SuggestedTaxType)
	assert.True(t, out[0].GSTAmount.IsZero())
}

func TestOrchestrator_BatchesOfFifteen(t *testing.T) {
	store := patterns.NewStore(zerolog.Nop())
	stub := &stubClassifier{}
	o := NewOrchestrator(store, stub, zerolog.Nop())

	var txns []model.RawTransaction
	for i := 0; i < 20; i++ {
		txns = append(txns, rawTxn(fmt.Sprintf("MERCHANT %d", i), -10))
	}

	out := o.Classify(context.Background(), txns, Params{GSTRegistered: true})
	require.Len(t, out, 20)
	require.Len(t, stub.calls, 2)
	assert.Len(t, stub.calls[0].Transactions, 15)
	assert.Len(t, stub.calls[1].Transactions, 5)
}

func TestOrchestrator_BatchFailureDoesNotPoisonOthers(t *testing.T) {
	store := patterns.NewStore(zerolog.Nop())
	stub := &stubClassifier{}
	call := 0
	stub.fn = func(req BatchRequest) ([]Suggestion, error) {
		call++
		if call == 1 {
			return nil, errors.New("service unavailable")
		}
		out := make([]Suggestion, len(req.Transactions))
		for i := range out {
			out[i] = Suggestion{AccountCode: "4000", AccountName: "Sales", TaxType: "GST", Confidence: 4}
		}
		return out, nil
	}
	o := NewOrchestrator(store, stub, zerolog.Nop())

	var txns []model.RawTransaction
	for i := 0; i < 16; i++ {
		txns = append(txns, rawTxn(fmt.Sprintf("MERCHANT %d", i), 10))
	}

	out := o.Classify(context.Background(), txns, Params{GSTRegistered: true})
	require.Len(t, out, 16)

	// First batch: safe defaults, still reviewable.
	for _, txn := range out[:15] {
		assert.Equal(t, "0000", txn.SuggestedCode)
		assert.Equal(t, "Suspense", txn.SuggestedName)
		assert.Equal(t, 1, txn.Confidence)
		assert.False(t, txn.Confirmed)
	}
	// Second batch classified normally.
	assert.Equal(t, "4000", out[15].SuggestedCode)
}

func TestOrchestrator_ShortBatchResponsePadded(t *testing.T) {
	store := patterns.NewStore(zerolog.Nop())
	stub := &stubClassifier{fn: func(req BatchRequest) ([]Suggestion, error) {
		return []Suggestion{{AccountCode: "4000", AccountName: "Sales", TaxType: "GST", Confidence: 5}}, nil
	}}
	o := NewOrchestrator(store, stub, zerolog.Nop())

	out := o.Classify(context.Background(), []model.RawTransaction{
		rawTxn("FIRST", 10),
		rawTxn("SECOND", 20),
	}, Params{GSTRegistered: true})

	require.Len(t, out, 2)
	assert.Equal(t, "4000", out[0].SuggestedCode)
	assert.Equal(t, "0000", out[1].SuggestedCode)
	assert.Equal(t, 1, out[1].Confidence)
}

func TestOrchestrator_MapsShortCodeBySign(t *testing.T) {
	store := patterns.NewStore(zerolog.Nop())
	o := NewOrchestrator(store, &stubClassifier{}, zerolog.Nop())

	out := o.Classify(context.Background(), []model.RawTransaction{
		rawTxn("CREDIT SIDE", 100),
		rawTxn("DEBIT SIDE", -100),
	}, Params{GSTRegistered: true})

	require.Len(t, out, 2)
	assert.Equal(t, model.TaxGSTIncome, out[0].SuggestedTaxType)
	assert.Equal(t, model.TaxGSTExpenses, out[1].SuggestedTaxType)
}

func TestOrchestrator_ClassifierSuggestionsNotAutoConfirmed(t *testing.T) {
	store := patterns.NewStore(zerolog.Nop())
	stub := &stubClassifier{fn: func(req BatchRequest) ([]Suggestion, error) {
		out := make([]Suggestion, len(req.Transactions))
		for i := range out {
			out[i] = Suggestion{AccountCode: "4000", AccountName: "Sales", TaxType: "GST", Confidence: 5}
		}
		return out, nil
	}}
	o := NewOrchestrator(store, stub, zerolog.Nop())

	out := o.Classify(context.Background(), []model.RawTransaction{rawTxn("NEW MERCHANT", 10)},
		Params{GSTRegistered: true})

	require.Len(t, out, 1)
	assert.False(t, out[0].Confirmed, "only pattern-sourced suggestions auto-confirm")
}
