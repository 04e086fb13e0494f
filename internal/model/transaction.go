package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction represents a single reconstructed statement line.
type RawTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = debit/outflow, positive = credit/inflow
}

// ClassifiedTransaction is a RawTransaction plus a machine suggestion
// and, after review, an accountant-confirmed decision.
type ClassifiedTransaction struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal

	SuggestedCode    string
	SuggestedName    string
	SuggestedTaxType TaxType
	Confidence       int // 1-5
	Reasoning        string
	FromPattern      bool

	GSTAmount decimal.Decimal
	NetAmount decimal.Decimal

	ConfirmedCode    string
	ConfirmedName    string
	ConfirmedTaxType TaxType
	Confirmed        bool
}
