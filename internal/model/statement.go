package model

import "github.com/shopspring/decimal"

// StatementMetadata holds the header facts scraped from a statement.
type StatementMetadata struct {
	AccountName    string
	BSB            string
	AccountNumber  string
	PeriodStart    string
	PeriodEnd      string
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
}

// Statement is the parser's output: header metadata plus the
// reconstructed transactions in statement order.
type Statement struct {
	Bank         string
	Metadata     StatementMetadata
	Transactions []RawTransaction
}
