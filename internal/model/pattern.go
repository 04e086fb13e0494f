package model

import "time"

// TransactionPattern is a learned mapping from a normalised transaction
// description to a confirmed account and tax treatment. EntityID is
// empty for practice-wide (global) patterns.
type TransactionPattern struct {
	ID                 string
	EntityID           string
	DescriptionPattern string
	AccountCode        string
	AccountName        string
	TaxType            TaxType
	UsageCount         int
	CreatedAt          time.Time
	LastUsed           time.Time
}
