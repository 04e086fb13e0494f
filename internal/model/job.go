package model

import "time"

// JobStatus represents the lifecycle state of a review job.
// Transitions are forward-only: awaiting_review -> in_progress -> completed.
type JobStatus string

const (
	StatusAwaitingReview JobStatus = "awaiting_review"
	StatusInProgress     JobStatus = "in_progress"
	StatusCompleted      JobStatus = "completed"
)

// ReviewJob is the aggregate tracking one ingested statement's
// transactions through suggestion, confirmation, and submission.
type ReviewJob struct {
	ID          string
	EntityID    string
	ClientName  string
	FileName    string
	SubmittedBy string
	Source      string // "upload" or "email"

	TotalTransactions int
	AutoCodedCount    int
	FlaggedCount      int
	ConfirmedCount    int

	Status JobStatus

	// Captured at ingestion so later entity edits do not change
	// historical tax treatment.
	GSTRegistered bool

	Metadata     StatementMetadata
	Transactions []ClassifiedTransaction

	ReceivedAt  time.Time
	CompletedAt time.Time
}

// Clone returns a deep copy of the job.
func (j *ReviewJob) Clone() *ReviewJob {
	c := *j
	c.Transactions = make([]ClassifiedTransaction, len(j.Transactions))
	copy(c.Transactions, j.Transactions)
	return &c
}

// ProgressPercent reports review progress over the flagged set.
func (j *ReviewJob) ProgressPercent() int {
	if j.FlaggedCount == 0 {
		return 0
	}
	return j.ConfirmedCount * 100 / j.FlaggedCount
}
