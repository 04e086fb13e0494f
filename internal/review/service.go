// Package review owns the review-job lifecycle: creation, transaction
// confirmation, progress accounting, and submission gating. Confirmed
// decisions feed the pattern store so future statements auto-code.
package review

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/statementhub/statementhub/internal/classify"
	"github.com/statementhub/statementhub/internal/model"
	"github.com/statementhub/statementhub/internal/patterns"
)

var (
	// ErrJobNotFound is returned for an unknown job ID.
	ErrJobNotFound = errors.New("review job not found")
	// ErrJobCompleted is returned when mutating a completed job.
	ErrJobCompleted = errors.New("review job already completed")
	// ErrUnknownTransaction is returned when a transaction ID does not
	// belong to the job.
	ErrUnknownTransaction = errors.New("transaction does not belong to job")
	// ErrUnconfirmed is returned when submitting with unconfirmed
	// transactions.
	ErrUnconfirmed = errors.New("transactions still need confirmation")
)

// Service applies lifecycle rules to review jobs. Mutations are
// serialised: a job's transaction set and counters form one
// consistency unit.
type Service struct {
	mu       sync.Mutex
	store    JobStore
	patterns *patterns.Store
	log      zerolog.Logger
}

// NewService creates a review service.
func NewService(store JobStore, pats *patterns.Store, log zerolog.Logger) *Service {
	return &Service{store: store, patterns: pats, log: log}
}

// CreateJobParams identifies the source document for a new job.
type CreateJobParams struct {
	EntityID      string
	ClientName    string
	FileName      string
	SubmittedBy   string
	Source        string
	GSTRegistered bool
	Metadata      model.StatementMetadata
	Transactions  []model.ClassifiedTransaction
}

// CreateJob creates a job in awaiting_review with its full transaction
// set. Counters are recomputed from the owned set; if any transaction
// arrived auto-confirmed the job starts in_progress.
func (s *Service) CreateJob(p CreateJobParams) (*model.ReviewJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &model.ReviewJob{
		ID:            uuid.NewString(),
		EntityID:      p.EntityID,
		ClientName:    p.ClientName,
		FileName:      p.FileName,
		SubmittedBy:   p.SubmittedBy,
		Source:        p.Source,
		Status:        model.StatusAwaitingReview,
		GSTRegistered: p.GSTRegistered,
		Metadata:      p.Metadata,
		Transactions:  p.Transactions,
		ReceivedAt:    time.Now(),
	}
	recount(job)

	if err := s.store.Save(job); err != nil {
		return nil, fmt.Errorf("saving job: %w", err)
	}
	s.log.Info().
		Str("job_id", job.ID).
		Str("client", job.ClientName).
		Int("transactions", job.TotalTransactions).
		Int("auto_confirmed", job.ConfirmedCount).
		Bool("gst_registered", job.GSTRegistered).
		Msg("review job created")
	return job.Clone(), nil
}

// Get returns a job by ID.
func (s *Service) Get(jobID string) (*model.ReviewJob, error) {
	return s.store.Get(jobID)
}

// List returns all jobs, newest first.
func (s *Service) List() ([]*model.ReviewJob, error) {
	return s.store.List()
}

// Confirm applies an accountant's decision to one transaction. The
// supplied account and tax always override the suggestion; GST is
// recomputed from the confirmed tax type, and the decision is fed to
// the pattern store scoped to the job's entity.
func (s *Service) Confirm(jobID, txnID, accountCode, accountName string, taxType model.TaxType) (*model.ReviewJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.store.Get(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == model.StatusCompleted {
		return nil, fmt.Errorf("%w: %s", ErrJobCompleted, jobID)
	}

	idx := -1
	for i := range job.Transactions {
		if job.Transactions[i].ID == txnID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, txnID)
	}

	txn := &job.Transactions[idx]
	txn.ConfirmedCode = accountCode
	txn.ConfirmedName = accountName
	txn.ConfirmedTaxType = taxType
	txn.Confirmed = true
	txn.GSTAmount, txn.NetAmount = classify.ComputeGST(txn.Amount, taxType, job.GSTRegistered)

	recount(job)
	if err := s.store.Save(job); err != nil {
		return nil, fmt.Errorf("saving job: %w", err)
	}

	s.patterns.Upsert(job.EntityID, txn.Description, accountCode, accountName, taxType)
	s.log.Info().
		Str("job_id", jobID).
		Str("transaction_id", txnID).
		Str("account", accountCode).
		Int("confirmed", job.ConfirmedCount).
		Msg("transaction confirmed")
	return job, nil
}

// AcceptAll confirms every still-unconfirmed transaction with its
// suggestion. Missing suggested tax types fall back to the sign-derived
// label (BAS Excluded when the entity is not registered). Each
// confirmation still feeds the pattern store.
func (s *Service) AcceptAll(jobID string) (*model.ReviewJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.store.Get(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == model.StatusCompleted {
		return nil, fmt.Errorf("%w: %s", ErrJobCompleted, jobID)
	}

	for i := range job.Transactions {
		txn := &job.Transactions[i]
		if txn.Confirmed {
			continue
		}

		txn.ConfirmedCode = txn.SuggestedCode
		txn.ConfirmedName = txn.SuggestedName
		switch {
		case txn.SuggestedTaxType != "":
			txn.ConfirmedTaxType = txn.SuggestedTaxType
		case !job.GSTRegistered:
			txn.ConfirmedTaxType = model.TaxBASExcluded
		default:
			txn.ConfirmedTaxType = model.DefaultTaxForAmount(txn.Amount.Sign() >= 0)
		}
		txn.GSTAmount, txn.NetAmount = classify.ComputeGST(txn.Amount, txn.ConfirmedTaxType, job.GSTRegistered)
		txn.Confirmed = true

		s.patterns.Upsert(job.EntityID, txn.Description, txn.ConfirmedCode, txn.ConfirmedName, txn.ConfirmedTaxType)
	}

	recount(job)
	if err := s.store.Save(job); err != nil {
		return nil, fmt.Errorf("saving job: %w", err)
	}
	s.log.Info().Str("job_id", jobID).Int("confirmed", job.ConfirmedCount).Msg("all suggestions accepted")
	return job, nil
}

// Submit completes a job. It succeeds only when every transaction is
// confirmed; completion is terminal.
func (s *Service) Submit(jobID string) (*model.ReviewJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.store.Get(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == model.StatusCompleted {
		return nil, fmt.Errorf("%w: %s", ErrJobCompleted, jobID)
	}

	unconfirmed := 0
	for _, txn := range job.Transactions {
		if !txn.Confirmed {
			unconfirmed++
		}
	}
	if unconfirmed > 0 {
		return nil, fmt.Errorf("%d %w", unconfirmed, ErrUnconfirmed)
	}

	job.Status = model.StatusCompleted
	job.CompletedAt = time.Now()
	if err := s.store.Save(job); err != nil {
		return nil, fmt.Errorf("saving job: %w", err)
	}
	s.log.Info().
		Str("job_id", jobID).
		Str("client", job.ClientName).
		Int("confirmed", job.ConfirmedCount).
		Msg("review completed")
	return job, nil
}

// recount recomputes the denormalised counters from the owned set and
// applies the implicit awaiting_review -> in_progress transition.
func recount(job *model.ReviewJob) {
	job.TotalTransactions = len(job.Transactions)
	job.AutoCodedCount = len(job.Transactions)
	job.FlaggedCount = 0
	job.ConfirmedCount = 0
	for _, txn := range job.Transactions {
		if txn.Confidence < 5 {
			job.FlaggedCount++
		}
		if txn.Confirmed {
			job.ConfirmedCount++
		}
	}
	if job.ConfirmedCount > 0 && job.Status == model.StatusAwaitingReview {
		job.Status = model.StatusInProgress
	}
}
