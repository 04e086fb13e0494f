package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/statementhub/statementhub/internal/model"
)

// JobStore persists review jobs. The service owns all consistency
// rules; the store only keeps state.
type JobStore interface {
	Save(job *model.ReviewJob) error
	Get(id string) (*model.ReviewJob, error)
	List() ([]*model.ReviewJob, error)
}

// InMemoryStore keeps jobs in a map, with optional JSON snapshots for
// persistence between CLI runs. Safe for concurrent use. Clones are
// stored and returned so callers cannot mutate store state directly.
type InMemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*model.ReviewJob
}

// NewInMemoryStore creates an empty job store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{jobs: make(map[string]*model.ReviewJob)}
}

// Save stores a copy of the job.
func (s *InMemoryStore) Save(job *model.ReviewJob) error {
	if job.ID == "" {
		return fmt.Errorf("job ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job.Clone()
	return nil
}

// Get returns a copy of a job by ID.
func (s *InMemoryStore) Get(id string) (*model.ReviewJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job.Clone(), nil
}

// List returns all jobs, newest first.
func (s *InMemoryStore) List() ([]*model.ReviewJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.ReviewJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return out, nil
}

const jobsFile = "jobs.json"

// Load reads a jobs.json snapshot from the data directory. A missing
// file leaves the store empty.
func (s *InMemoryStore) Load(dataDir string) error {
	data, err := os.ReadFile(filepath.Join(dataDir, jobsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading jobs file: %w", err)
	}

	var jobs []*model.ReviewJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return fmt.Errorf("parsing jobs file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range jobs {
		s.jobs[job.ID] = job
	}
	return nil
}

// Flush writes all jobs to jobs.json in the data directory.
func (s *InMemoryStore) Flush(dataDir string) error {
	jobs, err := s.List()
	if err != nil {
		return err
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })

	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling jobs: %w", err)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, jobsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing jobs file: %w", err)
	}
	return nil
}
