// Package patterns implements the learned transaction-coding cache:
// confirmed (description -> account/tax) decisions, scoped per client
// entity or practice-wide.
package patterns

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/statementhub/statementhub/internal/model"
)

// Store holds transaction patterns in memory. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	patterns map[patternKey]*model.TransactionPattern
	log      zerolog.Logger
}

type patternKey struct {
	entityID string // empty = global
	desc     string // normalised
}

// NewStore creates an empty pattern store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{
		patterns: make(map[patternKey]*model.TransactionPattern),
		log:      log,
	}
}

// Find looks up a pattern for a raw description. Lookup order is
// entity-scoped exact, entity-scoped substring (either direction),
// then global exact. First hit wins.
func (s *Store) Find(entityID, description string) (model.TransactionPattern, bool) {
	key := Normalise(description)
	if key == "" {
		return model.TransactionPattern{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if entityID != "" {
		if p, ok := s.patterns[patternKey{entityID, key}]; ok {
			return *p, true
		}
		for _, p := range s.sortedLocked(entityID) {
			if strings.Contains(p.DescriptionPattern, key) || strings.Contains(key, p.DescriptionPattern) {
				return *p, true
			}
		}
	}

	if p, ok := s.patterns[patternKey{"", key}]; ok {
		return *p, true
	}
	return model.TransactionPattern{}, false
}

// Upsert records a confirmed classification. An existing pattern for
// the same (scope, normalised description) gets its usage counter
// bumped and last-used refreshed; otherwise a new pattern is created
// with a usage count of 1. Descriptions that normalise to nothing are
// ignored.
func (s *Store) Upsert(entityID, description, accountCode, accountName string, taxType model.TaxType) {
	key := Normalise(description)
	if key == "" || accountCode == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := patternKey{entityID, key}
	now := time.Now()
	if p, ok := s.patterns[k]; ok {
		p.AccountCode = accountCode
		p.AccountName = accountName
		p.TaxType = taxType
		p.UsageCount++
		p.LastUsed = now
		s.log.Debug().Str("pattern", key).Int("usage", p.UsageCount).Msg("pattern updated")
		return
	}

	s.patterns[k] = &model.TransactionPattern{
		ID:                 uuid.NewString(),
		EntityID:           entityID,
		DescriptionPattern: key,
		AccountCode:        accountCode,
		AccountName:        accountName,
		TaxType:            taxType,
		UsageCount:         1,
		CreatedAt:          now,
		LastUsed:           now,
	}
	s.log.Debug().Str("pattern", key).Str("account", accountCode).Msg("pattern created")
}

// Stats summarises the store for observability.
type Stats struct {
	Total       int
	TotalUsage  int
	TopPatterns []model.TransactionPattern
}

// StatsFor aggregates pattern statistics, optionally scoped to one
// entity (empty string means everything).
func (s *Store) StatsFor(entityID string) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*model.TransactionPattern
	for _, p := range s.patterns {
		if entityID != "" && p.EntityID != entityID {
			continue
		}
		all = append(all, p)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].UsageCount > all[j].UsageCount })

	st := Stats{Total: len(all)}
	for _, p := range all {
		st.TotalUsage += p.UsageCount
	}
	top := all
	if len(top) > 10 {
		top = top[:10]
	}
	for _, p := range top {
		st.TopPatterns = append(st.TopPatterns, *p)
	}
	return st
}

// All returns every pattern, ordered by entity then description.
func (s *Store) All() []model.TransactionPattern {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.TransactionPattern
	for _, p := range s.patterns {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EntityID != out[j].EntityID {
			return out[i].EntityID < out[j].EntityID
		}
		return out[i].DescriptionPattern < out[j].DescriptionPattern
	})
	return out
}

// sortedLocked returns an entity's patterns in a stable order so the
// substring tier resolves deterministically. Caller holds the lock.
func (s *Store) sortedLocked(entityID string) []*model.TransactionPattern {
	var out []*model.TransactionPattern
	for _, p := range s.patterns {
		if p.EntityID == entityID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DescriptionPattern < out[j].DescriptionPattern
	})
	return out
}
