package patterns

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/statementhub/statementhub/internal/model"
)

const (
	numFields    = 9
	colID        = 0
	colEntityID  = 1
	colDesc      = 2
	colCode      = 3
	colName      = 4
	colTaxType   = 5
	colUsage     = 6
	colCreatedAt = 7
	colLastUsed  = 8
)

const patternsFile = "patterns.csv"

// ReadPatterns reads patterns.csv.
func ReadPatterns(r io.Reader) ([]model.TransactionPattern, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading patterns CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var out []model.TransactionPattern
	for i, rec := range records[1:] {
		p, err := UnmarshalPattern(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// WritePatterns writes patterns.csv.
func WritePatterns(w io.Writer, pats []model.TransactionPattern) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"id", "entity_id", "description_pattern", "account_code",
		"account_name", "tax_type", "usage_count", "created_at", "last_used"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range pats {
		if err := cw.Write(MarshalPattern(p)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalPattern converts a TransactionPattern to a CSV row.
func MarshalPattern(p model.TransactionPattern) []string {
	row := make([]string, numFields)
	row[colID] = p.ID
	row[colEntityID] = p.EntityID
	row[colDesc] = p.DescriptionPattern
	row[colCode] = p.AccountCode
	row[colName] = p.AccountName
	row[colTaxType] = string(p.TaxType)
	row[colUsage] = strconv.Itoa(p.UsageCount)
	row[colCreatedAt] = p.CreatedAt.UTC().Format(time.RFC3339)
	row[colLastUsed] = p.LastUsed.UTC().Format(time.RFC3339)
	return row
}

// UnmarshalPattern converts a CSV row to a TransactionPattern.
func UnmarshalPattern(record []string) (model.TransactionPattern, error) {
	if len(record) != numFields {
		return model.TransactionPattern{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	usage, err := strconv.Atoi(record[colUsage])
	if err != nil {
		return model.TransactionPattern{}, fmt.Errorf("parsing usage_count %q: %w", record[colUsage], err)
	}
	createdAt, err := time.Parse(time.RFC3339, record[colCreatedAt])
	if err != nil {
		return model.TransactionPattern{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}
	lastUsed, err := time.Parse(time.RFC3339, record[colLastUsed])
	if err != nil {
		return model.TransactionPattern{}, fmt.Errorf("parsing last_used %q: %w", record[colLastUsed], err)
	}

	return model.TransactionPattern{
		ID:                 record[colID],
		EntityID:           record[colEntityID],
		DescriptionPattern: record[colDesc],
		AccountCode:        record[colCode],
		AccountName:        record[colName],
		TaxType:            model.TaxType(record[colTaxType]),
		UsageCount:         usage,
		CreatedAt:          createdAt,
		LastUsed:           lastUsed,
	}, nil
}

// Load reads patterns.csv from the data directory into the store. A
// missing file is not an error: the store starts empty.
func (s *Store) Load(dataDir string) error {
	f, err := os.Open(filepath.Join(dataDir, patternsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening patterns file: %w", err)
	}
	defer f.Close()

	pats, err := ReadPatterns(f)
	if err != nil {
		return fmt.Errorf("reading patterns file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range pats {
		p := pats[i]
		s.patterns[patternKey{p.EntityID, p.DescriptionPattern}] = &p
	}
	return nil
}

// Save writes the store to patterns.csv in the data directory.
func (s *Store) Save(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dataDir, patternsFile))
	if err != nil {
		return fmt.Errorf("creating patterns file: %w", err)
	}
	defer f.Close()

	if err := WritePatterns(f, s.All()); err != nil {
		return fmt.Errorf("writing patterns file: %w", err)
	}
	return nil
}
