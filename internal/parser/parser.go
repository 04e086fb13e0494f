// Package parser converts extracted statement page text into raw
// transactions plus statement metadata. Each supported bank implements
// the Parser interface; the Registry detects the format from the first
// page and dispatches.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/statementhub/statementhub/internal/model"
)

// ErrUnsupportedFormat is returned when no registered parser recognises
// the document's first page.
var ErrUnsupportedFormat = errors.New("unsupported statement format")

// Parser converts a statement's page texts into a Statement.
type Parser interface {
	// BankName identifies the format, e.g. "cba".
	BankName() string
	// Match reports whether the first page's text looks like this bank.
	Match(firstPage string) bool
	// Parse reconstructs the statement from all page texts.
	Parse(pages []string) (*model.Statement, error)
}

// Registry holds parsers in detection order.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a parser. Detection order follows registration
// order, so more specific signatures must be registered first.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry(log zerolog.Logger) *Registry {
	r := NewRegistry()
	r.Register(NewCBAParser(log))
	r.Register(NewWestpacParser(log))
	return r
}

// Detect returns the parser whose signature matches the first page.
func (r *Registry) Detect(firstPage string) (Parser, error) {
	for _, p := range r.parsers {
		if p.Match(firstPage) {
			return p, nil
		}
	}
	var names []string
	for _, p := range r.parsers {
		names = append(names, p.BankName())
	}
	return nil, fmt.Errorf("%w: no signature matched (tried %s)",
		ErrUnsupportedFormat, strings.Join(names, ", "))
}

// Parse detects the bank from the first page and parses the document.
func (r *Registry) Parse(pages []string) (*model.Statement, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrUnsupportedFormat)
	}
	p, err := r.Detect(pages[0])
	if err != nil {
		return nil, err
	}
	return p.Parse(pages)
}

// Reconcile checks that opening balance plus the sum of transaction
// amounts equals the closing balance. A non-zero difference is an
// audit signal for the caller, not a parse failure.
func Reconcile(stmt *model.Statement) decimal.Decimal {
	sum := stmt.Metadata.OpeningBalance
	for _, txn := range stmt.Transactions {
		sum = sum.Add(txn.Amount)
	}
	return stmt.Metadata.ClosingBalance.Sub(sum)
}

// parseAmount parses a printed amount like "9,109.45" or "$1,200.00".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

var monthNumbers = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4,
	"May": 5, "Jun": 6, "Jul": 7, "Aug": 8,
	"Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}
