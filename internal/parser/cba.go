package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/statementhub/statementhub/internal/model"
)

// CBAParser parses Commonwealth Bank of Australia statements. Amounts
// are printed unsigned; the debit column carries a lone "$" placeholder
// before the running balance, which is how debits are told apart from
// credits.
type CBAParser struct {
	log zerolog.Logger
}

var (
	cbaDateRe = regexp.MustCompile(
		`^(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(.+)`)
	cbaOpeningRe = regexp.MustCompile(
		`^\d{1,2}\s+\w+\s+\d{4}\s+OPENING\s+BALANCE\s+\$([\d,]+\.\d{2})\s*(?:CR|DR)?$`)
	cbaClosingRe = regexp.MustCompile(
		`^\d{1,2}\s+\w+\s+\d{4}\s+CLOSING\s+BALANCE\s+\$([\d,]+\.\d{2})\s*(?:CR|DR)?$`)

	// The description group is optional: a wrapped transaction can
	// continue with a bare amounts line.
	cbaDebitRe = regexp.MustCompile(
		`^(?:(.+?)\s+)?([\d,]+\.\d{2})\s+\$\s+\$([\d,]+\.\d{2})\s*(?:CR|DR)?$`)
	cbaCreditRe = regexp.MustCompile(
		`^(?:(.+?)\s+)?\$([\d,]+\.\d{2})\s+\$([\d,]+\.\d{2})\s*(?:CR|DR)?$`)

	cbaAccountRe = regexp.MustCompile(`Account\s+Number\s+(\d{2}\s*\d{4})\s+(\d+)`)
	cbaPeriodRe  = regexp.MustCompile(
		`Period\s+(\d{1,2}\s+\w+\s+(\d{4}))\s*-\s*(\d{1,2}\s+\w+\s+\d{4})`)
	cbaHeaderClosingRe = regexp.MustCompile(`Closing\s+Balance\s+\$([\d,]+\.\d{2})\s*(?:CR|DR)?`)
	cbaNameRe          = regexp.MustCompile(`Name:\s+(.+)`)

	cbaSectionStartRe = regexp.MustCompile(`^Date\s+Transaction\s+Debit\s+Credit\s+Balance`)
	cbaSectionEndRe   = regexp.MustCompile(`^Opening\s+balance\s+-\s+Total\s+debits`)
	cbaTotalsRowRe    = regexp.MustCompile(`^\$[\d,]+\.\d{2}\s+CR\s+\$[\d,]+\.\d{2}`)
)

// NewCBAParser creates a CBA statement parser.
func NewCBAParser(log zerolog.Logger) *CBAParser {
	return &CBAParser{log: log}
}

// BankName returns the format name.
func (p *CBAParser) BankName() string { return "cba" }

// Match reports whether the first page looks like a CBA statement.
func (p *CBAParser) Match(firstPage string) bool {
	lower := strings.ToLower(firstPage)
	return strings.Contains(lower, "commonwealth bank") || strings.Contains(lower, "commbank")
}

// Parse reconstructs a CBA statement.
func (p *CBAParser) Parse(pages []string) (*model.Statement, error) {
	stmt := &model.Statement{Bank: p.BankName()}
	year := time.Now().Year()

	if len(pages) > 0 {
		year = p.parseHeader(pages[0], &stmt.Metadata, year)
	}

	lines := collectSectionLines(pages, cbaSectionStartRe, cbaSectionEndRe, cbaTotalsRowRe)
	stmt.Transactions = p.reconstruct(lines, &stmt.Metadata, year)
	p.log.Info().
		Str("bank", p.BankName()).
		Int("transactions", len(stmt.Transactions)).
		Str("opening", stmt.Metadata.OpeningBalance.StringFixed(2)).
		Str("closing", stmt.Metadata.ClosingBalance.StringFixed(2)).
		Msg("statement parsed")
	return stmt, nil
}

// parseHeader scrapes account identifiers and the period from the
// first page, returning the statement year.
func (p *CBAParser) parseHeader(firstPage string, meta *model.StatementMetadata, year int) int {
	for _, line := range strings.Split(firstPage, "\n") {
		if m := cbaAccountRe.FindStringSubmatch(line); m != nil {
			bsb := strings.ReplaceAll(m[1], " ", "")
			if len(bsb) == 6 {
				bsb = bsb[:3] + "-" + bsb[3:]
			}
			meta.BSB = bsb
			meta.AccountNumber = m[2]
		}
		if m := cbaPeriodRe.FindStringSubmatch(line); m != nil {
			meta.PeriodStart = m[1]
			meta.PeriodEnd = m[3]
			if y, err := strconv.Atoi(m[2]); err == nil {
				year = y
			}
		}
		if m := cbaHeaderClosingRe.FindStringSubmatch(line); m != nil {
			if amt, err := parseAmount(m[1]); err == nil {
				meta.ClosingBalance = amt
			}
		}
		if m := cbaNameRe.FindStringSubmatch(line); m != nil {
			meta.AccountName = strings.TrimSpace(m[1])
		}
	}
	return year
}

// pendingTxn is the single in-flight transaction slot: a dated
// description still waiting for its amount.
type pendingTxn struct {
	date        time.Time
	description string
}

// reconstruct runs the line state machine over the transaction-section
// lines. A date-prefixed line starts a new transaction only when
// nothing is pending; while a transaction awaits its amount, every
// line, dated or not, is a candidate continuation.
func (p *CBAParser) reconstruct(lines []string, meta *model.StatementMetadata, year int) []model.RawTransaction {
	var txns []model.RawTransaction
	var pending *pendingTxn

	emit := func(date time.Time, desc string, amount decimal.Decimal) {
		if amount.IsZero() {
			p.log.Warn().Str("description", desc).Msg("dropping zero-amount transaction")
			return
		}
		txns = append(txns, model.RawTransaction{Date: date, Description: desc, Amount: amount})
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := cbaOpeningRe.FindStringSubmatch(line); m != nil {
			if amt, err := parseAmount(m[1]); err == nil {
				meta.OpeningBalance = amt
			}
			continue
		}
		if m := cbaClosingRe.FindStringSubmatch(line); m != nil {
			if amt, err := parseAmount(m[1]); err == nil {
				meta.ClosingBalance = amt
			}
			continue
		}

		if m := cbaDateRe.FindStringSubmatch(line); m != nil {
			rest := m[3]
			if desc, amount, ok := p.tryAmount(rest); ok {
				if pending != nil {
					// The dated prefix is line-wrap noise: this line
					// completes the pending transaction.
					if desc != "" {
						pending.description += " " + desc
					}
					emit(pending.date, pending.description, amount)
					pending = nil
				} else {
					emit(cbaDate(m[1], m[2], year), desc, amount)
				}
				continue
			}
			if pending != nil {
				p.log.Warn().
					Str("description", pending.description).
					Msg("dropping transaction with unresolved amount")
			}
			pending = &pendingTxn{date: cbaDate(m[1], m[2], year), description: strings.TrimSpace(rest)}
			continue
		}

		if pending == nil {
			continue
		}
		if desc, amount, ok := p.tryAmount(line); ok {
			if desc != "" {
				pending.description += " " + desc
			}
			emit(pending.date, pending.description, amount)
			pending = nil
		} else {
			pending.description += " " + line
		}
	}

	if pending != nil {
		p.log.Warn().
			Str("description", pending.description).
			Msg("dropping transaction with unresolved amount at end of statement")
	}
	return txns
}

// tryAmount resolves a trailing amount from a line, returning the
// description text preceding it and the signed amount. Debit lines are
// tried first: their lone "$" placeholder cannot appear on credit
// lines, so the order is safe.
func (p *CBAParser) tryAmount(text string) (string, decimal.Decimal, bool) {
	if m := cbaDebitRe.FindStringSubmatch(text); m != nil {
		amt, err := parseAmount(m[2])
		if err != nil {
			return "", decimal.Decimal{}, false
		}
		return strings.TrimSpace(m[1]), amt.Neg(), true
	}
	if m := cbaCreditRe.FindStringSubmatch(text); m != nil {
		amt, err := parseAmount(m[2])
		if err != nil {
			return "", decimal.Decimal{}, false
		}
		return strings.TrimSpace(m[1]), amt, true
	}
	return "", decimal.Decimal{}, false
}

func cbaDate(day, month string, year int) time.Time {
	d, _ := strconv.Atoi(day)
	return time.Date(year, time.Month(monthNumbers[month]), d, 0, 0, 0, 0, time.UTC)
}

// collectSectionLines gathers the lines between a section-start header
// and any of the end markers, across all pages.
func collectSectionLines(pages []string, start *regexp.Regexp, ends ...*regexp.Regexp) []string {
	var out []string
	for _, page := range pages {
		inSection := false
		for _, line := range strings.Split(page, "\n") {
			trimmed := strings.TrimSpace(line)
			if start.MatchString(trimmed) {
				inSection = true
				continue
			}
			ended := false
			for _, end := range ends {
				if end.MatchString(trimmed) {
					inSection = false
					ended = true
					break
				}
			}
			if ended {
				continue
			}
			if inSection {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
