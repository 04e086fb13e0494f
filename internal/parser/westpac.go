package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/statementhub/statementhub/internal/model"
)

// WestpacParser parses Westpac statements. Westpac prints debit and
// credit amounts identically, so the sign is inferred from the running
// balance direction instead of a column marker.
type WestpacParser struct {
	log zerolog.Logger
}

var (
	westpacDateRe    = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{2})\s+(.+)`)
	westpacAmountRe  = regexp.MustCompile(`^(.*?)\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s*$`)
	westpacBalanceRe = regexp.MustCompile(`([\d,]+\.\d{2})\s*$`)

	westpacPeriodRe  = regexp.MustCompile(`(\d{1,2}\s+\w+\s+\d{4})\s*-\s*(\d{1,2}\s+\w+\s+\d{4})`)
	westpacBSBRe     = regexp.MustCompile(`^(\d{3}-\d{3})\s+([\d\s]+?)\s*$`)
	westpacOpeningRe = regexp.MustCompile(`Opening\s+Balance\s+[+\-]?\s*\$?([\d,]+\.\d{2})`)
	westpacClosingRe = regexp.MustCompile(`Closing\s+Balance\s+[+\-]?\s*\$?([\d,]+\.\d{2})`)

	westpacSectionStartRe = regexp.MustCompile(`(?i)^DATE\s+TRANSACTION\s+DESCRIPTION\s+DEBIT\s+CREDIT\s+BALANCE`)
)

var westpacSectionEndMarkers = []string{
	"CONVENIENCE AT YOUR FINGERTIPS",
	"TRANSACTION FEE SUMMARY",
	"Westpac Banking Corporation",
}

// NewWestpacParser creates a Westpac statement parser.
func NewWestpacParser(log zerolog.Logger) *WestpacParser {
	return &WestpacParser{log: log}
}

// BankName returns the format name.
func (p *WestpacParser) BankName() string { return "westpac" }

// Match reports whether the first page looks like a Westpac statement.
func (p *WestpacParser) Match(firstPage string) bool {
	return strings.Contains(strings.ToLower(firstPage), "westpac")
}

// Parse reconstructs a Westpac statement.
func (p *WestpacParser) Parse(pages []string) (*model.Statement, error) {
	stmt := &model.Statement{Bank: p.BankName()}
	if len(pages) > 0 {
		p.parseHeader(pages[0], &stmt.Metadata)
	}

	lines := p.sectionLines(pages)
	stmt.Transactions = p.reconstruct(lines, &stmt.Metadata)
	p.log.Info().
		Str("bank", p.BankName()).
		Int("transactions", len(stmt.Transactions)).
		Str("opening", stmt.Metadata.OpeningBalance.StringFixed(2)).
		Str("closing", stmt.Metadata.ClosingBalance.StringFixed(2)).
		Msg("statement parsed")
	return stmt, nil
}

func (p *WestpacParser) parseHeader(firstPage string, meta *model.StatementMetadata) {
	for _, line := range strings.Split(firstPage, "\n") {
		if m := westpacPeriodRe.FindStringSubmatch(line); m != nil && meta.PeriodStart == "" {
			meta.PeriodStart = m[1]
			meta.PeriodEnd = m[2]
		}
		if m := westpacBSBRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			meta.BSB = m[1]
			meta.AccountNumber = strings.TrimSpace(m[2])
		}
		if m := westpacOpeningRe.FindStringSubmatch(line); m != nil {
			if amt, err := parseAmount(m[1]); err == nil {
				meta.OpeningBalance = amt
			}
		}
		if m := westpacClosingRe.FindStringSubmatch(line); m != nil {
			if amt, err := parseAmount(m[1]); err == nil {
				meta.ClosingBalance = amt
			}
		}
	}
}

func (p *WestpacParser) sectionLines(pages []string) []string {
	var out []string
	for _, page := range pages {
		inSection := false
		for _, line := range strings.Split(page, "\n") {
			trimmed := strings.TrimSpace(line)
			if westpacSectionStartRe.MatchString(trimmed) {
				inSection = true
				continue
			}
			ended := false
			for _, marker := range westpacSectionEndMarkers {
				if strings.Contains(trimmed, marker) {
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

func (p *WestpacParser) reconstruct(lines []string, meta *model.StatementMetadata) []model.RawTransaction {
	var txns []model.RawTransaction
	prevBalance := meta.OpeningBalance

	for _, line := range lines {
		if line == "" {
			continue
		}

		if strings.Contains(line, "OPENING BALANCE") {
			if m := westpacBalanceRe.FindStringSubmatch(line); m != nil {
				if amt, err := parseAmount(m[1]); err == nil {
					prevBalance = amt
				}
			}
			continue
		}
		if strings.Contains(line, "CLOSING BALANCE") {
			continue
		}

		m := westpacDateRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		date := westpacDate(m[1], m[2], m[3])

		am := westpacAmountRe.FindStringSubmatch(m[4])
		if am == nil {
			continue
		}
		amount, err := parseAmount(am[2])
		if err != nil {
			continue
		}
		balance, err := parseAmount(am[3])
		if err != nil {
			continue
		}
		if amount.IsZero() {
			p.log.Warn().Str("description", strings.TrimSpace(am[1])).
				Msg("dropping zero-amount transaction")
			prevBalance = balance
			continue
		}

		if balance.LessThan(prevBalance) {
			amount = amount.Neg()
		}
		txns = append(txns, model.RawTransaction{
			Date:        date,
			Description: strings.TrimSpace(am[1]),
			Amount:      amount,
		})
		prevBalance = balance
	}
	return txns
}

// westpacDate converts DD/MM/YY to a date; two-digit years below 80
// are 20xx.
func westpacDate(day, month, yr string) time.Time {
	d, _ := strconv.Atoi(day)
	m, _ := strconv.Atoi(month)
	y, _ := strconv.Atoi(yr)
	if y < 80 {
		y += 2000
	} else {
		y += 1900
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
