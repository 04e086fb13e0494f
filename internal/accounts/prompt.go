package accounts

import (
	"fmt"
	"strings"

	"github.com/statementhub/statementhub/internal/model"
)

// promptSections is the rendering order for the chart reference sent
// to the classifier.
var promptSections = []model.AccountSection{
	model.SectionRevenue,
	model.SectionCostOfSales,
	model.SectionExpenses,
	model.SectionAssets,
	model.SectionLiabilities,
	model.SectionEquity,
	model.SectionSuspense,
}

// Prompt renders the chart-of-accounts reference text handed to the
// classifier for an entity type, including account listings, merchant
// classification rules, and the short tax-type code legend.
func (s *Service) Prompt(entityType string) string {
	accts := s.ForEntityType(entityType)
	if len(accts) == 0 {
		accts = s.ForEntityType("company")
	}
	if len(accts) == 0 {
		accts = s.accounts
	}

	bySection := make(map[model.AccountSection][]string)
	for _, a := range accts {
		entry := a.Code + " " + a.Name
		if a.TaxCode != "" {
			entry += fmt.Sprintf(" (%s)", a.TaxCode)
		}
		bySection[a.Section] = append(bySection[a.Section], entry)
	}

	var lines []string
	lines = append(lines, "CHART OF ACCOUNTS:")
	for _, section := range promptSections {
		if entries, ok := bySection[section]; ok {
			lines = append(lines, strings.ToUpper(string(section))+": "+strings.Join(entries, ", "))
		}
	}

	lines = append(lines,
		"",
		"CLASSIFICATION RULES:",
		"- Fuel (BP, Shell, Ampol, EG Group, 7-Eleven, United, Caltex) = Fuel & oil account, GST",
		"- Hardware (Bunnings, Total Tools) = Tools & equipment account, GST",
		"- Insurance = Insurance account, ITS",
		"- ATO payments = PAYG/Tax Payable account, ITS",
		"- Bank fees = Bank charges account, ITS",
		"- Telco (Telstra, Optus, Vodafone) = Telephone account, GST",
		"- Internal transfers = Loan/Drawing account, N-T",
		"- Customer payments/deposits = Sales account, GST",
		"- Interest earned = Interest received account, ITS",
		"- Rent/lease = Rent account, GST",
		"- Utilities (AGL, Origin, Energy Australia) = Electricity/gas account, GST",
		"- Wages/salary = Wages account, ITS",
		"- Super = Superannuation account, ITS",
		"- Software (Microsoft, Google, Xero, MYOB) = Computer/IT account, GST",
		"",
		"TAX TYPE CODES:",
		"- GST = GST on Income (for income) or GST on Expenses (for expenses)",
		"- ITS = Input Taxed (no GST component)",
		"- N-T = Not Reportable (balance sheet items, internal transfers)",
		"- GST-Free = GST Free Income or GST Free Expenses",
		"",
		"IMPORTANT: You MUST use account codes from the chart above. Do NOT invent codes.",
		"CONFIDENCE: 5=Certain, 4=Very likely, 3=Probable, 2=Uncertain, 1=Unknown",
	)

	return strings.Join(lines, "\n")
}
