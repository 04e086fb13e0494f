package model

// AccountSection groups chart-of-accounts entries for prompt rendering.
type AccountSection string

const (
	SectionRevenue     AccountSection = "Revenue"
	SectionCostOfSales AccountSection = "Cost of Sales"
	SectionExpenses    AccountSection = "Expenses"
	SectionAssets      AccountSection = "Assets"
	SectionLiabilities AccountSection = "Liabilities"
	SectionEquity      AccountSection = "Equity"
	SectionSuspense    AccountSection = "Suspense"
)

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	Code       string
	Name       string
	Section    AccountSection
	TaxCode    string // short classifier hint: GST, ITS, N-T, GST-Free
	EntityType string // "company", "sole_trader", ...
}
