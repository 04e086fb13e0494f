package model

// TaxType is the Australian GST treatment label for a transaction.
type TaxType string

const (
	TaxGSTIncome       TaxType = "GST on Income"
	TaxGSTExpenses     TaxType = "GST on Expenses"
	TaxGSTFreeIncome   TaxType = "GST Free Income"
	TaxGSTFreeExpenses TaxType = "GST Free Expenses"
	TaxInputTaxed      TaxType = "Input Taxed"
	TaxBASExcluded     TaxType = "BAS Excluded"
	TaxNotReportable   TaxType = "N-T"
)

// ParseTaxType validates a tax label supplied by a user.
func ParseTaxType(s string) (TaxType, bool) {
	switch t := TaxType(s); t {
	case TaxGSTIncome, TaxGSTExpenses, TaxGSTFreeIncome, TaxGSTFreeExpenses,
		TaxInputTaxed, TaxBASExcluded, TaxNotReportable:
		return t, true
	}
	return "", false
}

// CarriesGST reports whether the label implies a 1/11 GST component.
func (t TaxType) CarriesGST() bool {
	return t == TaxGSTIncome || t == TaxGSTExpenses
}

// DefaultTaxForAmount returns the sign-derived GST label: credits are
// income-side, debits are expense-side.
func DefaultTaxForAmount(isIncome bool) TaxType {
	if isIncome {
		return TaxGSTIncome
	}
	return TaxGSTExpenses
}
