package classify

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/statementhub/statementhub/internal/model"
)

// MapTaxType maps the classifier's short tax code to the full tax
// category. A generic "GST" resolves by amount sign; non-registered
// entities always get BAS Excluded, whatever the classifier said.
func MapTaxType(shortCode string, isIncome, gstRegistered bool) model.TaxType {
	if !gstRegistered {
		return model.TaxBASExcluded
	}

	switch strings.ToUpper(strings.TrimSpace(shortCode)) {
	case "GST":
		return model.DefaultTaxForAmount(isIncome)
	case "GST ON INCOME":
		return model.TaxGSTIncome
	case "GST ON EXPENSES":
		return model.TaxGSTExpenses
	case "ITS", "INPUT TAXED":
		return model.TaxInputTaxed
	case "N-T", "NOT REPORTABLE":
		return model.TaxNotReportable
	case "GST-FREE", "GST FREE":
		if isIncome {
			return model.TaxGSTFreeIncome
		}
		return model.TaxGSTFreeExpenses
	case "GST FREE INCOME":
		return model.TaxGSTFreeIncome
	case "GST FREE EXPENSES":
		return model.TaxGSTFreeExpenses
	case "BAS EXCLUDED":
		return model.TaxBASExcluded
	default:
		return model.DefaultTaxForAmount(isIncome)
	}
}

var eleven = decimal.NewFromInt(11)

// ComputeGST derives the GST and net components of an amount.
// Australian GST is 1/11 of the gross for GST-bearing categories;
// everything else has no GST component.
func ComputeGST(amount decimal.Decimal, taxType model.TaxType, gstRegistered bool) (gst, net decimal.Decimal) {
	abs := amount.Abs()
	if !gstRegistered || !taxType.CarriesGST() {
		return decimal.NewFromInt(0), abs
	}
	gst = abs.Div(eleven).Round(2)
	net = abs.Sub(gst).Round(2)
	return gst, net
}
