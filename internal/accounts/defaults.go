package accounts

import "github.com/statementhub/statementhub/internal/model"

// SuspenseCode is the fallback account for unclassifiable transactions.
const SuspenseCode = "0000"

// SuspenseName is the display name of the fallback account.
const SuspenseName = "Suspense"

// DefaultChart returns the default Australian chart of accounts for an
// entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "sole_trader":
		return soleTraderChart()
	default:
		return companyChart()
	}
}

func companyChart() []model.Account {
	et := "company"
	return []model.Account{
		{Code: "4000", Name: "Sales", Section: model.SectionRevenue, TaxCode: "GST", EntityType: et},
		{Code: "4200", Name: "Interest Received", Section: model.SectionRevenue, TaxCode: "ITS", EntityType: et},
		{Code: "4400", Name: "Other Income", Section: model.SectionRevenue, TaxCode: "GST", EntityType: et},
		{Code: "5000", Name: "Purchases", Section: model.SectionCostOfSales, TaxCode: "GST", EntityType: et},
		{Code: "5100", Name: "Subcontractors", Section: model.SectionCostOfSales, TaxCode: "GST", EntityType: et},
		{Code: "6000", Name: "Accounting Fees", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6050", Name: "Bank Charges", Section: model.SectionExpenses, TaxCode: "ITS", EntityType: et},
		{Code: "6100", Name: "Fuel & Oil", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6130", Name: "Tools & Equipment", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6150", Name: "Insurance", Section: model.SectionExpenses, TaxCode: "ITS", EntityType: et},
		{Code: "6200", Name: "Rent", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6250", Name: "Electricity & Gas", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6300", Name: "Telephone", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6350", Name: "Computer & IT", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6400", Name: "Wages & Salaries", Section: model.SectionExpenses, TaxCode: "ITS", EntityType: et},
		{Code: "6450", Name: "Superannuation", Section: model.SectionExpenses, TaxCode: "ITS", EntityType: et},
		{Code: "6500", Name: "Motor Vehicle Expenses", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6550", Name: "Repairs & Maintenance", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "1000", Name: "Business Bank Account", Section: model.SectionAssets, TaxCode: "N-T", EntityType: et},
		{Code: "1200", Name: "Trade Debtors", Section: model.SectionAssets, TaxCode: "N-T", EntityType: et},
		{Code: "1500", Name: "Plant & Equipment", Section: model.SectionAssets, TaxCode: "N-T", EntityType: et},
		{Code: "2000", Name: "Trade Creditors", Section: model.SectionLiabilities, TaxCode: "N-T", EntityType: et},
		{Code: "2200", Name: "GST Payable", Section: model.SectionLiabilities, TaxCode: "N-T", EntityType: et},
		{Code: "2300", Name: "PAYG Withholding Payable", Section: model.SectionLiabilities, TaxCode: "ITS", EntityType: et},
		{Code: "2500", Name: "Director Loan", Section: model.SectionLiabilities, TaxCode: "N-T", EntityType: et},
		{Code: "3000", Name: "Share Capital", Section: model.SectionEquity, TaxCode: "N-T", EntityType: et},
		{Code: "3200", Name: "Retained Earnings", Section: model.SectionEquity, TaxCode: "N-T", EntityType: et},
		{Code: SuspenseCode, Name: SuspenseName, Section: model.SectionSuspense, TaxCode: "N-T", EntityType: et},
	}
}

func soleTraderChart() []model.Account {
	et := "sole_trader"
	return []model.Account{
		{Code: "4000", Name: "Sales", Section: model.SectionRevenue, TaxCode: "GST", EntityType: et},
		{Code: "4200", Name: "Interest Received", Section: model.SectionRevenue, TaxCode: "ITS", EntityType: et},
		{Code: "5000", Name: "Materials", Section: model.SectionCostOfSales, TaxCode: "GST", EntityType: et},
		{Code: "6050", Name: "Bank Charges", Section: model.SectionExpenses, TaxCode: "ITS", EntityType: et},
		{Code: "6100", Name: "Fuel & Oil", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6130", Name: "Tools & Equipment", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6150", Name: "Insurance", Section: model.SectionExpenses, TaxCode: "ITS", EntityType: et},
		{Code: "6300", Name: "Telephone", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "6350", Name: "Computer & IT", Section: model.SectionExpenses, TaxCode: "GST", EntityType: et},
		{Code: "1000", Name: "Business Bank Account", Section: model.SectionAssets, TaxCode: "N-T", EntityType: et},
		{Code: "3100", Name: "Owner Drawings", Section: model.SectionEquity, TaxCode: "N-T", EntityType: et},
		{Code: "3150", Name: "Owner Contributions", Section: model.SectionEquity, TaxCode: "N-T", EntityType: et},
		{Code: SuspenseCode, Name: SuspenseName, Section: model.SectionSuspense, TaxCode: "N-T", EntityType: et},
	}
}
