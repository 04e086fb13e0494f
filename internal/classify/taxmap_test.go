package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/statementhub/statementhub/internal/model"
)

func TestMapTaxType(t *testing.T) {
	tests := []struct {
		code     string
		isIncome bool
		want     model.TaxType
	}{
		{"GST", true, model.TaxGSTIncome},
		{"GST", false, model.TaxGSTExpenses},
		{"gst on income", true, model.TaxGSTIncome},
		{"GST ON EXPENSES", false, model.TaxGSTExpenses},
		{"ITS", false, model.TaxInputTaxed},
		{"Input Taxed", false, model.TaxInputTaxed},
		{"N-T", false, model.TaxNotReportable},
		{"NOT REPORTABLE", true, model.TaxNotReportable},
		{"GST-Free", true, model.TaxGSTFreeIncome},
		{"GST FREE", false, model.TaxGSTFreeExpenses},
		{"GST FREE INCOME", false, model.TaxGSTFreeIncome},
		{"BAS EXCLUDED", true, model.TaxBASExcluded},
		{"SOMETHING ODD", true, model.TaxGSTIncome},
		{"SOMETHING ODD", false, model.TaxGSTExpenses},
		{"", false, model.TaxGSTExpenses},
	}
	for _, tt := range tests {
		got := MapTaxType(tt.code, tt.isIncome, true)
		assert.Equal(t, tt.want, got, "code %q income=%v", tt.code, tt.isIncome)
	}
}

func TestMapTaxType_NotRegisteredAlwaysExcluded(t *testing.T) {
	for _, code := range []string{"GST", "ITS", "N-T", "GST-Free", "anything"} {
		assert.Equal(t, model.TaxBASExcluded, MapTaxType(code, true, false))
		assert.Equal(t, model.TaxBASExcluded, MapTaxType(code, false, false))
	}
}

func TestComputeGST(t *testing.T) {
	// $110 divides by 11 exactly.
	gst, net := ComputeGST(decimal.RequireFromString("-110.00"), model.TaxGSTExpenses, true)
	assert.Equal(t, "10.00", gst.StringFixed(2))
	assert.Equal(t, "100.00", net.StringFixed(2))

	// Rounded case.
	gst, net = ComputeGST(decimal.RequireFromString("100.00"), model.TaxGSTIncome, true)
	assert.Equal(t, "9.09", gst.StringFixed(2))
	assert.Equal(t, "90.91", net.StringFixed(2))

	// Non-GST category carries no GST component.
	gst, net = ComputeGST(decimal.RequireFromString("-110.00"), model.TaxInputTaxed, true)
	assert.Equal(t, "0.00", gst.StringFixed(2))
	assert.Equal(t, "110.00", net.StringFixed(2))

	// Not registered: never any GST.
	gst, net = ComputeGST(decimal.RequireFromString("-110.00"), model.TaxGSTExpenses, false)
	assert.Equal(t, "0.00", gst.StringFixed(2))
	assert.Equal(t, "110.00", net.StringFixed(2))
}

func TestCleanModelJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanModelJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanModelJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanModelJSON(`{"a":1}`))
}

func TestBuildBatchPrompt(t *testing.T) {
	req := BatchRequest{
		Transactions:  []model.RawTransaction{rawTxn("BP CONNECT", -55)},
		ChartPrompt:   "CHART OF ACCOUNTS:\nEXPENSES: 6100 Fuel & Oil (GST)",
		EntityType:    "sole_trader",
		GSTRegistered: true,
	}
	prompt := buildBatchPrompt(req)

	assert.Contains(t, prompt, "Sole Trader entity")
	assert.Contains(t, prompt, "IS registered for GST")
	assert.Contains(t, prompt, `Desc: "BP CONNECT", Amount: $55.00 (DEBIT)`)
	assert.Contains(t, prompt, `"classifications"`)
	assert.Contains(t, prompt, "6100 Fuel & Oil")

	req.GSTRegistered = false
	assert.Contains(t, buildBatchPrompt(req), "NOT registered for GST")
}
