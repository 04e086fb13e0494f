package parser

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementhub/statementhub/internal/model"
)

func TestRegistry_Detect(t *testing.T) {
	r := DefaultRegistry(zerolog.Nop())

	p, err := r.Detect("Commonwealth Bank of Australia statement")
	require.NoError(t, err)
	assert.Equal(t, "cba", p.BankName())

	p, err = r.Detect("Westpac Business One")
	require.NoError(t, err)
	assert.Equal(t, "westpac", p.BankName())
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	r := DefaultRegistry(zerolog.Nop())

	_, err := r.Detect("Some Credit Union Statement of Account")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "cba")
	assert.Contains(t, err.Error(), "westpac")
}

func TestRegistry_Parse_EmptyDocument(t *testing.T) {
	r := DefaultRegistry(zerolog.Nop())
	_, err := r.Parse(nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistry_Parse_Dispatches(t *testing.T) {
	r := DefaultRegistry(zerolog.Nop())
	stmt, err := r.Parse(loadCBAFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "cba", stmt.Bank)
	assert.Len(t, stmt.Transactions, 5)
}

func TestReconcile_ReportsDifference(t *testing.T) {
	stmt := &model.Statement{
		Metadata: model.StatementMetadata{
			OpeningBalance: decimal.NewFromInt(100),
			ClosingBalance: decimal.NewFromInt(90),
		},
		Transactions: []model.RawTransaction{
			{Amount: decimal.NewFromInt(-5)},
		},
	}
	assert.Equal(t, "-5.00", Reconcile(stmt).StringFixed(2))
}

func TestParseAmount(t *testing.T) {
	amt, err := parseAmount("1,234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", amt.StringFixed(2))

	amt, err = parseAmount("$600.00")
	require.NoError(t, err)
	assert.Equal(t, "600.00", amt.StringFixed(2))

	_, err = parseAmount("not-an-amount")
	assert.Error(t, err)
}
