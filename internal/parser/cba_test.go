package parser

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCBAFixture(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/cba_statement.txt")
	require.NoError(t, err)
	return []string{string(data)}
}

func TestCBAParser_Parse(t *testing.T) {
	p := NewCBAParser(zerolog.Nop())
	stmt, err := p.Parse(loadCBAFixture(t))
	require.NoError(t, err)

	require.Len(t, stmt.Transactions, 5)

	assert.Equal(t, "12000.00", stmt.Metadata.OpeningBalance.StringFixed(2))
	assert.Equal(t, "13001.17", stmt.Metadata.ClosingBalance.StringFixed(2))
	assert.Equal(t, "ACME TRADING PTY LTD", stmt.Metadata.AccountName)
	assert.Equal(t, "062-904", stmt.Metadata.BSB)
	assert.Equal(t, "10482731", stmt.Metadata.AccountNumber)
	assert.Equal(t, "1 Sep 2025", stmt.Metadata.PeriodStart)
	assert.Equal(t, "30 Sep 2025", stmt.Metadata.PeriodEnd)

	// Complete credit line.
	assert.Equal(t, "Direct Credit INVOICE PAYMENT ACME", stmt.Transactions[0].Description)
	assert.Equal(t, "1100.00", stmt.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, 2025, stmt.Transactions[0].Date.Year())
	assert.Equal(t, 2, stmt.Transactions[0].Date.Day())

	// Complete debit line (placeholder column).
	assert.Equal(t, "EFTPOS BUNNINGS 652 WAREHOUSE", stmt.Transactions[1].Description)
	assert.Equal(t, "-110.00", stmt.Transactions[1].Amount.StringFixed(2))
}

func TestCBAParser_WrappedTransactionResolvesFromBareAmounts(t *testing.T) {
	p := NewCBAParser(zerolog.Nop())
	stmt, err := p.Parse(loadCBAFixture(t))
	require.NoError(t, err)

	txn := stmt.Transactions[2]
	assert.Contains(t, txn.Description, "PaedsPpl")
	assert.Equal(t, "600.00", txn.Amount.StringFixed(2))
	assert.Equal(t, 5, txn.Date.Day())
	assert.Equal(t, 9, int(txn.Date.Month()))
}

func TestCBAParser_DatedLineAbsorbedWhilePending(t *testing.T) {
	p := NewCBAParser(zerolog.Nop())
	stmt, err := p.Parse(loadCBAFixture(t))
	require.NoError(t, err)

	// "10 Sep 500.00 $ ..." completes the pending 08 Sep transfer; the
	// date prefix on the wrapped line must not open a new transaction.
	txn := stmt.Transactions[3]
	assert.Equal(t, "Transfer to CBA account NetBank", txn.Description)
	assert.Equal(t, "-500.00", txn.Amount.StringFixed(2))
	assert.Equal(t, 8, txn.Date.Day())
}

func TestCBAParser_ContinuationTextJoinsDescription(t *testing.T) {
	p := NewCBAParser(zerolog.Nop())
	stmt, err := p.Parse(loadCBAFixture(t))
	require.NoError(t, err)

	txn := stmt.Transactions[4]
	assert.Equal(t, "Loan Repayment LN REPAY Commitment Fee", txn.Description)
	assert.Equal(t, "-88.83", txn.Amount.StringFixed(2))
}

func TestCBAParser_Reconciles(t *testing.T) {
	p := NewCBAParser(zerolog.Nop())
	stmt, err := p.Parse(loadCBAFixture(t))
	require.NoError(t, err)

	assert.True(t, Reconcile(stmt).IsZero(),
		"opening balance plus transactions must equal closing balance")
}

func TestCBAParser_NoZeroAmounts(t *testing.T) {
	pages := []string{
		"Date Transaction Debit Credit Balance\n" +
			"01 Sep 2025 OPENING BALANCE $100.00 CR\n" +
			"02 Sep Fee Waived 0.00 $ $100.00 CR\n" +
			"03 Sep Deposit $50.00 $150.00 CR\n",
	}
	p := NewCBAParser(zerolog.Nop())
	stmt, err := p.Parse(pages)
	require.NoError(t, err)

	require.Len(t, stmt.Transactions, 1)
	for _, txn := range stmt.Transactions {
		assert.False(t, txn.Amount.IsZero())
	}
}

func TestCBAParser_UnresolvedPendingDropped(t *testing.T) {
	pages := []string{
		"Date Transaction Debit Credit Balance\n" +
			"02 Sep Deposit $50.00 $150.00 CR\n" +
			"05 Sep Dangling description with no amount\n",
	}
	p := NewCBAParser(zerolog.Nop())
	stmt, err := p.Parse(pages)
	require.NoError(t, err)

	require.Len(t, stmt.Transactions, 1)
	assert.Equal(t, "Deposit", stmt.Transactions[0].Description)
}

func TestCBAParser_Match(t *testing.T) {
	p := NewCBAParser(zerolog.Nop())
	assert.True(t, p.Match("Commonwealth Bank of Australia"))
	assert.True(t, p.Match("statement from COMMBANK app"))
	assert.False(t, p.Match("Westpac Banking Corporation"))
}
