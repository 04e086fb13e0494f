package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementhub/statementhub/internal/model"
)

func TestReadWriteAccounts_RoundTrip(t *testing.T) {
	chart := DefaultChart("company")

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, chart))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, chart, got)
}

func TestReadAccounts_BadFieldCount(t *testing.T) {
	csv := "account_code,account_name,section,tax_code,entity_type\n4000,Sales,Revenue\n"
	_, err := ReadAccounts(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestReadAccounts_MissingCode(t *testing.T) {
	csv := "account_code,account_name,section,tax_code,entity_type\n,Sales,Revenue,GST,company\n"
	_, err := ReadAccounts(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing account_code")
}

func TestUnmarshalAccount(t *testing.T) {
	acct, err := UnmarshalAccount([]string{"6100", "Fuel & Oil", "Expenses", "GST", "company"})
	require.NoError(t, err)
	assert.Equal(t, "6100", acct.Code)
	assert.Equal(t, model.SectionExpenses, acct.Section)
	assert.Equal(t, "GST", acct.TaxCode)
}
