package money_test

import (
	"encoding/json"
	"testing"

	"github.com/printeez/backend/internal/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m, err := money.New(decimal.RequireFromString("19.99"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "19.99 EUR", m.String())

	_, err = money.New(decimal.Zero, "not-a-currency")
	require.Error(t, err)
}

func TestMul(t *testing.T) {
	m := money.MustParse("19.99", "USD")

	got := m.Mul(3)
	assert.True(t, got.Equal(money.MustParse("59.97", "USD")))

	// exactness, no float drift
	got = money.MustParse("0.10", "USD").Mul(3)
	assert.True(t, got.Equal(money.MustParse("0.30", "USD")))
}

func TestAdd(t *testing.T) {
	sum, err := money.MustParse("1.50", "USD").Add(money.MustParse("2.25", "USD"))
	require.NoError(t, err)
	assert.True(t, sum.Equal(money.MustParse("3.75", "USD")))

	_, err = money.MustParse("1.50", "USD").Add(money.MustParse("2.25", "EUR"))
	require.ErrorIs(t, err, money.ErrCurrencyMismatch)
}

func TestValidate(t *testing.T) {
	require.NoError(t, money.MustParse("0", "USD").Validate())
	require.ErrorIs(t, money.MustParse("-0.01", "USD").Validate(), money.ErrNegativeAmount)
}

func TestJSONRoundTrip(t *testing.T) {
	m := money.MustParse("42.00", "SEK")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"42","currency":"SEK"}`, string(data))

	var back money.Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(back))

	require.Error(t, json.Unmarshal([]byte(`{"amount":"1","currency":"nope"}`), &back))
}
