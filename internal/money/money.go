package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNegativeAmount   = errors.New("amount is negative")
)

// Money is an exact decimal amount in a single ISO-4217 currency.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func New(amount decimal.Decimal, code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return Money{Amount: amount, Currency: unit}, nil
}

// MustParse is a fixture helper, it panics on bad input.
func MustParse(amount string, code string) Money {
	m, err := New(decimal.RequireFromString(amount), code)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Validate() error {
	if m.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// Mul scales the amount by a whole quantity, the currency is unchanged.
func (m Money) Mul(quantity int64) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(quantity)),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency.String() != other.Currency.String() {
		return Money{}, fmt.Errorf("%s + %s: %w", m.Currency, other.Currency, ErrCurrencyMismatch)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Equal(other Money) bool {
	return m.Currency.String() == other.Currency.String() && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency.String()
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.Amount, Currency: m.Currency.String()})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := New(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}
