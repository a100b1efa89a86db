// Package currency converts expense line amounts into the organization's
// home currency via a chained home/USD + third-currency/USD rate model.
package currency

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoRate means the conversion depends on a rate that is zero or unset.
	ErrNoRate = errors.New("currency: exchange rate unset")
	// ErrUnknownCurrency means the code matches neither home, USD nor the
	// configured third currency.
	ErrUnknownCurrency = errors.New("currency: no rate for currency")
)

const USD = "USD"

// Converter holds the per-form exchange rates. HomeToUSD is home units
// per 1 USD; ThirdToUSD is third-currency units per 1 USD.
type Converter struct {
	Home       string
	HomeToUSD  decimal.Decimal
	Third      string
	ThirdToUSD decimal.Decimal
}

// ToHome converts amount in the given currency into the home currency.
//
//   - home currency: identity
//   - USD:           amount * HomeToUSD
//   - third:         amount / ThirdToUSD to reach USD, then * HomeToUSD
//
// A zero or unset rate yields ErrNoRate rather than a division by zero;
// any other code yields ErrUnknownCurrency. Callers are expected to treat
// both as "contributes nothing" and surface the skip to the user.
func (c Converter) ToHome(amount decimal.Decimal, code string) (decimal.Decimal, error) {
	switch code {
	case c.Home:
		return amount, nil
	case USD:
		if !c.HomeToUSD.IsPositive() {
			return decimal.Zero, ErrNoRate
		}

		return amount.Mul(c.HomeToUSD), nil
	case c.Third:
		if c.Third == "" || c.Third == "None" {
			return decimal.Zero, ErrUnknownCurrency
		}

		if !c.ThirdToUSD.IsPositive() || !c.HomeToUSD.IsPositive() {
			return decimal.Zero, ErrNoRate
		}

		usd := amount.DivRound(c.ThirdToUSD, 8)

		return usd.Mul(c.HomeToUSD), nil
	default:
		return decimal.Zero, ErrUnknownCurrency
	}
}
