package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const storeTimeout = 5 * time.Second

// FormatMoney renders an amount with two decimals and its currency code.
func FormatMoney(amount float64, code string) string {
	return fmt.Sprintf("%.2f %s", amount, code)
}

// FormatDecimal renders a decimal amount with two decimals.
func FormatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// StoreCtx returns a context with a standard timeout for store operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
