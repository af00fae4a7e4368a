package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals behind the currency symbol, e.g. "$500.00".
func FormatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}

// FormatSigned renders a history amount with a leading "+" for credits and "-" for debits.
func FormatSigned(symbol string, amount decimal.Decimal, credit bool) string {
	sign := "-"
	if credit {
		sign = "+"
	}
	return sign + FormatMoney(symbol, amount.Abs())
}

// ParseAmount parses a user typed amount such as "150", "150.5" or "150.50"
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amountStr)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", amountStr)
	}

	return amount, nil
}
