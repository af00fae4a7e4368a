package validation

import (
	"fmt"
	"strings"

	"github.com/hance08/atm/internal/constants"
	"github.com/shopspring/decimal"
)

// ValidateAccountNumber checks an account number typed on the login, signup or transfer screen.
// It ends up as a URL path segment, so separators are rejected.
func ValidateAccountNumber(s string) error {
	number := strings.TrimSpace(s)

	if number == "" {
		return fmt.Errorf("account number can't be empty")
	}

	if strings.ContainsAny(number, "/?#") {
		return fmt.Errorf("account number cannot contain '/', '?' or '#'")
	}

	if len(number) > constants.MaxAccountNumberLen {
		return fmt.Errorf("account number too long (max %d characters)", constants.MaxAccountNumberLen)
	}
	return nil
}

// ValidatePIN accepts any non-empty PIN up to MaxPINLen characters
func ValidatePIN(s string) error {
	if s == "" {
		return fmt.Errorf("PIN can't be empty")
	}
	if len(s) > constants.MaxPINLen {
		return fmt.Errorf("PIN too long (max %d characters)", constants.MaxPINLen)
	}
	return nil
}

func ValidateOwnerName(s string) error {
	name := strings.TrimSpace(s)
	if name == "" {
		return fmt.Errorf("owner name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("owner name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateAmount validates a deposit, withdraw or transfer amount
func ValidateAmount(s string) error {
	input := strings.TrimSpace(s)
	if input == "" {
		return fmt.Errorf("amount is required")
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return fmt.Errorf("invalid number format")
	}

	if !amount.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}

	if amount.Exponent() < -2 {
		return fmt.Errorf("amount can have at most 2 decimal places")
	}

	return nil
}

// ValidateInitialBalance validates initial balance input; empty means zero.
func ValidateInitialBalance(s string) error {
	input := strings.TrimSpace(s)
	if input == "" || input == "0" {
		return nil
	}

	balance, err := decimal.NewFromString(input)
	if err != nil {
		return fmt.Errorf("invalid number format")
	}

	if balance.IsNegative() {
		return fmt.Errorf("initial balance can't be negative")
	}

	return nil
}
