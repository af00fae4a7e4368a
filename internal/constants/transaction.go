package constants

import "time"

const (
	// Credit type reported by the backend; every other type is a debit
	TxTypeDeposit = "DEPOSIT"

	// Date Layout
	DateTimeFormat = "2006-01-02 15:04:05"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultStatusTTL = 5 * time.Second
)
