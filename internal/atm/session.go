package atm

import (
	"time"

	"github.com/hance08/atm/internal/api"
	"github.com/shopspring/decimal"
)

// View identifies the screen the controller is on.
type View string

const (
	ViewLogin        View = "login"
	ViewSignup       View = "signup"
	ViewMenu         View = "menu"
	ViewDeposit      View = "deposit"
	ViewWithdraw     View = "withdraw"
	ViewTransfer     View = "transfer"
	ViewTransactions View = "transactions"
)

// Session is the in-memory state of the signed in user. AccountNumber and PIN
// double as the login/signup form fields; Balance stays nil until a login succeeds.
type Session struct {
	AccountNumber string
	PIN           string
	Balance       *decimal.Decimal
	Transactions  []api.Transaction
}

// Form holds the remaining input fields exactly as typed.
type Form struct {
	OwnerName      string
	InitialBalance string
	Amount         string
	ToAccount      string
}

type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the single banner shown to the user. Seq increases with every
// message so a renderer can tell a new banner from one it already printed.
type Status struct {
	Kind  StatusKind
	Text  string
	Seq   uint64
	SetAt time.Time
}

func (s Status) expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(s.SetAt.Add(ttl))
}
