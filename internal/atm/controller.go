package atm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hance08/atm/internal/api"
	"github.com/hance08/atm/internal/constants"
	"github.com/hance08/atm/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrActionUnavailable = errors.New("action not available on this screen")

const invalidAmountMessage = "Please enter a valid amount"

// Backend is the account-management service the controller delegates to.
// *api.Client implements it.
type Backend interface {
	CheckBalance(ctx context.Context, accountNumber, pin string) (decimal.Decimal, error)
	CreateAccount(ctx context.Context, acc api.NewAccount) error
	Deposit(ctx context.Context, accountNumber, pin string, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, accountNumber, pin string, amount decimal.Decimal) (decimal.Decimal, error)
	Transfer(ctx context.Context, accountNumber, pin, toAccount string, amount decimal.Decimal) (decimal.Decimal, error)
	Transactions(ctx context.Context, accountNumber, pin string) ([]api.Transaction, error)
}

// Controller owns all UI state and selects the next screen after each action.
// It is not safe for concurrent use; the shell drives it from one goroutine.
type Controller struct {
	backend Backend
	log     logrus.FieldLogger
	symbol  string
	ttl     time.Duration
	now     func() time.Time

	view    View
	session Session
	form    Form
	status  Status
	seq     uint64
}

type Option func(*Controller)

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

func WithCurrencySymbol(symbol string) Option {
	return func(c *Controller) { c.symbol = symbol }
}

func WithStatusTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func New(backend Backend, opts ...Option) *Controller {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Controller{
		backend: backend,
		log:     discard,
		symbol:  constants.DefaultCurrencySymbol,
		ttl:     constants.DefaultStatusTTL,
		now:     time.Now,
		view:    ViewLogin,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) View() View { return c.view }

func (c *Controller) Session() Session { return c.session }

func (c *Controller) Form() Form { return c.form }

func (c *Controller) CurrencySymbol() string { return c.symbol }

// Status returns the current banner, or false once it has expired or been cleared.
func (c *Controller) Status() (Status, bool) {
	if c.status.Text == "" || c.status.expired(c.now(), c.ttl) {
		return Status{}, false
	}
	return c.status, true
}

func (c *Controller) setStatus(kind StatusKind, text string) {
	c.seq++
	c.status = Status{Kind: kind, Text: text, Seq: c.seq, SetAt: c.now()}
}

func (c *Controller) fail(action string, err error, fallback string) {
	msg := api.UserMessage(err, fallback)
	c.log.WithFields(logrus.Fields{
		"action": action,
		"view":   string(c.view),
	}).WithError(err).Warn("action failed")
	c.setStatus(StatusError, msg)
}

func (c *Controller) require(views ...View) error {
	for _, v := range views {
		if c.view == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrActionUnavailable, c.view)
}

// SetCredentials fills the account number and PIN fields of the login or signup screen.
func (c *Controller) SetCredentials(accountNumber, pin string) error {
	if err := c.require(ViewLogin, ViewSignup); err != nil {
		return err
	}
	c.session.AccountNumber = accountNumber
	c.session.PIN = pin
	return nil
}

func (c *Controller) SetSignupDetails(ownerName, initialBalance string) error {
	if err := c.require(ViewSignup); err != nil {
		return err
	}
	c.form.OwnerName = ownerName
	c.form.InitialBalance = initialBalance
	return nil
}

func (c *Controller) SetAmount(amount string) error {
	if err := c.require(ViewDeposit, ViewWithdraw, ViewTransfer); err != nil {
		return err
	}
	c.form.Amount = amount
	return nil
}

func (c *Controller) SetToAccount(toAccount string) error {
	if err := c.require(ViewTransfer); err != nil {
		return err
	}
	c.form.ToAccount = toAccount
	return nil
}

// ShowSignup and ShowLogin switch between the two unauthenticated screens.
func (c *Controller) ShowSignup() error {
	if err := c.require(ViewLogin); err != nil {
		return err
	}
	c.view = ViewSignup
	return nil
}

func (c *Controller) ShowLogin() error {
	if err := c.require(ViewSignup); err != nil {
		return err
	}
	c.view = ViewLogin
	return nil
}

// Login checks the credentials by asking for the balance.
func (c *Controller) Login(ctx context.Context) error {
	if err := c.require(ViewLogin); err != nil {
		return err
	}

	balance, err := c.backend.CheckBalance(ctx, c.session.AccountNumber, c.session.PIN)
	if err != nil {
		c.fail("login", err, "Invalid credentials")
		return nil
	}

	c.session.Balance = &balance
	c.setStatus(StatusSuccess, "Login successful!")
	c.view = ViewMenu
	return nil
}

func (c *Controller) Signup(ctx context.Context) error {
	if err := c.require(ViewSignup); err != nil {
		return err
	}

	initial := decimal.Zero
	if s := strings.TrimSpace(c.form.InitialBalance); s != "" {
		parsed, err := utils.ParseAmount(s)
		if err != nil {
			c.fail("signup", err, "Please enter a valid initial balance")
			return nil
		}
		initial = parsed
	}

	err := c.backend.CreateAccount(ctx, api.NewAccount{
		AccountNumber:  c.session.AccountNumber,
		OwnerName:      c.form.OwnerName,
		PIN:            c.session.PIN,
		InitialBalance: initial,
	})
	if err != nil {
		c.fail("signup", err, "Signup failed")
		return nil
	}

	c.setStatus(StatusSuccess, "Account created successfully! Please login.")
	c.view = ViewLogin
	c.session.AccountNumber = ""
	c.session.PIN = ""
	c.form.OwnerName = ""
	c.form.InitialBalance = ""
	return nil
}

// Choose navigates from the menu to one of the operation screens.
func (c *Controller) Choose(v View) error {
	if err := c.require(ViewMenu); err != nil {
		return err
	}
	switch v {
	case ViewDeposit, ViewWithdraw, ViewTransfer:
		c.view = v
		return nil
	default:
		return fmt.Errorf("%w: cannot open %s from menu", ErrActionUnavailable, v)
	}
}

func (c *Controller) ViewHistory(ctx context.Context) error {
	if err := c.require(ViewMenu); err != nil {
		return err
	}

	txs, err := c.backend.Transactions(ctx, c.session.AccountNumber, c.session.PIN)
	if err != nil {
		c.fail("view history", err, "Failed to load transactions")
		return nil
	}

	c.session.Transactions = txs
	c.view = ViewTransactions
	return nil
}

func (c *Controller) ConfirmDeposit(ctx context.Context) error {
	if err := c.require(ViewDeposit); err != nil {
		return err
	}
	return c.moveFunds(ctx, "deposit", c.backend.Deposit, "Deposit failed", "Deposited")
}

func (c *Controller) ConfirmWithdraw(ctx context.Context) error {
	if err := c.require(ViewWithdraw); err != nil {
		return err
	}
	return c.moveFunds(ctx, "withdraw", c.backend.Withdraw, "Withdrawal failed", "Withdrew")
}

type fundsCall func(ctx context.Context, accountNumber, pin string, amount decimal.Decimal) (decimal.Decimal, error)

func (c *Controller) moveFunds(ctx context.Context, action string, call fundsCall, fallback, verb string) error {
	amount, err := utils.ParseAmount(c.form.Amount)
	if err != nil {
		c.fail(action, err, invalidAmountMessage)
		return nil
	}

	balance, err := call(ctx, c.session.AccountNumber, c.session.PIN, amount)
	if err != nil {
		c.fail(action, err, fallback)
		return nil
	}

	c.session.Balance = &balance
	c.setStatus(StatusSuccess, fmt.Sprintf("%s %s%s successfully!", verb, c.symbol, c.form.Amount))
	c.form.Amount = ""
	c.view = ViewMenu
	return nil
}

func (c *Controller) ConfirmTransfer(ctx context.Context) error {
	if err := c.require(ViewTransfer); err != nil {
		return err
	}

	amount, err := utils.ParseAmount(c.form.Amount)
	if err != nil {
		c.fail("transfer", err, invalidAmountMessage)
		return nil
	}

	balance, err := c.backend.Transfer(ctx, c.session.AccountNumber, c.session.PIN, c.form.ToAccount, amount)
	if err != nil {
		c.fail("transfer", err, "Transfer failed")
		return nil
	}

	c.session.Balance = &balance
	c.setStatus(StatusSuccess, fmt.Sprintf("Transferred %s%s successfully!", c.symbol, c.form.Amount))
	c.form.Amount = ""
	c.form.ToAccount = ""
	c.view = ViewMenu
	return nil
}

// Cancel leaves an operation screen without calling the backend.
func (c *Controller) Cancel() error {
	if err := c.require(ViewDeposit, ViewWithdraw, ViewTransfer); err != nil {
		return err
	}
	c.form.Amount = ""
	c.form.ToAccount = ""
	c.view = ViewMenu
	return nil
}

func (c *Controller) Back() error {
	if err := c.require(ViewTransactions); err != nil {
		return err
	}
	c.view = ViewMenu
	return nil
}

// Logout clears the session and every input field from any screen.
func (c *Controller) Logout() {
	c.session = Session{}
	c.form.Amount = ""
	c.form.ToAccount = ""
	c.status = Status{}
	c.view = ViewLogin
}
