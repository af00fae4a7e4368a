package atm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hance08/atm/internal/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type depositCall struct {
	Account string
	PIN     string
	Amount  decimal.Decimal
}

// fakeBackend answers every call with the configured result and records what it was asked.
type fakeBackend struct {
	balance    decimal.Decimal
	balanceErr error

	createErr error
	created   []api.NewAccount

	depositBalance decimal.Decimal
	depositErr     error
	deposits       []depositCall

	withdrawBalance decimal.Decimal
	withdrawErr     error

	transferBalance decimal.Decimal
	transferErr     error
	transferTo      string

	txs   []api.Transaction
	txErr error

	calls int
}

func (f *fakeBackend) CheckBalance(_ context.Context, _, _ string) (decimal.Decimal, error) {
	f.calls++
	return f.balance, f.balanceErr
}

func (f *fakeBackend) CreateAccount(_ context.Context, acc api.NewAccount) error {
	f.calls++
	f.created = append(f.created, acc)
	return f.createErr
}

func (f *fakeBackend) Deposit(_ context.Context, account, pin string, amount decimal.Decimal) (decimal.Decimal, error) {
	f.calls++
	f.deposits = append(f.deposits, depositCall{Account: account, PIN: pin, Amount: amount})
	return f.depositBalance, f.depositErr
}

func (f *fakeBackend) Withdraw(_ context.Context, _, _ string, _ decimal.Decimal) (decimal.Decimal, error) {
	f.calls++
	return f.withdrawBalance, f.withdrawErr
}

func (f *fakeBackend) Transfer(_ context.Context, _, _, toAccount string, _ decimal.Decimal) (decimal.Decimal, error) {
	f.calls++
	f.transferTo = toAccount
	return f.transferBalance, f.transferErr
}

func (f *fakeBackend) Transactions(_ context.Context, _, _ string) ([]api.Transaction, error) {
	f.calls++
	return f.txs, f.txErr
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestController(b *fakeBackend) (*Controller, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return New(b, WithClock(clock.Now)), clock
}

func loggedIn(t *testing.T, b *fakeBackend) *Controller {
	t.Helper()
	b.balance = decimal.NewFromInt(500)
	c, _ := newTestController(b)
	require.NoError(t, c.SetCredentials("1001", "4321"))
	require.NoError(t, c.Login(context.Background()))
	require.Equal(t, ViewMenu, c.View())
	return c
}

func requireStatus(t *testing.T, c *Controller, kind StatusKind, text string) {
	t.Helper()
	st, ok := c.Status()
	require.True(t, ok, "expected a visible status")
	assert.Equal(t, kind, st.Kind)
	assert.Equal(t, text, st.Text)
}

func TestInitialState(t *testing.T) {
	c, _ := newTestController(&fakeBackend{})
	assert.Equal(t, ViewLogin, c.View())
	assert.Nil(t, c.Session().Balance)
	_, ok := c.Status()
	assert.False(t, ok)
}

func TestFailedLoginsKeepLoginView(t *testing.T) {
	b := &fakeBackend{balanceErr: &api.StatusError{Op: "check balance", Status: 401, Message: "Invalid PIN"}}
	c, _ := newTestController(b)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.SetCredentials("1001", "0000"))
		require.NoError(t, c.Login(context.Background()))
		assert.Equal(t, ViewLogin, c.View())
		assert.Nil(t, c.Session().Balance)
		requireStatus(t, c, StatusError, "Invalid PIN")
	}

	b.balanceErr = &api.TransportError{Op: "check balance", Err: errors.New("dial tcp: refused")}
	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, ViewLogin, c.View())
	assert.Nil(t, c.Session().Balance)
	requireStatus(t, c, StatusError, "Connection error")

	b.balanceErr = &api.StatusError{Op: "check balance", Status: 500}
	require.NoError(t, c.Login(context.Background()))
	requireStatus(t, c, StatusError, "Invalid credentials")
}

func TestSuccessfulLogin(t *testing.T) {
	b := &fakeBackend{}
	c := loggedIn(t, b)

	require.NotNil(t, c.Session().Balance)
	assert.True(t, c.Session().Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "1001", c.Session().AccountNumber)
	requireStatus(t, c, StatusSuccess, "Login successful!")
}

func TestSignup(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestController(b)

	require.NoError(t, c.ShowSignup())
	require.Equal(t, ViewSignup, c.View())
	require.NoError(t, c.SetCredentials("2002", "1111"))
	require.NoError(t, c.SetSignupDetails("Grace Hopper", "250.50"))
	require.NoError(t, c.Signup(context.Background()))

	assert.Equal(t, ViewLogin, c.View())
	requireStatus(t, c, StatusSuccess, "Account created successfully! Please login.")
	require.Len(t, b.created, 1)
	assert.Equal(t, "2002", b.created[0].AccountNumber)
	assert.Equal(t, "Grace Hopper", b.created[0].OwnerName)
	assert.Equal(t, "1111", b.created[0].PIN)
	assert.True(t, b.created[0].InitialBalance.Equal(decimal.RequireFromString("250.5")))

	assert.Empty(t, c.Session().AccountNumber)
	assert.Empty(t, c.Session().PIN)
	assert.Empty(t, c.Form().OwnerName)
	assert.Empty(t, c.Form().InitialBalance)
}

func TestSignupEmptyInitialBalanceIsZero(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestController(b)

	require.NoError(t, c.ShowSignup())
	require.NoError(t, c.SetCredentials("2002", "1111"))
	require.NoError(t, c.SetSignupDetails("Grace", ""))
	require.NoError(t, c.Signup(context.Background()))

	require.Len(t, b.created, 1)
	assert.True(t, b.created[0].InitialBalance.IsZero())
}

func TestSignupFailureStays(t *testing.T) {
	b := &fakeBackend{createErr: &api.StatusError{Op: "create account", Status: 409, Message: "Account already exists"}}
	c, _ := newTestController(b)

	require.NoError(t, c.ShowSignup())
	require.NoError(t, c.SetCredentials("2002", "1111"))
	require.NoError(t, c.SetSignupDetails("Grace", "10"))
	require.NoError(t, c.Signup(context.Background()))

	assert.Equal(t, ViewSignup, c.View())
	requireStatus(t, c, StatusError, "Account already exists")
	assert.Equal(t, "2002", c.Session().AccountNumber)
	assert.Equal(t, "Grace", c.Form().OwnerName)
}

func TestSignupRejectsBadInitialBalance(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestController(b)

	require.NoError(t, c.ShowSignup())
	require.NoError(t, c.SetSignupDetails("Grace", "ten"))
	require.NoError(t, c.Signup(context.Background()))

	assert.Equal(t, ViewSignup, c.View())
	assert.Zero(t, b.calls)
	requireStatus(t, c, StatusError, "Please enter a valid initial balance")
}

func TestDeposit(t *testing.T) {
	b := &fakeBackend{depositBalance: decimal.NewFromInt(600)}
	c := loggedIn(t, b)

	require.NoError(t, c.Choose(ViewDeposit))
	require.NoError(t, c.SetAmount("100"))
	require.NoError(t, c.ConfirmDeposit(context.Background()))

	assert.Equal(t, ViewMenu, c.View())
	assert.True(t, c.Session().Balance.Equal(decimal.NewFromInt(600)))
	assert.Empty(t, c.Form().Amount)
	requireStatus(t, c, StatusSuccess, "Deposited $100 successfully!")

	require.Len(t, b.deposits, 1)
	assert.Equal(t, "1001", b.deposits[0].Account)
	assert.Equal(t, "4321", b.deposits[0].PIN)
	assert.True(t, b.deposits[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestDepositMalformedBalanceIsFailure(t *testing.T) {
	b := &fakeBackend{depositErr: &api.MalformedResponseError{Op: "deposit", Message: "Invalid balance received from server"}}
	c := loggedIn(t, b)

	require.NoError(t, c.Choose(ViewDeposit))
	require.NoError(t, c.SetAmount("100"))
	require.NoError(t, c.ConfirmDeposit(context.Background()))

	assert.Equal(t, ViewDeposit, c.View())
	assert.True(t, c.Session().Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "100", c.Form().Amount)
	requireStatus(t, c, StatusError, "Invalid balance received from server")
}

func TestInvalidAmountSkipsBackend(t *testing.T) {
	b := &fakeBackend{}
	c := loggedIn(t, b)
	calls := b.calls

	require.NoError(t, c.Choose(ViewWithdraw))
	require.NoError(t, c.SetAmount("a lot"))
	require.NoError(t, c.ConfirmWithdraw(context.Background()))

	assert.Equal(t, calls, b.calls)
	assert.Equal(t, ViewWithdraw, c.View())
	requireStatus(t, c, StatusError, "Please enter a valid amount")
}

func TestWithdraw(t *testing.T) {
	b := &fakeBackend{withdrawBalance: decimal.NewFromInt(450)}
	c := loggedIn(t, b)

	require.NoError(t, c.Choose(ViewWithdraw))
	require.NoError(t, c.SetAmount("50"))
	require.NoError(t, c.ConfirmWithdraw(context.Background()))

	assert.Equal(t, ViewMenu, c.View())
	assert.True(t, c.Session().Balance.Equal(decimal.NewFromInt(450)))
	requireStatus(t, c, StatusSuccess, "Withdrew $50 successfully!")
}

func TestWithdrawFailureStays(t *testing.T) {
	b := &fakeBackend{withdrawErr: &api.StatusError{Op: "withdraw", Status: 400, Message: "Insufficient funds"}}
	c := loggedIn(t, b)

	require.NoError(t, c.Choose(ViewWithdraw))
	require.NoError(t, c.SetAmount("5000"))
	require.NoError(t, c.ConfirmWithdraw(context.Background()))

	assert.Equal(t, ViewWithdraw, c.View())
	assert.True(t, c.Session().Balance.Equal(decimal.NewFromInt(500)))
	requireStatus(t, c, StatusError, "Insufficient funds")
}

func TestTransfer(t *testing.T) {
	b := &fakeBackend{transferBalance: decimal.NewFromInt(300)}
	c := loggedIn(t, b)

	require.NoError(t, c.Choose(ViewTransfer))
	require.NoError(t, c.SetToAccount("1002"))
	require.NoError(t, c.SetAmount("200"))
	require.NoError(t, c.ConfirmTransfer(context.Background()))

	assert.Equal(t, "1002", b.transferTo)
	assert.Equal(t, ViewMenu, c.View())
	assert.True(t, c.Session().Balance.Equal(decimal.NewFromInt(300)))
	assert.Empty(t, c.Form().Amount)
	assert.Empty(t, c.Form().ToAccount)
	requireStatus(t, c, StatusSuccess, "Transferred $200 successfully!")
}

func TestTransferFailureKeepsFields(t *testing.T) {
	b := &fakeBackend{transferErr: &api.StatusError{Op: "transfer", Status: 404, Message: "Destination account not found"}}
	c := loggedIn(t, b)

	require.NoError(t, c.Choose(ViewTransfer))
	require.NoError(t, c.SetToAccount("9999"))
	require.NoError(t, c.SetAmount("200"))
	require.NoError(t, c.ConfirmTransfer(context.Background()))

	assert.Equal(t, ViewTransfer, c.View())
	assert.Equal(t, "9999", c.Form().ToAccount)
	assert.Equal(t, "200", c.Form().Amount)
	assert.True(t, c.Session().Balance.Equal(decimal.NewFromInt(500)))
	requireStatus(t, c, StatusError, "Destination account not found")
}

func TestCancelClearsFields(t *testing.T) {
	b := &fakeBackend{}
	c := loggedIn(t, b)

	require.NoError(t, c.Choose(ViewTransfer))
	require.NoError(t, c.SetToAccount("1002"))
	require.NoError(t, c.SetAmount("10"))
	require.NoError(t, c.Cancel())

	assert.Equal(t, ViewMenu, c.View())
	assert.Empty(t, c.Form().Amount)
	assert.Empty(t, c.Form().ToAccount)
}

func TestViewHistory(t *testing.T) {
	txs := []api.Transaction{
		{Type: "DEPOSIT", Amount: decimal.NewFromInt(100)},
		{Type: "WITHDRAW", Amount: decimal.NewFromInt(40)},
	}
	b := &fakeBackend{txs: txs}
	c := loggedIn(t, b)

	require.NoError(t, c.ViewHistory(context.Background()))
	assert.Equal(t, ViewTransactions, c.View())
	assert.Equal(t, txs, c.Session().Transactions)

	require.NoError(t, c.Back())
	assert.Equal(t, ViewMenu, c.View())
}

func TestViewHistoryFailureStaysOnMenu(t *testing.T) {
	b := &fakeBackend{txErr: &api.StatusError{Op: "list transactions", Status: 500}}
	c := loggedIn(t, b)

	require.NoError(t, c.ViewHistory(context.Background()))
	assert.Equal(t, ViewMenu, c.View())
	assert.Empty(t, c.Session().Transactions)
	requireStatus(t, c, StatusError, "Failed to load transactions")
}

func TestLogoutFromAnyView(t *testing.T) {
	setups := map[View]func(c *Controller){
		ViewMenu:     func(c *Controller) {},
		ViewDeposit:  func(c *Controller) { _ = c.Choose(ViewDeposit); _ = c.SetAmount("10") },
		ViewWithdraw: func(c *Controller) { _ = c.Choose(ViewWithdraw); _ = c.SetAmount("10") },
		ViewTransfer: func(c *Controller) {
			_ = c.Choose(ViewTransfer)
			_ = c.SetAmount("10")
			_ = c.SetToAccount("1002")
		},
		ViewTransactions: func(c *Controller) { _ = c.ViewHistory(context.Background()) },
	}

	for view, setup := range setups {
		b := &fakeBackend{txs: []api.Transaction{{Type: "DEPOSIT"}}}
		c := loggedIn(t, b)
		setup(c)
		require.Equal(t, view, c.View())

		c.Logout()

		assert.Equal(t, ViewLogin, c.View(), view)
		assert.Equal(t, Session{}, c.Session(), view)
		assert.Empty(t, c.Form().Amount, view)
		assert.Empty(t, c.Form().ToAccount, view)
		_, ok := c.Status()
		assert.False(t, ok, view)
	}
}

func TestUnavailableActions(t *testing.T) {
	b := &fakeBackend{}
	c, _ := newTestController(b)

	assert.ErrorIs(t, c.ConfirmDeposit(context.Background()), ErrActionUnavailable)
	assert.ErrorIs(t, c.ViewHistory(context.Background()), ErrActionUnavailable)
	assert.ErrorIs(t, c.Choose(ViewDeposit), ErrActionUnavailable)
	assert.ErrorIs(t, c.Cancel(), ErrActionUnavailable)
	assert.ErrorIs(t, c.Back(), ErrActionUnavailable)
	assert.ErrorIs(t, c.SetAmount("1"), ErrActionUnavailable)
	assert.Equal(t, ViewLogin, c.View())
	assert.Zero(t, b.calls)

	c = loggedIn(t, b)
	assert.ErrorIs(t, c.Choose(ViewTransactions), ErrActionUnavailable)
	assert.ErrorIs(t, c.SetCredentials("x", "y"), ErrActionUnavailable)
	assert.Equal(t, ViewMenu, c.View())
}

func TestStatusExpiresAfterTTL(t *testing.T) {
	b := &fakeBackend{balanceErr: &api.StatusError{Status: 401, Message: "Invalid PIN"}}
	c, clock := newTestController(b)

	require.NoError(t, c.Login(context.Background()))
	first, ok := c.Status()
	require.True(t, ok)

	clock.t = clock.t.Add(4 * time.Second)
	require.NoError(t, c.Login(context.Background()))
	second, ok := c.Status()
	require.True(t, ok)
	assert.Greater(t, second.Seq, first.Seq)

	// the first message's deadline passes but the newer one stays visible
	clock.t = clock.t.Add(2 * time.Second)
	_, ok = c.Status()
	assert.True(t, ok)

	clock.t = clock.t.Add(3 * time.Second)
	_, ok = c.Status()
	assert.False(t, ok)
}

func TestScenarioLoginDepositTransfer(t *testing.T) {
	b := &fakeBackend{
		balance:         decimal.NewFromInt(500),
		depositBalance:  decimal.NewFromInt(600),
		transferBalance: decimal.NewFromInt(400),
	}
	c, _ := newTestController(b)
	ctx := context.Background()

	require.NoError(t, c.SetCredentials("1001", "4321"))
	require.NoError(t, c.Login(ctx))
	assert.Equal(t, ViewMenu, c.View())
	assert.Equal(t, "500.00", c.Session().Balance.StringFixed(2))

	require.NoError(t, c.Choose(ViewDeposit))
	require.NoError(t, c.SetAmount("100"))
	require.NoError(t, c.ConfirmDeposit(ctx))
	assert.Equal(t, ViewMenu, c.View())
	assert.Equal(t, "600.00", c.Session().Balance.StringFixed(2))

	require.NoError(t, c.Choose(ViewTransfer))
	require.NoError(t, c.SetToAccount("1002"))
	require.NoError(t, c.SetAmount("200"))
	require.NoError(t, c.ConfirmTransfer(ctx))
	assert.Equal(t, ViewMenu, c.View())
	assert.Equal(t, "400.00", c.Session().Balance.StringFixed(2))
}

func TestCurrencySymbolInMessages(t *testing.T) {
	b := &fakeBackend{balance: decimal.NewFromInt(10), depositBalance: decimal.NewFromInt(20)}
	c := New(b, WithCurrencySymbol("₹"))

	require.NoError(t, c.SetCredentials("1001", "4321"))
	require.NoError(t, c.Login(context.Background()))
	require.NoError(t, c.Choose(ViewDeposit))
	require.NoError(t, c.SetAmount("10"))
	require.NoError(t, c.ConfirmDeposit(context.Background()))
	requireStatus(t, c, StatusSuccess, "Deposited ₹10 successfully!")
}
