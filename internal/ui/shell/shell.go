package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/atm/internal/api"
	"github.com/hance08/atm/internal/atm"
	"github.com/hance08/atm/internal/errhandler"
	"github.com/shopspring/decimal"
)

type LoginChoice int

const (
	LoginSubmit LoginChoice = iota
	LoginCreateAccount
	LoginQuit
)

type MenuChoice int

const (
	MenuDeposit MenuChoice = iota
	MenuWithdraw
	MenuTransfer
	MenuHistory
	MenuLogout
)

type Credentials struct {
	AccountNumber string
	PIN           string
}

type SignupInput struct {
	AccountNumber  string
	OwnerName      string
	PIN            string
	InitialBalance string
}

type TransferInput struct {
	ToAccount string
	Amount    string
}

// Prompter collects input for one screen. Returning an interrupt error
// (see errhandler.IsInterrupt) means the user backed out of the screen.
type Prompter interface {
	LoginChoice() (LoginChoice, error)
	Credentials() (Credentials, error)
	Signup() (SignupInput, error)
	MenuChoice() (MenuChoice, error)
	Amount(title string) (string, error)
	Transfer() (TransferInput, error)
	Back() error
}

// Renderer draws screens and banners.
type Renderer interface {
	Header(title string)
	Status(st atm.Status)
	Balance(accountNumber string, balance decimal.Decimal)
	Transactions(txs []api.Transaction) error
}

var screenTitles = map[atm.View]string{
	atm.ViewLogin:        "ATM Login",
	atm.ViewSignup:       "Create Account",
	atm.ViewMenu:         "Main Menu",
	atm.ViewDeposit:      "Deposit",
	atm.ViewWithdraw:     "Withdraw",
	atm.ViewTransfer:     "Transfer",
	atm.ViewTransactions: "Transaction History",
}

// Shell is the interactive event loop around a Controller.
type Shell struct {
	ctrl     *atm.Controller
	prompter Prompter
	renderer Renderer

	lastStatus uint64
}

func New(ctrl *atm.Controller, prompter Prompter, renderer Renderer) *Shell {
	return &Shell{
		ctrl:     ctrl,
		prompter: prompter,
		renderer: renderer,
	}
}

// Run renders and dispatches screens until the user quits from the login
// screen or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.showStatus()
		s.renderer.Header(screenTitles[s.ctrl.View()])

		quit, err := s.step(ctx)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) showStatus() {
	st, ok := s.ctrl.Status()
	if !ok || st.Seq == s.lastStatus {
		return
	}
	s.lastStatus = st.Seq
	s.renderer.Status(st)
}

func (s *Shell) step(ctx context.Context) (bool, error) {
	switch s.ctrl.View() {
	case atm.ViewLogin:
		return s.login(ctx)
	case atm.ViewSignup:
		return false, s.signup(ctx)
	case atm.ViewMenu:
		return false, s.menu(ctx)
	case atm.ViewDeposit:
		return false, s.funds(ctx, "Amount to deposit:", s.ctrl.ConfirmDeposit)
	case atm.ViewWithdraw:
		return false, s.funds(ctx, "Amount to withdraw:", s.ctrl.ConfirmWithdraw)
	case atm.ViewTransfer:
		return false, s.transfer(ctx)
	case atm.ViewTransactions:
		return false, s.history()
	default:
		return false, fmt.Errorf("unknown screen %q", s.ctrl.View())
	}
}

// cancelled splits prompt errors into "user backed out" and real failures.
func cancelled(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errhandler.IsInterrupt(err) {
		return true, nil
	}
	return false, err
}

func (s *Shell) login(ctx context.Context) (bool, error) {
	choice, err := s.prompter.LoginChoice()
	if back, err := cancelled(err); back || err != nil {
		return back, err
	}

	switch choice {
	case LoginQuit:
		return true, nil
	case LoginCreateAccount:
		return false, s.ctrl.ShowSignup()
	}

	creds, err := s.prompter.Credentials()
	if back, err := cancelled(err); back || err != nil {
		return false, err
	}

	if err := s.ctrl.SetCredentials(creds.AccountNumber, creds.PIN); err != nil {
		return false, err
	}
	return false, s.ctrl.Login(ctx)
}

func (s *Shell) signup(ctx context.Context) error {
	in, err := s.prompter.Signup()
	if back, err := cancelled(err); err != nil {
		return err
	} else if back {
		return s.ctrl.ShowLogin()
	}

	if err := s.ctrl.SetCredentials(in.AccountNumber, in.PIN); err != nil {
		return err
	}
	if err := s.ctrl.SetSignupDetails(in.OwnerName, in.InitialBalance); err != nil {
		return err
	}
	return s.ctrl.Signup(ctx)
}

func (s *Shell) menu(ctx context.Context) error {
	sess := s.ctrl.Session()
	if sess.Balance != nil {
		s.renderer.Balance(sess.AccountNumber, *sess.Balance)
	}

	choice, err := s.prompter.MenuChoice()
	if back, err := cancelled(err); err != nil {
		return err
	} else if back {
		s.ctrl.Logout()
		return nil
	}

	switch choice {
	case MenuDeposit:
		return s.ctrl.Choose(atm.ViewDeposit)
	case MenuWithdraw:
		return s.ctrl.Choose(atm.ViewWithdraw)
	case MenuTransfer:
		return s.ctrl.Choose(atm.ViewTransfer)
	case MenuHistory:
		return s.ctrl.ViewHistory(ctx)
	case MenuLogout:
		s.ctrl.Logout()
		return nil
	default:
		return errors.New("unknown menu choice")
	}
}

func (s *Shell) funds(ctx context.Context, title string, confirm func(context.Context) error) error {
	amount, err := s.prompter.Amount(title)
	if back, err := cancelled(err); err != nil {
		return err
	} else if back {
		return s.ctrl.Cancel()
	}

	if err := s.ctrl.SetAmount(amount); err != nil {
		return err
	}
	return confirm(ctx)
}

func (s *Shell) transfer(ctx context.Context) error {
	in, err := s.prompter.Transfer()
	if back, err := cancelled(err); err != nil {
		return err
	} else if back {
		return s.ctrl.Cancel()
	}

	if err := s.ctrl.SetToAccount(in.ToAccount); err != nil {
		return err
	}
	if err := s.ctrl.SetAmount(in.Amount); err != nil {
		return err
	}
	return s.ctrl.ConfirmTransfer(ctx)
}

func (s *Shell) history() error {
	if err := s.renderer.Transactions(s.ctrl.Session().Transactions); err != nil {
		return err
	}

	if _, err := cancelled(s.prompter.Back()); err != nil {
		return err
	}
	return s.ctrl.Back()
}
