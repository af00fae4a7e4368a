package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hance08/atm/internal/ui"
	"github.com/hance08/atm/internal/ui/shell"
	"github.com/hance08/atm/internal/validation"
)

const (
	optLogin         = "Login"
	optCreateAccount = "Create new account"
	optQuit          = "Quit"

	optDeposit  = "Deposit"
	optWithdraw = "Withdraw"
	optTransfer = "Transfer"
	optHistory  = "Transaction history"
	optLogout   = "Logout"

	optBack = "Back to menu"
)

var loginChoices = map[string]shell.LoginChoice{
	optLogin:         shell.LoginSubmit,
	optCreateAccount: shell.LoginCreateAccount,
	optQuit:          shell.LoginQuit,
}

var menuChoices = map[string]shell.MenuChoice{
	optDeposit:  shell.MenuDeposit,
	optWithdraw: shell.MenuWithdraw,
	optTransfer: shell.MenuTransfer,
	optHistory:  shell.MenuHistory,
	optLogout:   shell.MenuLogout,
}

// Terminal implements shell.Prompter with huh forms and a survey PIN prompt.
type Terminal struct{}

func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) LoginChoice() (shell.LoginChoice, error) {
	selected, err := PromptSelect("What would you like to do?", []string{optLogin, optCreateAccount, optQuit}, optLogin)
	if err != nil {
		return shell.LoginQuit, err
	}
	return loginChoices[selected], nil
}

func (t *Terminal) Credentials() (shell.Credentials, error) {
	account, err := PromptInput("Account Number:", "", validation.ValidateAccountNumber)
	if err != nil {
		return shell.Credentials{}, fmt.Errorf("input cancelled: %w", err)
	}

	pin, err := ui.AskSecret("PIN:", validation.ValidatePIN)
	if err != nil {
		return shell.Credentials{}, fmt.Errorf("input cancelled: %w", err)
	}

	return shell.Credentials{AccountNumber: account, PIN: pin}, nil
}

func (t *Terminal) Signup() (shell.SignupInput, error) {
	var in shell.SignupInput

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account Number:").
				Value(&in.AccountNumber).
				Validate(validation.ValidateAccountNumber),
			huh.NewInput().
				Title("Owner Name:").
				Value(&in.OwnerName).
				Validate(validation.ValidateOwnerName),
			huh.NewInput().
				Title("PIN:").
				EchoMode(huh.EchoModePassword).
				Value(&in.PIN).
				Validate(validation.ValidatePIN),
			huh.NewInput().
				Title("Initial Balance (press Enter for 0):").
				Value(&in.InitialBalance).
				Validate(validation.ValidateInitialBalance),
		),
	)

	if err := form.Run(); err != nil {
		return shell.SignupInput{}, err
	}
	return in, nil
}

func (t *Terminal) MenuChoice() (shell.MenuChoice, error) {
	options := []string{optDeposit, optWithdraw, optTransfer, optHistory, optLogout}

	selected, err := PromptSelect("Choose an operation:", options, optDeposit)
	if err != nil {
		return shell.MenuLogout, err
	}
	return menuChoices[selected], nil
}

func (t *Terminal) Amount(title string) (string, error) {
	return PromptAmount(title, "Ctrl+C to cancel", validation.ValidateAmount)
}

func (t *Terminal) Transfer() (shell.TransferInput, error) {
	var in shell.TransferInput

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("To Account Number:").
				Value(&in.ToAccount).
				Validate(validation.ValidateAccountNumber),
			huh.NewInput().
				Title("Amount:").
				Description("Ctrl+C to cancel").
				Value(&in.Amount).
				Validate(validation.ValidateAmount),
		),
	)

	if err := form.Run(); err != nil {
		return shell.TransferInput{}, err
	}
	return in, nil
}

func (t *Terminal) Back() error {
	_, err := PromptSelect("", []string{optBack}, optBack)
	return err
}
