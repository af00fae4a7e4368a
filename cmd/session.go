package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/hance08/atm/internal/app"
	"github.com/hance08/atm/internal/ui/prompts"
	"github.com/hance08/atm/internal/ui/shell"
	"github.com/hance08/atm/internal/ui/views"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

var errNotInteractive = errors.New("atm needs an interactive terminal; run it from a TTY")

type sessionRunner struct {
	app *app.App
}

func (r *sessionRunner) Run(ctx context.Context) error {
	if !isInteractive() {
		return errNotInteractive
	}

	ctrl := r.app.NewController()
	sh := shell.New(
		ctrl,
		prompts.NewTerminal(),
		views.NewTerminal(r.app.Config.Display.CurrencySymbol),
	)

	if err := sh.Run(ctx); err != nil {
		return err
	}

	printSeparator()
	pterm.Info.Println("Goodbye!")
	return nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
