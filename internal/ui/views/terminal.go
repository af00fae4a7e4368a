package views

import (
	"github.com/hance08/atm/internal/api"
	"github.com/hance08/atm/internal/atm"
	"github.com/hance08/atm/internal/ui"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// Terminal implements shell.Renderer on top of pterm.
type Terminal struct {
	symbol       string
	transactions *TransactionListView
}

func NewTerminal(symbol string) *Terminal {
	return &Terminal{
		symbol:       symbol,
		transactions: NewTransactionListView(symbol),
	}
}

func (t *Terminal) Header(title string) {
	ui.PrintL1Title("%s", title)
}

func (t *Terminal) Status(st atm.Status) {
	switch st.Kind {
	case atm.StatusSuccess:
		pterm.Success.Println(st.Text)
	default:
		pterm.Error.Println(st.Text)
	}
}

func (t *Terminal) Balance(accountNumber string, balance decimal.Decimal) {
	if err := RenderBalance(t.symbol, accountNumber, balance); err != nil {
		pterm.Error.Printf("Failed to render balance: %v\n", err)
	}
}

func (t *Terminal) Transactions(txs []api.Transaction) error {
	return t.transactions.Render(txs)
}
