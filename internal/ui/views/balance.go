package views

import (
	"github.com/hance08/atm/internal/utils"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

func RenderBalance(symbol, accountNumber string, balance decimal.Decimal) error {
	tableData := pterm.TableData{
		{"Account", accountNumber},
		{"Current Balance", pterm.LightBlue(utils.FormatMoney(symbol, balance))},
	}

	return pterm.DefaultTable.WithBoxed().WithData(tableData).Render()
}
