package views

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hance08/atm/internal/api"
	"github.com/hance08/atm/internal/constants"
	"github.com/hance08/atm/internal/ui"
	"github.com/hance08/atm/internal/utils"
	"github.com/pterm/pterm"
)

const EmptyHistoryMessage = "No transactions found"

type TransactionListView struct {
	symbol string
	now    func() time.Time
}

func NewTransactionListView(symbol string) *TransactionListView {
	return &TransactionListView{symbol: symbol, now: time.Now}
}

// Rows builds one table row per transaction, keeping the backend order.
func (v *TransactionListView) Rows(items []api.Transaction) pterm.TableData {
	tableData := pterm.TableData{
		{"#", "Date", "When", "Type", "Amount"},
	}

	for i, item := range items {
		credit := item.Type == constants.TxTypeDeposit
		amount := utils.FormatSigned(v.symbol, item.Amount, credit)

		var coloredType, coloredAmount string
		if credit {
			coloredType = pterm.Green(item.Type)
			coloredAmount = pterm.Green(amount)
		} else {
			coloredType = pterm.Red(item.Type)
			coloredAmount = pterm.Red(amount)
		}

		date, when := item.RawTimestamp, ""
		if !item.Timestamp.IsZero() {
			local := item.Timestamp.Local()
			date = local.Format(constants.DateTimeFormat)
			when = humanize.RelTime(local, v.now(), "ago", "from now")
		}

		tableData = append(tableData, []string{
			pterm.Sprintf("%d", i+1),
			date,
			when,
			coloredType,
			coloredAmount,
		})
	}

	return tableData
}

func (v *TransactionListView) Render(items []api.Transaction) error {
	if len(items) == 0 {
		pterm.Warning.Println(EmptyHistoryMessage)
		return nil
	}

	ui.PrintL2Title("Recent activity for this account")
	if err := pterm.DefaultTable.WithHasHeader().WithData(v.Rows(items)).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}
