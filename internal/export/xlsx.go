// Package export renders loan schedules and repayment histories as xlsx.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"nbfc-loan-ledger/internal/ledger"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type column[T any] struct {
	Header string
	Value  func(T) any
}

var scheduleColumns = []column[ledger.ScheduleEntry]{
	{"Installment", func(e ledger.ScheduleEntry) any { return e.Installment }},
	{"Due date", func(e ledger.ScheduleEntry) any { return e.DueDate.Format("2006-01-02") }},
	{"Payment", func(e ledger.ScheduleEntry) any { return e.Payment.InexactFloat64() }},
	{"Principal", func(e ledger.ScheduleEntry) any { return e.PrincipalPortion.InexactFloat64() }},
	{"Interest", func(e ledger.ScheduleEntry) any { return e.InterestPortion.InexactFloat64() }},
	{"Remaining balance", func(e ledger.ScheduleEntry) any { return e.RemainingBalance.InexactFloat64() }},
}

var historyColumns = []column[ledger.HistoryEntry]{
	{"Date", func(e ledger.HistoryEntry) any { return e.Date.Format("2006-01-02") }},
	{"Amount", func(e ledger.HistoryEntry) any { return e.Amount.InexactFloat64() }},
	{"Principal", func(e ledger.HistoryEntry) any { return e.PrincipalPortion.InexactFloat64() }},
	{"Interest", func(e ledger.HistoryEntry) any { return e.InterestPortion.InexactFloat64() }},
}

// Schedule writes the amortization schedule of loanNumber as a workbook.
func Schedule(loanNumber string, entries []ledger.ScheduleEntry) (*bytes.Buffer, error) {
	return write("Schedule", loanNumber, scheduleColumns, entries)
}

// History writes the completed repayments of loanNumber as a workbook.
func History(loanNumber string, entries []ledger.HistoryEntry) (*bytes.Buffer, error) {
	return write("History", loanNumber, historyColumns, entries)
}

func write[T any](sheet, loanNumber string, cols []column[T], rows []T) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	_ = f.SetDocProps(&excelize.DocProperties{Title: fmt.Sprintf("%s %s", loanNumber, sheet), Creator: "nbfc-loan-ledger"})

	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for c, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, col.Value(row)); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}
