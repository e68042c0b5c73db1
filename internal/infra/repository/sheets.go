package repository

import (
	"context"
	"fmt"

	repoiface "expense-manager/internal/domain/interfaces/repository"

	"google.golang.org/api/sheets/v4"
)

// SheetsTable is the RemoteTable implementation over one worksheet of a
// Google spreadsheet.
type SheetsTable struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetsTable(svc *sheets.Service, spreadsheetID, sheetName string) *SheetsTable {
	return &SheetsTable{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

func (t *SheetsTable) AppendRow(ctx context.Context, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	_, err := t.svc.Spreadsheets.Values.
		Append(t.spreadsheetID, t.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", t.sheetName, err)
	}
	return nil
}

// ReadAllRecords bulk-reads the worksheet and materializes every data row as
// a column-name-to-value mapping. The first row is the header.
func (t *SheetsTable) ReadAllRecords(ctx context.Context) ([]repoiface.Row, error) {
	resp, err := t.svc.Spreadsheets.Values.
		Get(t.spreadsheetID, t.sheetName).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.sheetName, err)
	}

	if len(resp.Values) < 2 {
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		headers[i] = fmt.Sprint(h)
	}

	rows := make([]repoiface.Row, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make(repoiface.Row, len(headers))
		for i, h := range headers {
			if i < len(raw) {
				row[h] = fmt.Sprint(raw[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var _ repoiface.RemoteTable = (*SheetsTable)(nil)
