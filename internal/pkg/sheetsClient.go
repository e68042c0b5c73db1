package client

import (
	"context"
	"fmt"

	"expense-manager/internal/config"
	repoconstants "expense-manager/internal/domain/interfaces/repository/constants"
	"expense-manager/internal/infra/logger"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultSpreadsheetName = "ExpenseManager_Data"

// SheetsEnvironment holds the authorized Sheets service and the id of the
// spreadsheet the bot works against, with both worksheets guaranteed to
// exist with their header rows.
type SheetsEnvironment struct {
	Sheets        *sheets.Service
	SpreadsheetID string
}

// NewSheetsEnvironment authorizes with the service-account credentials from
// the environment and opens (or creates) the target spreadsheet.
func NewSheetsEnvironment(ctx context.Context, log *logger.Logger) (*SheetsEnvironment, error) {
	credsJSON := config.GetEnv("GOOGLE_CREDENTIALS")

	creds, err := google.CredentialsFromJSON(ctx, []byte(credsJSON), sheets.SpreadsheetsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	name := config.GetEnvDefault("SPREADSHEET_NAME", defaultSpreadsheetName)

	spreadsheetID, created, err := openOrCreateSpreadsheet(ctx, sheetsSvc, driveSvc, name)
	if err != nil {
		return nil, err
	}

	if created {
		log.Info(fmt.Sprintf("Created new spreadsheet: %s", name))
		if owner := config.GetEnvDefault("OWNER_EMAIL", ""); owner != "" {
			perm := &drive.Permission{Type: "user", Role: "writer", EmailAddress: owner}
			if _, err := driveSvc.Permissions.Create(spreadsheetID, perm).Context(ctx).Do(); err != nil {
				log.Error(fmt.Sprintf("Failed to share spreadsheet with %s: %v", owner, err))
			}
		}
	} else {
		log.Info(fmt.Sprintf("Successfully opened existing spreadsheet: %s", name))
	}

	if err := ensureWorksheet(ctx, sheetsSvc, spreadsheetID, repoconstants.ExpensesSheet, repoconstants.ExpenseHeaders, log); err != nil {
		return nil, err
	}
	if err := ensureWorksheet(ctx, sheetsSvc, spreadsheetID, repoconstants.ChatHistorySheet, repoconstants.HistoryHeaders, log); err != nil {
		return nil, err
	}

	return &SheetsEnvironment{Sheets: sheetsSvc, SpreadsheetID: spreadsheetID}, nil
}

func openOrCreateSpreadsheet(ctx context.Context, sheetsSvc *sheets.Service, driveSvc *drive.Service, name string) (string, bool, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", name)
	list, err := driveSvc.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", false, fmt.Errorf("search for spreadsheet %s: %w", name, err)
	}
	if len(list.Files) > 0 {
		return list.Files[0].Id, false, nil
	}

	created, err := sheetsSvc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: name},
	}).Context(ctx).Do()
	if err != nil {
		return "", false, fmt.Errorf("create spreadsheet %s: %w", name, err)
	}
	return created.SpreadsheetId, true, nil
}

// ensureWorksheet adds the worksheet with its header row when it does not
// exist yet. Existing worksheets are left untouched.
func ensureWorksheet(ctx context.Context, svc *sheets.Service, spreadsheetID, title string, headers []string, log *logger.Logger) error {
	spreadsheet, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return nil
		}
	}

	_, err = svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add worksheet %s: %w", title, err)
	}

	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	_, err = svc.Spreadsheets.Values.
		Append(spreadsheetID, title, &sheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s header row: %w", title, err)
	}

	log.Info(fmt.Sprintf("Created %s worksheet", title))
	return nil
}
