// Package sheets appends ledger change rows to a Google Sheet. The
// sheet is an append-only journal of mutations, kept by the worker so
// the dashboard's data stays inspectable outside the app.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
)

// ErrNotConfigured reports that the exporter has no spreadsheet to
// write to. Callers treat it as "export disabled", not a failure.
var ErrNotConfigured = errors.New("missing FINTRACK_SPREADSHEET_ID")

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv creates an Exporter from environment variables.
// Required: FINTRACK_SPREADSHEET_ID.
// Optional: FINTRACK_SHEET_NAME (default "Expenses"), and either
// GOOGLE_CREDENTIALS_JSON or Application Default Credentials for auth.
func NewFromEnv(ctx context.Context) (*Exporter, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("FINTRACK_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, ErrNotConfigured
	}

	sheetName := strings.TrimSpace(os.Getenv("FINTRACK_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Expenses"
	}

	var opts []goption.ClientOption
	if creds := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON")); creds != "" {
		opts = append(opts, goption.WithCredentialsJSON([]byte(creds)))
	}
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsScope))

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendChange appends one mutation row: op, record id, date, category,
// description, amount.
func (e *Exporter) AppendChange(ctx context.Context, op string, rec core.ExpenseRecord) error {
	values := &gsheet.ValueRange{
		Values: [][]interface{}{{
			op,
			rec.ID,
			rec.Date.Format("2006-01-02"),
			rec.Category,
			rec.Description,
			rec.Amount.String(),
		}},
	}

	_, err := e.svc.Spreadsheets.Values.
		Append(e.spreadsheetID, e.sheetName+"!A:F", values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to sheet %q: %w", e.sheetName, err)
	}
	return nil
}
