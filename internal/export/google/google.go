// Package google writes report sheets into a Google Spreadsheet using a
// service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"infogastos/internal/export"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ export.SheetWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// WriteSheets replaces the contents of one tab per sheet. Missing tabs are
// created first; existing contents are cleared so stale rows from a longer
// previous report never survive.
func (c *Client) WriteSheets(ctx context.Context, title string, sheets []export.Sheet) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	existing, err := c.existingSheetTitles(ctx)
	if err != nil {
		return fmt.Errorf("read spreadsheet metadata: %w", err)
	}

	for _, sheet := range sheets {
		tab := tabName(title, sheet.Name)
		if _, ok := existing[tab]; !ok {
			if err := c.addSheet(ctx, tab); err != nil {
				return fmt.Errorf("add sheet %q: %w", tab, err)
			}
			existing[tab] = struct{}{}
		}

		clearRange := fmt.Sprintf("'%s'!A:Z", tab)
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear sheet %q: %w", tab, err)
		}

		vr := &gsheet.ValueRange{Values: sheet.Rows}
		_, err := c.svc.Spreadsheets.Values.
			Update(c.spreadsheetID, fmt.Sprintf("'%s'!A1", tab), vr).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("write sheet %q: %w", tab, err)
		}

		slog.InfoContext(ctx, "Report sheet written",
			"spreadsheet_id", c.spreadsheetID,
			"sheet", tab,
			"rows", len(sheet.Rows))
	}

	return nil
}

func (c *Client) existingSheetTitles(ctx context.Context) (map[string]struct{}, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	titles := make(map[string]struct{}, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			titles[s.Properties.Title] = struct{}{}
		}
	}
	return titles, nil
}

func (c *Client) addSheet(ctx context.Context, tab string) error {
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: tab},
			},
		}},
	}
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	return err
}

// tabName prefixes the sheet name with the report title so several reports
// can live in the same workbook. Sheets caps tab names at 100 characters.
func tabName(title, sheet string) string {
	if title == "" {
		return sheet
	}
	name := title + " - " + sheet
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
