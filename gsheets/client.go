// Package gsheets implements store.Remote on the Google Sheets and Drive
// APIs.
package gsheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/setbook/sheetstore/store"
)

// valueInput makes the service type cells the way a human edit would,
// which is what the codec's text marker relies on.
const valueInput = "USER_ENTERED"

const spreadsheetMIME = "application/vnd.google-apps.spreadsheet"

// Client talks to the Sheets and Drive APIs on behalf of one account.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

var _ store.Remote = (*Client)(nil)

// New builds a Client from an OAuth token source. Token acquisition and
// refresh are the caller's concern.
func New(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	if ts == nil {
		return nil, store.ErrNotAuthenticated
	}
	sv, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	dv, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &Client{sheets: sv, drive: dv}, nil
}

func (c *Client) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, mapErr(err)
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (c *Client) AppendRows(ctx context.Context, spreadsheetID, rng string, rows [][]string) error {
	_, err := c.sheets.Spreadsheets.Values.Append(spreadsheetID, rng, valueRange(rows)).
		ValueInputOption(valueInput).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return mapErr(err)
}

func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, rng string, rows [][]string) error {
	_, err := c.sheets.Spreadsheets.Values.Update(spreadsheetID, rng, valueRange(rows)).
		ValueInputOption(valueInput).
		Context(ctx).Do()
	return mapErr(err)
}

func (c *Client) Sheets(ctx context.Context, spreadsheetID string) ([]store.SheetInfo, error) {
	resp, err := c.sheets.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return nil, mapErr(err)
	}
	infos := make([]store.SheetInfo, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		infos = append(infos, store.SheetInfo{
			ID:    sh.Properties.SheetId,
			Title: sh.Properties.Title,
		})
	}
	return infos, nil
}

func (c *Client) AddSheet(ctx context.Context, spreadsheetID, title string) error {
	_, err := c.sheets.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	return mapErr(err)
}

func (c *Client) DeleteRows(ctx context.Context, spreadsheetID string, sheetID, start, end int64) error {
	_, err := c.sheets.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: start,
					EndIndex:   end,
				},
			},
		}},
	}).Context(ctx).Do()
	return mapErr(err)
}

func (c *Client) FindSpreadsheet(ctx context.Context, title string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false and 'me' in owners",
		strings.ReplaceAll(title, "'", `\'`), spreadsheetMIME)
	resp, err := c.drive.Files.List().
		Q(q).
		Fields("files(id)").
		PageSize(1).
		Context(ctx).Do()
	if err != nil {
		return "", mapErr(err)
	}
	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

func (c *Client) CreateSpreadsheet(ctx context.Context, title string) (string, error) {
	resp, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", mapErr(err)
	}
	return resp.SpreadsheetId, nil
}

func (c *Client) CreatePermission(ctx context.Context, spreadsheetID, email, role string) error {
	_, err := c.drive.Permissions.Create(spreadsheetID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	}).SendNotificationEmail(true).Context(ctx).Do()
	return mapErr(err)
}

func (c *Client) ListPermissions(ctx context.Context, spreadsheetID string) ([]store.Grant, error) {
	resp, err := c.drive.Permissions.List(spreadsheetID).
		Fields("permissions(id,emailAddress,role)").
		Context(ctx).Do()
	if err != nil {
		return nil, mapErr(err)
	}
	grants := make([]store.Grant, 0, len(resp.Permissions))
	for _, p := range resp.Permissions {
		grants = append(grants, store.Grant{
			ID:    p.Id,
			Email: p.EmailAddress,
			Role:  p.Role,
		})
	}
	return grants, nil
}

func (c *Client) DeletePermission(ctx context.Context, spreadsheetID, permissionID string) error {
	return mapErr(c.drive.Permissions.Delete(spreadsheetID, permissionID).Context(ctx).Do())
}

func valueRange(rows [][]string) *sheets.ValueRange {
	values := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return &sheets.ValueRange{Values: values}
}
