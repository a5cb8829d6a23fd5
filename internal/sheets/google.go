package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// valueInputOption RAW stores values as typed, without formula parsing.
const valueInputOption = "RAW"

// GoogleBackend talks to a single spreadsheet through the Sheets v4 API.
type GoogleBackend struct {
	svc           *gsheets.Service
	spreadsheetID string
}

// NewGoogleBackend builds the Sheets client. Construct it once at startup
// and share it.
func NewGoogleBackend(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleBackend, error) {
	if spreadsheetID == "" {
		return nil, errors.New("NewGoogleBackend(): spreadsheet id is empty")
	}
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGoogleBackend(): failed to create sheets service: %w", err)
	}
	log.Printf("NewGoogleBackend(): connected to spreadsheet %s", spreadsheetID)
	return &GoogleBackend{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (b *GoogleBackend) Get(ctx context.Context, r Range) ([][]string, error) {
	resp, err := b.svc.Spreadsheets.Values.Get(b.spreadsheetID, r.String()).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	values := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellString(cell)
		}
		values = append(values, cells)
	}
	return values, nil
}

func (b *GoogleBackend) Append(ctx context.Context, r Range, values []string) (*AppendResult, error) {
	body := &gsheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	resp, err := b.svc.Spreadsheets.Values.Append(b.spreadsheetID, r.String(), body).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	res := &AppendResult{}
	if resp.Updates != nil {
		res.UpdatedRange = resp.Updates.UpdatedRange
		res.UpdatedRows = resp.Updates.UpdatedRows
	}
	return res, nil
}

func (b *GoogleBackend) Update(ctx context.Context, r Range, values []string) error {
	body := &gsheets.ValueRange{Values: [][]interface{}{toCells(values)}}
	_, err := b.svc.Spreadsheets.Values.Update(b.spreadsheetID, r.String(), body).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return err
}

func (b *GoogleBackend) SheetTitles(ctx context.Context) ([]string, error) {
	ss, err := b.svc.Spreadsheets.Get(b.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh != nil && sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func (b *GoogleBackend) AddSheet(ctx context.Context, title string) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: title},
			},
		}},
	}
	_, err := b.svc.Spreadsheets.BatchUpdate(b.spreadsheetID, req).Context(ctx).Do()
	return err
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
