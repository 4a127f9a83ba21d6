package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputOption = "RAW"

type Client interface {
	CreateSpreadsheet(ctx context.Context, title string) (spreadsheetID, url string, err error)
	AddPermission(ctx context.Context, spreadsheetID, email, role string) error
	MakePublic(ctx context.Context, spreadsheetID string) error
	ClearRange(ctx context.Context, spreadsheetID, rangeStr string) error
	UpdateValues(ctx context.Context, spreadsheetID, rangeStr string, values [][]interface{}) error
}

type GoogleSheetsClient struct {
	sheets *sheets.Service
	drive  *drive.Service
}

func NewGoogleSheetsClient(ctx context.Context, credentialsPath string) (*GoogleSheetsClient, error) {
	creds := option.WithCredentialsFile(credentialsPath)

	sheetsSrv, err := sheets.NewService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	driveSrv, err := drive.NewService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &GoogleSheetsClient{
		sheets: sheetsSrv,
		drive:  driveSrv,
	}, nil
}

func (c *GoogleSheetsClient) CreateSpreadsheet(ctx context.Context, title string) (string, string, error) {
	resp, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	return resp.SpreadsheetId, resp.SpreadsheetUrl, nil
}

func (c *GoogleSheetsClient) AddPermission(ctx context.Context, spreadsheetID, email, role string) error {
	_, err := c.drive.Permissions.Create(spreadsheetID, &drive.Permission{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to add permission: %w", err)
	}
	return nil
}

func (c *GoogleSheetsClient) MakePublic(ctx context.Context, spreadsheetID string) error {
	_, err := c.drive.Permissions.Create(spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to make spreadsheet public: %w", err)
	}
	return nil
}

func (c *GoogleSheetsClient) ClearRange(ctx context.Context, spreadsheetID, rangeStr string) error {
	_, err := c.sheets.Spreadsheets.Values.Clear(spreadsheetID, rangeStr, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear range: %w", err)
	}
	return nil
}

func (c *GoogleSheetsClient) UpdateValues(ctx context.Context, spreadsheetID, rangeStr string, values [][]interface{}) error {
	valRange := &sheets.ValueRange{Values: values}
	_, err := c.sheets.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valRange).
		ValueInputOption(valueInputOption).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update values: %w", err)
	}
	return nil
}
