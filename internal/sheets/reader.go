package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/model"
)

// SheetNotFoundError is returned when the requested tab does not exist.
type SheetNotFoundError struct {
	Name      string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

func (e *SheetNotFoundError) Unwrap() error {
	return common.ErrSheetNotFound
}

// Reader materializes a sheet into a model.Table.
type Reader struct {
	newService ServiceFactory
	logger     *slog.Logger
}

// NewReader creates a Reader. A nil factory uses the Google Sheets API.
func NewReader(factory ServiceFactory, logger *slog.Logger) *Reader {
	if factory == nil {
		factory = NewGoogleService
	}
	return &Reader{
		newService: factory,
		logger:     common.LoggerOrDefault(logger),
	}
}

// Read loads every row of sheetName from the spreadsheet at documentURL,
// using the first row as the header.
//
// A nil table with an error means nothing could be loaded: the credentials
// file is missing, the sheet does not exist, or the API call failed. A sheet
// without data rows yields an empty table and a nil error.
func (r *Reader) Read(ctx context.Context, documentURL, sheetName, credentialsFile string) (*model.Table, error) {
	keyJSON, err := os.ReadFile(credentialsFile) // #nosec G304
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Error("credentials file not found", "path", credentialsFile)
			return nil, fmt.Errorf("%w: %s", common.ErrCredentialsNotFound, credentialsFile)
		}
		r.logger.Error("failed to read credentials file", "path", credentialsFile, "error", err)
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	spreadsheetID, err := SpreadsheetID(documentURL)
	if err != nil {
		r.logger.Error("invalid spreadsheet locator", "url", documentURL, "error", err)
		return nil, err
	}

	r.logger.Info("authenticating with Google Sheets")
	svc, err := r.newService(ctx, keyJSON)
	if err != nil {
		r.logger.Error("google sheets authentication failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrSheetsAPI, err)
	}

	r.logger.Info("opening spreadsheet", "spreadsheet_id", spreadsheetID)
	titles, err := svc.SheetTitles(ctx, spreadsheetID)
	if err != nil {
		r.logger.Error("failed to open spreadsheet", "spreadsheet_id", spreadsheetID, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrSheetsAPI, err)
	}

	r.logger.Info("looking up sheet", "sheet", sheetName)
	if !containsTitle(titles, sheetName) {
		r.logger.Error("sheet not found", "sheet", sheetName, "available", titles)
		return nil, &SheetNotFoundError{Name: sheetName, Available: titles}
	}

	r.logger.Info("reading sheet data", "sheet", sheetName)
	values, err := svc.Values(ctx, spreadsheetID, sheetRange(sheetName))
	if err != nil {
		r.logger.Error("failed to read sheet", "sheet", sheetName, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrSheetsAPI, err)
	}

	table := valuesToTable(values)
	if table.Empty() {
		r.logger.Warn("sheet has no data", "sheet", sheetName)
		return table, nil
	}

	r.logger.Info("sheet loaded",
		"rows", table.Len(),
		"columns", len(table.Columns))
	r.logger.Debug("sheet columns", "columns", table.Columns)

	return table, nil
}

func containsTitle(titles []string, name string) bool {
	for _, t := range titles {
		if t == name {
			return true
		}
	}
	return false
}

// valuesToTable treats the first row as the header. Short rows are padded
// with empty strings and rows with no content are dropped.
func valuesToTable(values [][]any) *model.Table {
	table := model.NewTable()
	if len(values) == 0 {
		return table
	}

	table.Columns = toStrings(values[0])
	for _, raw := range values[1:] {
		if blankRow(raw) {
			continue
		}
		row := make(model.Row, len(table.Columns))
		for i, col := range table.Columns {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func blankRow(row []any) bool {
	for _, v := range row {
		if strings.TrimSpace(fmt.Sprint(v)) != "" {
			return false
		}
	}
	return true
}
