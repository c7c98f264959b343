package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the service account: read access to spreadsheets
// and to the drive files that hold them.
var Scopes = []string{
	sheets.SpreadsheetsReadonlyScope,
	drive.DriveReadonlyScope,
}

// Service is the part of the Sheets API the reader needs.
type Service interface {
	// SheetTitles lists the tab titles of a spreadsheet in display order.
	SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	// Values returns the cell values of a range, row-major.
	Values(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
}

// ServiceFactory builds a Service from service-account key JSON.
type ServiceFactory func(ctx context.Context, credentialsJSON []byte) (Service, error)

// googleService implements Service on the Sheets v4 API.
type googleService struct {
	srv *sheets.Service
}

// NewGoogleService authenticates with a service-account key and returns a
// Service backed by the Sheets API.
func NewGoogleService(ctx context.Context, credentialsJSON []byte) (Service, error) {
	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &googleService{srv: srv}, nil
}

func (g *googleService) SheetTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	resp, err := g.srv.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to access spreadsheet %s: %w", spreadsheetID, err)
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

func (g *googleService) Values(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	resp, err := g.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("SERIAL_NUMBER").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", readRange, err)
	}
	return resp.Values, nil
}
