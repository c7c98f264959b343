package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/performance-dashboard/internal/model"
)

func TestGoogleServiceRequestsSerialDates(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"valueRenderOption":    r.URL.Query().Get("valueRenderOption"),
			"dateTimeRenderOption": r.URL.Query().Get("dateTimeRenderOption"),
		}
		assert.True(t, strings.Contains(r.URL.Path, "/values/"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          "raw!A1:B2",
			"majorDimension": "ROWS",
			"values":         [][]any{{"Date", "clicks"}, {45306, 10}},
		})
	}))
	defer srv.Close()

	ctx := context.Background()
	api, err := sheets.NewService(ctx,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	svc := &googleService{srv: api}
	values, err := svc.Values(ctx, "sheet-id", sheetRange("raw"))
	require.NoError(t, err)

	assert.Equal(t, "SERIAL_NUMBER", query["dateTimeRenderOption"])
	assert.Equal(t, "UNFORMATTED_VALUE", query["valueRenderOption"])

	records, err := model.ParseRecords(valuesToTable(values), model.DateColumn)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-15", records[0].Date.Format(model.DateLayout))
}
