package sheets

import (
	"testing"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "complete config",
			config: Config{
				DocumentURL:     "https://docs.google.com/spreadsheets/d/13cgCbIF_R4ubaNyIKdW0YY3VUZM0TUozRR3GyZ6vl8A/edit?gid=965675010",
				SheetName:       DefaultSheetName,
				CredentialsFile: "/path/to/key.json",
			},
			wantErr: false,
		},
		{
			name: "missing url",
			config: Config{
				SheetName:       DefaultSheetName,
				CredentialsFile: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "spreadsheet URL or ID is required",
		},
		{
			name: "url without an id",
			config: Config{
				DocumentURL:     "https://example.com/not-a-sheet",
				SheetName:       DefaultSheetName,
				CredentialsFile: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "cannot find a spreadsheet ID",
		},
		{
			name: "missing sheet name",
			config: Config{
				DocumentURL:     "13cgCbIF_R4ubaNyIKdW0YY3VUZM0TUozRR3GyZ6vl8A",
				CredentialsFile: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "sheet name is required",
		},
		{
			name: "missing credentials",
			config: Config{
				DocumentURL: "13cgCbIF_R4ubaNyIKdW0YY3VUZM0TUozRR3GyZ6vl8A",
				SheetName:   DefaultSheetName,
			},
			wantErr: true,
			errMsg:  "credentials file is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSpreadsheetID(t *testing.T) {
	id, err := SpreadsheetID("https://docs.google.com/spreadsheets/d/13cgCbIF_R4ubaNyIKdW0YY3VUZM0TUozRR3GyZ6vl8A/edit?gid=965675010")
	require.NoError(t, err)
	assert.Equal(t, "13cgCbIF_R4ubaNyIKdW0YY3VUZM0TUozRR3GyZ6vl8A", id)

	id, err = SpreadsheetID("  abcdefghij-_1234  ")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij-_1234", id)

	_, err = SpreadsheetID("short")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'raw(META,UAC,Twitter)'", sheetRange(DefaultSheetName))
	assert.Equal(t, "'Bob''s data'", sheetRange("Bob's data"))
}
