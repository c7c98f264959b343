// Package sheets reads performance data out of Google Sheets.
package sheets

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/performance-dashboard/internal/common"
)

// DefaultSheetName is the tab holding the raw per-source campaign rows.
const DefaultSheetName = "raw(META,UAC,Twitter)"

// Config identifies the sheet to read and the credentials to read it with.
type Config struct {
	DocumentURL     string
	SheetName       string
	CredentialsFile string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SheetName: DefaultSheetName,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DocumentURL) == "" {
		return fmt.Errorf("%w: spreadsheet URL or ID is required", common.ErrMissingConfig)
	}
	if _, err := SpreadsheetID(c.DocumentURL); err != nil {
		return err
	}
	if strings.TrimSpace(c.SheetName) == "" {
		return fmt.Errorf("%w: sheet name is required", common.ErrMissingConfig)
	}
	if strings.TrimSpace(c.CredentialsFile) == "" {
		return fmt.Errorf("%w: credentials file is required", common.ErrMissingConfig)
	}
	return nil
}

var (
	documentURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	bareIDPattern      = regexp.MustCompile(`^[a-zA-Z0-9_-]{10,}$`)
)

// SpreadsheetID extracts the document ID from a Sheets URL. A bare ID is
// returned unchanged.
func SpreadsheetID(locator string) (string, error) {
	locator = strings.TrimSpace(locator)
	if m := documentURLPattern.FindStringSubmatch(locator); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(locator) {
		return locator, nil
	}
	return "", fmt.Errorf("%w: cannot find a spreadsheet ID in %q", common.ErrInvalidConfig, locator)
}

// sheetRange addresses every cell of the named tab.
func sheetRange(sheetName string) string {
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'"
}
