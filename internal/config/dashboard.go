// Package config resolves dashboard settings from viper and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/loader"
	"github.com/Veraticus/performance-dashboard/internal/products"
	"github.com/Veraticus/performance-dashboard/internal/sheets"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

// Viper keys.
const (
	KeySheetURL        = "sheets.url"
	KeySheetName       = "sheets.sheet_name"
	KeyCredentialsFile = "sheets.credentials_file"
	KeyProductDates    = "products.file"
	KeyCacheTTL        = "cache.ttl"
	KeyWindowDays      = "summary.window"
)

// DefaultCredentialsFile is used when no credentials path is configured.
const DefaultCredentialsFile = "~/access_file/credentials.json"

// DefaultWindowDays is the comparison window used by summary views.
const DefaultWindowDays = 7

// Dashboard is the resolved configuration of one dashboard process.
type Dashboard struct {
	Sheets           sheets.Config
	ProductDatesFile string
	CacheTTL         time.Duration
	WindowDays       int
}

// Source returns the loader cache key for the configured sheet.
func (d *Dashboard) Source() loader.Source {
	return loader.Source{
		DocumentURL:     d.Sheets.DocumentURL,
		SheetName:       d.Sheets.SheetName,
		CredentialsFile: d.Sheets.CredentialsFile,
	}
}

// SetDefaults registers default values with viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySheetName, sheets.DefaultSheetName)
	v.SetDefault(KeyCredentialsFile, DefaultCredentialsFile)
	v.SetDefault(KeyProductDates, products.DefaultPath)
	v.SetDefault(KeyCacheTTL, loader.DefaultTTL)
	v.SetDefault(KeyWindowDays, DefaultWindowDays)
}

// LoadDashboardConfig loads dashboard configuration from viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file, flags or PERFDASH_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadDashboardConfig(v *viper.Viper) (*Dashboard, error) {
	SetDefaults(v)

	cfg := &Dashboard{
		Sheets:           sheets.DefaultConfig(),
		ProductDatesFile: v.GetString(KeyProductDates),
		CacheTTL:         v.GetDuration(KeyCacheTTL),
		WindowDays:       v.GetInt(KeyWindowDays),
	}

	cfg.Sheets.DocumentURL = firstNonEmpty(v.GetString(KeySheetURL), os.Getenv("GOOGLE_SHEETS_URL"), os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	cfg.Sheets.SheetName = firstNonEmpty(envIfDefault(v.GetString(KeySheetName), sheets.DefaultSheetName, "GOOGLE_SHEETS_SHEET_NAME"), sheets.DefaultSheetName)
	cfg.Sheets.CredentialsFile = ExpandPath(firstNonEmpty(
		envIfDefault(v.GetString(KeyCredentialsFile), DefaultCredentialsFile, "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"),
		DefaultCredentialsFile,
	))
	cfg.ProductDatesFile = ExpandPath(cfg.ProductDatesFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (d *Dashboard) Validate() error {
	if err := d.Sheets.Validate(); err != nil {
		return err
	}
	if d.CacheTTL <= 0 {
		return fmt.Errorf("%w: cache ttl must be positive", common.ErrInvalidConfig)
	}
	if d.WindowDays < 1 || d.WindowDays > transform.MaxWindowDays {
		return fmt.Errorf("%w: summary window must be from 1 to %d days", common.ErrInvalidConfig, transform.MaxWindowDays)
	}
	return nil
}

// ExpandPath expands a leading ~ and environment variables in a file path.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~", strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

// envIfDefault prefers the environment variable env when the viper value is
// still the default.
func envIfDefault(value, def, env string) string {
	if value == def || value == "" {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
