// Package loader puts a one-entry, time-bounded cache in front of the sheet
// reader so repeated requests do not re-fetch the spreadsheet.
package loader

import (
	"context"
	"log/slog"
	"time"

	"github.com/Veraticus/performance-dashboard/internal/cache"
	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/telemetry"
)

// DefaultTTL is how long a loaded sheet is reused.
const DefaultTTL = time.Hour

const cacheName = "sheet"

// TableReader is satisfied by *sheets.Reader.
type TableReader interface {
	Read(ctx context.Context, documentURL, sheetName, credentialsFile string) (*model.Table, error)
}

// Source identifies one sheet load; it is the cache key.
type Source struct {
	DocumentURL     string
	SheetName       string
	CredentialsFile string
}

// Config configures a DataLoader.
type Config struct {
	Now      func() time.Time
	Notifier common.Notifier
	Metrics  *telemetry.Metrics
	Logger   *slog.Logger
	TTL      time.Duration
}

// DataLoader memoizes the most recent sheet load.
type DataLoader struct {
	reader   TableReader
	notifier common.Notifier
	metrics  *telemetry.Metrics
	logger   *slog.Logger
	cache    *cache.Memo[Source, *model.Table]
	now      func() time.Time
}

// New creates a DataLoader reading through reader.
func New(reader TableReader, cfg Config) *DataLoader {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := common.LoggerOrDefault(cfg.Logger)
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = common.LogNotifier{Logger: logger}
	}

	return &DataLoader{
		reader:   reader,
		notifier: notifier,
		metrics:  cfg.Metrics,
		logger:   logger,
		now:      cfg.Now,
		cache: cache.New[Source, *model.Table](cache.Options{
			TTL:        cfg.TTL,
			MaxEntries: 1,
			Now:        cfg.Now,
		}),
	}
}

// Load returns the table for src. On a miss it reads the sheet; a failed
// read is reported to the notifier and yields an empty table, which is cached
// like any other result until the TTL expires or Clear is called.
func (l *DataLoader) Load(ctx context.Context, src Source) *model.Table {
	table, hit := l.cache.GetOrTryLoad(src, func() (*model.Table, bool) {
		return l.fetch(ctx, src)
	})
	l.metrics.CacheLookup(cacheName, hit)
	if hit {
		l.logger.Debug("sheet served from cache", "sheet", src.SheetName, "rows", table.Len())
	}
	return table
}

// Records loads src and parses it into performance records. A parse failure
// is reported and yields no records.
func (l *DataLoader) Records(ctx context.Context, src Source) []model.Record {
	table := l.Load(ctx, src)
	records, err := model.ParseRecords(table, model.DateColumn)
	if err != nil {
		l.notifier.Error("loaded sheet is missing required columns", err)
		return []model.Record{}
	}
	if missing := model.MissingColumns(table); len(missing) > 0 && !table.Empty() {
		l.logger.Warn("sheet is missing expected columns", "missing", missing)
	}
	return records
}

// Clear drops the cached table so the next Load re-reads the sheet.
func (l *DataLoader) Clear() {
	l.cache.Clear()
}

// fetch reads the sheet. The bool reports whether the result may be cached:
// a read abandoned because the caller's context ended says nothing about the
// sheet, so its empty stand-in is returned but not kept.
func (l *DataLoader) fetch(ctx context.Context, src Source) (*model.Table, bool) {
	start := l.now()
	table, err := l.reader.Read(ctx, src.DocumentURL, src.SheetName, src.CredentialsFile)
	if ctxErr := ctx.Err(); ctxErr != nil {
		l.logger.Warn("sheet load abandoned", "sheet", src.SheetName, "error", ctxErr)
		return model.NewTable(), false
	}
	if err != nil || table == nil {
		l.metrics.LoadFailed(cacheName)
		l.notifier.Error("failed to load spreadsheet data", err)
		return model.NewTable(), true
	}
	l.metrics.SheetLoaded(l.now().Sub(start), table.Len())
	return table, true
}
