// Package products loads the per-product date windows the dashboard offers
// as preset ranges.
package products

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/performance-dashboard/internal/cache"
	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/model"
)

// DefaultPath is where the product dates file lives relative to the working directory.
var DefaultPath = filepath.Join("configs", "product_dates.json")

// DefaultTTL is how long a loaded file is reused.
const DefaultTTL = time.Hour

// Date is a calendar day encoded as YYYY-MM-DD in JSON.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := model.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.Format(model.DateLayout))
}

// Entry is one product and the window in which its data is meaningful.
type Entry struct {
	Name      string `json:"name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

// Range returns the entry's window with start and end in order. A missing
// end means the window is open up to today.
func (e Entry) Range() model.DateRange {
	start, end := e.StartDate.Time, e.EndDate.Time
	if end.IsZero() {
		end = model.Day(time.Now())
	}
	if start.After(end) {
		start, end = end, start
	}
	return model.DateRange{Start: start, End: end}
}

type file struct {
	Products []Entry `json:"products"`
}

// Find returns the entry named name, ignoring case.
func Find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Loader reads product date files, memoizing each path for a TTL.
type Loader struct {
	notifier common.Notifier
	cache    *cache.Memo[string, []Entry]
}

// Option configures a Loader.
type Option func(*cache.Options)

// WithClock overrides the clock used for TTL checks.
func WithClock(now func() time.Time) Option {
	return func(o *cache.Options) { o.Now = now }
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(o *cache.Options) { o.TTL = ttl }
}

// NewLoader creates a Loader that reports failures to notifier.
func NewLoader(notifier common.Notifier, opts ...Option) *Loader {
	cacheOpts := cache.Options{TTL: DefaultTTL}
	for _, opt := range opts {
		opt(&cacheOpts)
	}
	if notifier == nil {
		notifier = common.LogNotifier{}
	}
	return &Loader{
		notifier: notifier,
		cache:    cache.New[string, []Entry](cacheOpts),
	}
}

// Load returns the products listed in the file at path, or DefaultPath when
// path is empty. Read and parse failures are reported to the notifier and
// yield an empty list.
func (l *Loader) Load(path string) []Entry {
	if path == "" {
		path = DefaultPath
	}
	entries, _ := l.cache.GetOrLoad(path, func() []Entry {
		entries, err := readFile(path)
		if err != nil {
			l.notifier.Error("failed to load product dates file", err)
			return []Entry{}
		}
		return entries
	})
	return entries
}

func readFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Products == nil {
		return []Entry{}, nil
	}
	return f.Products, nil
}
