// Package universe resolves the day's set of tradable ticker symbols,
// backed by a single-entry date-stamped file cache so index-constituent
// lookups run at most once per UTC day.
package universe

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Yahelsm/stz-signal-tool/internal/interfaces"
	"github.com/Yahelsm/stz-signal-tool/internal/logger"
)

// Record is the on-disk cache shape. Date is the UTC calendar day of the
// last successful refresh.
type Record struct {
	Date    string   `json:"date"`
	Tickers []string `json:"tickers"`
}

type Cache struct {
	source  interfaces.UniverseSource
	screens []string
	path    string
	now     func() time.Time
}

func NewCache(source interfaces.UniverseSource, screens []string, path string) *Cache {
	return &Cache{
		source:  source,
		screens: screens,
		path:    path,
		now:     time.Now,
	}
}

// Universe returns today's sorted, deduplicated symbol set. A valid cache
// record for today short-circuits all network access. An empty result means
// every screen failed; callers must treat that as a hard error.
func (c *Cache) Universe(ctx context.Context) []string {
	today := c.now().UTC().Format("2006-01-02")

	if rec, ok := c.readRecord(); ok && rec.Date == today {
		logger.Debug(ctx, "Universe served from cache", "date", rec.Date, "symbols", len(rec.Tickers))
		return rec.Tickers
	}

	seen := map[string]struct{}{}
	for _, screen := range c.screens {
		symbols, err := c.source.Constituents(ctx, screen)
		if err != nil {
			// Each screen is independently best-effort.
			logger.Warn(ctx, "Screen lookup failed", "screen", screen, "error", err)
			continue
		}
		for _, s := range symbols {
			seen[s] = struct{}{}
		}
	}

	tickers := make([]string, 0, len(seen))
	for s := range seen {
		tickers = append(tickers, s)
	}
	sort.Strings(tickers)

	if len(tickers) > 0 {
		if err := c.writeRecord(Record{Date: today, Tickers: tickers}); err != nil {
			logger.Warn(ctx, "Failed to persist universe cache", "path", c.path, "error", err)
		}
	}

	logger.Info(ctx, "Universe refreshed", "screens", len(c.screens), "symbols", len(tickers))
	return tickers
}

// readRecord loads the cache file. A missing, unreadable, or malformed file
// is treated the same as no cache at all.
func (c *Cache) readRecord() (Record, bool) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, false
	}
	if rec.Date == "" || rec.Tickers == nil {
		return Record{}, false
	}
	return rec, true
}

// writeRecord persists via write-temp-then-rename so a concurrent reader
// never observes a partially written file.
func (c *Cache) writeRecord(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
