// Package news grabs a handful of recent market headlines. Headlines are
// supplementary context for the classifier, not critical path: any failure
// yields an empty list and the run continues.
package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/Yahelsm/stz-signal-tool/internal/logger"
)

type Fetcher struct {
	pageURL  string
	selector string
	timeout  time.Duration
}

func NewFetcher(pageURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		pageURL:  pageURL,
		selector: "h3 a, h2 a, li.stream-item a.subtle-link",
		timeout:  timeout,
	}
}

// Headlines scrapes up to count headlines from the configured page. Single
// best-effort call, no retry.
func (f *Fetcher) Headlines(ctx context.Context, count int) []string {
	c := colly.NewCollector(
		colly.AllowedDomains(domainOf(f.pageURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(f.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	var headlines []string
	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find(f.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			title := strings.TrimSpace(sel.Text())
			if title == "" {
				return true
			}
			headlines = append(headlines, title)
			return len(headlines) < count
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Warn(ctx, "Headline scrape failed", "url", f.pageURL, "error", err)
	})

	if err := c.Visit(f.pageURL); err != nil {
		logger.Warn(ctx, "Headline fetch failed", "url", f.pageURL, "error", err)
		return nil
	}
	c.Wait()

	if len(headlines) > count {
		headlines = headlines[:count]
	}
	logger.Info(ctx, "Headlines fetched", "count", len(headlines))
	return headlines
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
