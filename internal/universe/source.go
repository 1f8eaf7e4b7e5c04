package universe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// HTTPSource queries a predefined-screener endpoint for index constituents,
// one GET per screen. Any deviation from the expected response shape is
// reported as a failed lookup for that screen only.
type HTTPSource struct {
	baseURL string
	count   int
	client  *http.Client
}

func NewHTTPSource(baseURL string, count int, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		count:   count,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Constituents(ctx context.Context, screen string) ([]string, error) {
	q := url.Values{}
	q.Set("formatted", "true")
	q.Set("scrIds", screen)
	q.Set("count", fmt.Sprint(s.count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("screener http %d for %s", resp.StatusCode, screen)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	quotes := gjson.GetBytes(body, "finance.result.0.quotes")
	if !quotes.Exists() {
		return nil, fmt.Errorf("unexpected screener response shape for %s", screen)
	}

	var symbols []string
	quotes.ForEach(func(_, q gjson.Result) bool {
		if sym := q.Get("symbol").String(); sym != "" {
			symbols = append(symbols, sym)
		}
		return true
	})
	return symbols, nil
}
