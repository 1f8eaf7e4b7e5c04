// Package marketdata retrieves per-symbol OHLCV series in provider-sized
// batches. The provider enforces a per-request symbol ceiling, so symbol
// lists are partitioned into fixed-size chunks before fetching.
package marketdata

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/Yahelsm/stz-signal-tool/internal/interfaces"
	"github.com/Yahelsm/stz-signal-tool/internal/logger"
	"github.com/Yahelsm/stz-signal-tool/internal/types"
)

type Fetcher struct {
	provider  interfaces.BarProvider
	chunkSize int
}

func NewFetcher(provider interfaces.BarProvider, chunkSize int) *Fetcher {
	return &Fetcher{provider: provider, chunkSize: chunkSize}
}

// FetchBars returns exactly one entry per input symbol. A symbol whose data
// is missing or malformed maps to an empty series; a failed chunk request
// degrades every symbol in that chunk the same way. No error escapes.
func (f *Fetcher) FetchBars(ctx context.Context, symbols []string, period, interval string) map[string]types.Series {
	timer := logger.StartOperation(ctx, "fetch-bars", "symbols", len(symbols), "period", period, "interval", interval)
	ctx = timer.GetContext()

	out := make(map[string]types.Series, len(symbols))

	chunks := chunkSymbols(symbols, f.chunkSize)
	for _, chunk := range chunks {
		body, err := f.provider.FetchChunk(ctx, chunk, period, interval)
		if err != nil {
			logger.Warn(ctx, "Chunk fetch failed", "symbols", len(chunk), "period", period, "interval", interval, "error", err)
			for _, sym := range chunk {
				out[sym] = types.Series{}
			}
			continue
		}
		for _, sym := range chunk {
			out[sym] = extractSeries(body, sym)
		}
	}

	timer.End("chunks", len(chunks))
	return out
}

// chunkSymbols partitions symbols into slices of at most size, preserving
// input order.
func chunkSymbols(symbols []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	var chunks [][]string
	for i := 0; i < len(symbols); i += size {
		end := i + size
		if end > len(symbols) {
			end = len(symbols)
		}
		chunks = append(chunks, symbols[i:end])
	}
	return chunks
}

// extractSeries pulls one symbol's sub-series out of the provider-native
// multi-symbol response and normalizes it to the canonical bar schema.
// Rows with any missing field are dropped.
func extractSeries(body []byte, symbol string) types.Series {
	doc := gjson.GetBytes(body, "spark.result.#(symbol==\""+symbol+"\").response.0")
	if !doc.Exists() {
		return types.Series{}
	}

	ts := doc.Get("timestamp").Array()
	quote := doc.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()

	n := len(ts)
	for _, col := range [][]gjson.Result{opens, highs, lows, closes, volumes} {
		if len(col) < n {
			n = len(col)
		}
	}

	series := make(types.Series, 0, n)
	for i := 0; i < n; i++ {
		row := []gjson.Result{opens[i], highs[i], lows[i], closes[i], volumes[i]}
		if hasNull(row) {
			continue
		}
		series = append(series, types.Bar{
			Ts:     ts[i].Int(),
			Open:   opens[i].Float(),
			High:   highs[i].Float(),
			Low:    lows[i].Float(),
			Close:  closes[i].Float(),
			Volume: volumes[i].Float(),
		})
	}
	return series
}

func hasNull(row []gjson.Result) bool {
	for _, v := range row {
		if v.Type == gjson.Null || !v.Exists() {
			return true
		}
	}
	return false
}
