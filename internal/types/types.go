package types

// Bar is one OHLCV record. Ts is a Unix timestamp in seconds.
type Bar struct {
	Ts                              int64
	Open, High, Low, Close, Volume float64
}

// Series holds chronological bars for one symbol. Upstream data is
// best-effort; gaps are possible.
type Series []Bar

// Latest returns the most recent bar and whether the series is non-empty.
func (s Series) Latest() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Quote is the compact per-symbol view handed to the classifier.
type Quote struct {
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
	V float64 `json:"v"`
}

// Snapshot is the per-run payload for the classifier: the latest quote per
// symbol plus a few headlines. Rebuilt on every run, never persisted.
type Snapshot struct {
	Prices map[string]Quote `json:"prices"`
	News   []string         `json:"news"`
}

// Classification buckets symbols into the three signal lists. Each list is
// capped at MaxSymbolsPerBucket by the consumer, not by the classifier.
type Classification struct {
	Enter    []string `json:"enter"`
	Breakout []string `json:"breakout"`
	Exit     []string `json:"exit"`
}

// MaxSymbolsPerBucket limits each classification list.
const MaxSymbolsPerBucket = 20

// Cap truncates every bucket to MaxSymbolsPerBucket.
func (c *Classification) Cap() {
	if len(c.Enter) > MaxSymbolsPerBucket {
		c.Enter = c.Enter[:MaxSymbolsPerBucket]
	}
	if len(c.Breakout) > MaxSymbolsPerBucket {
		c.Breakout = c.Breakout[:MaxSymbolsPerBucket]
	}
	if len(c.Exit) > MaxSymbolsPerBucket {
		c.Exit = c.Exit[:MaxSymbolsPerBucket]
	}
}
