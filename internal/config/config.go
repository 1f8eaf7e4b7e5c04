package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Universe struct {
		CachePath        string   `yaml:"cache_path"`
		Screens          []string `yaml:"screens"`
		LookupBaseURL    string   `yaml:"lookup_base_url"`
		LookupTimeoutSec int      `yaml:"lookup_timeout_sec"`
		LookupCount      int      `yaml:"lookup_count"`
	} `yaml:"universe"`
	Fetch struct {
		ChunkSize        int    `yaml:"chunk_size"`
		BaseURL          string `yaml:"base_url"`
		TimeoutSec       int    `yaml:"timeout_sec"`
		IntradayPeriod   string `yaml:"intraday_period"`
		IntradayInterval string `yaml:"intraday_interval"`
		DailyPeriod      string `yaml:"daily_period"`
		DailyInterval    string `yaml:"daily_interval"`
	} `yaml:"fetch"`
	News struct {
		Count      int    `yaml:"count"`
		URL        string `yaml:"url"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"news"`
	Session struct {
		Timezone  string `yaml:"timezone"`
		OpenHour  int    `yaml:"open_hour"`
		OpenMin   int    `yaml:"open_min"`
		CloseHour int    `yaml:"close_hour"`
		CloseMin  int    `yaml:"close_min"`
	} `yaml:"session"`
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`
	Retry struct {
		MaxAttempts int     `yaml:"max_attempts"`
		BaseDelayMS int     `yaml:"base_delay_ms"`
		Multiplier  float64 `yaml:"multiplier"`
	} `yaml:"retry"`
	SMTP struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		From string `yaml:"from"`
	} `yaml:"smtp"`
	Report struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"report"`
}

// defaultSystemPrompt describes the screening method the classifier applies.
// Kept in config so operators can tune it without a rebuild.
const defaultSystemPrompt = `You are an algorithmic-trading assistant implementing the Shaked Tzafoni method:
- Identify uptrends by consecutive higher highs & higher lows; downtrends by lower highs & lower lows.
- Reference candle = highest high (or lowest low) in the sequence; breakout when price closes beyond its body.
- Use EMA8 and SMA20 for confirmation. Entry on breakout in trend direction, above EMA8/SMA20, volume high.
- Exit when sequence breaks opposite direction or price closes below/above EMA8, or EMA3 crosses EMA8.
- Include only valid candlestick patterns: hammer, inverted hammer, engulfing, doji at S/R.
Classify each ticker into one of three lists: "enter", "breakout", "exit".
Return JSON: { "enter":[...], "breakout":[...], "exit":[...] }, max 20 symbols each.`

func (c *Config) Validate() error {
	if len(c.Universe.Screens) == 0 {
		return errors.New("universe.screens cannot be empty")
	}
	if c.Fetch.ChunkSize <= 0 {
		return fmt.Errorf("fetch.chunk_size must be positive, got %d", c.Fetch.ChunkSize)
	}
	if c.LLM.Provider != "OPENAI" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI' or 'NOOP'", c.LLM.Provider)
	}
	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("retry.max_attempts must be positive, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("retry.multiplier must be >= 1, got %.2f", c.Retry.Multiplier)
	}
	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return fmt.Errorf("invalid session.timezone '%s': %w", c.Session.Timezone, err)
	}
	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("invalid report.timezone '%s': %w", c.Report.Timezone, err)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

// Default returns a config with every field at its default, for callers that
// run without a config file.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Universe.CachePath == "" {
		c.Universe.CachePath = "cache/tickers_cache.json"
	}
	if len(c.Universe.Screens) == 0 {
		c.Universe.Screens = []string{"sp500", "nasdaq_100", "dow_jones", "russell_2000"}
	}
	if c.Universe.LookupBaseURL == "" {
		c.Universe.LookupBaseURL = "https://query2.finance.yahoo.com/v1/finance/screener/predefined/saved"
	}
	if c.Universe.LookupTimeoutSec == 0 {
		c.Universe.LookupTimeoutSec = 5
	}
	if c.Universe.LookupCount == 0 {
		c.Universe.LookupCount = 2000
	}
	if c.Fetch.ChunkSize == 0 {
		c.Fetch.ChunkSize = 200
	}
	if c.Fetch.BaseURL == "" {
		c.Fetch.BaseURL = "https://query1.finance.yahoo.com/v8/finance/spark"
	}
	if c.Fetch.TimeoutSec == 0 {
		c.Fetch.TimeoutSec = 30
	}
	if c.Fetch.IntradayPeriod == "" {
		c.Fetch.IntradayPeriod = "7d"
	}
	if c.Fetch.IntradayInterval == "" {
		c.Fetch.IntradayInterval = "5m"
	}
	if c.Fetch.DailyPeriod == "" {
		c.Fetch.DailyPeriod = "30d"
	}
	if c.Fetch.DailyInterval == "" {
		c.Fetch.DailyInterval = "1d"
	}
	if c.News.Count == 0 {
		c.News.Count = 5
	}
	if c.News.URL == "" {
		c.News.URL = "https://finance.yahoo.com/quote/SPY/news"
	}
	if c.News.TimeoutSec == 0 {
		c.News.TimeoutSec = 10
	}
	if c.Session.Timezone == "" {
		c.Session.Timezone = "America/New_York"
	}
	if c.Session.OpenHour == 0 && c.Session.OpenMin == 0 {
		c.Session.OpenHour, c.Session.OpenMin = 9, 30
	}
	if c.Session.CloseHour == 0 && c.Session.CloseMin == 0 {
		c.Session.CloseHour, c.Session.CloseMin = 16, 0
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.System == "" {
		c.LLM.System = defaultSystemPrompt
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.BaseDelayMS == 0 {
		c.Retry.BaseDelayMS = 1000
	}
	if c.Retry.Multiplier == 0 {
		c.Retry.Multiplier = 2.0
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.Report.Timezone == "" {
		c.Report.Timezone = "Asia/Jerusalem"
	}
}
