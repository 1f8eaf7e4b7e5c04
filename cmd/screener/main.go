package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Yahelsm/stz-signal-tool/internal/config"
	"github.com/Yahelsm/stz-signal-tool/internal/engine"
	"github.com/Yahelsm/stz-signal-tool/internal/interfaces"
	"github.com/Yahelsm/stz-signal-tool/internal/llm/noop"
	"github.com/Yahelsm/stz-signal-tool/internal/llm/openai"
	"github.com/Yahelsm/stz-signal-tool/internal/logger"
	"github.com/Yahelsm/stz-signal-tool/internal/marketdata"
	"github.com/Yahelsm/stz-signal-tool/internal/news"
	"github.com/Yahelsm/stz-signal-tool/internal/notify"
	"github.com/Yahelsm/stz-signal-tool/internal/universe"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	recipientsFlag := flag.String("recipients", "", "comma-separated alert recipients (required)")
	flag.Parse()

	recipients := splitRecipients(*recipientsFlag)
	if len(recipients) == 0 {
		fmt.Fprintln(os.Stderr, "missing required -recipients")
		flag.Usage()
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	defer func() { _ = logger.Shutdown(ctx) }()

	cfg, err := loadConfig(ctx, *configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}

	eng, err := buildEngine(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build engine", err)
		os.Exit(1)
	}

	outcome, err := eng.Run(ctx, recipients)
	if err != nil {
		logger.ErrorWithErr(ctx, "Run finished with delivery error", err, "outcome", string(outcome))
		return
	}
	logger.Info(ctx, "Run finished", "outcome", string(outcome))
}

// loadConfig falls back to full defaults when no config file exists, so the
// tool runs out of the box.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn(ctx, "Config file not found, using defaults", "path", path)
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	source := universe.NewHTTPSource(
		cfg.Universe.LookupBaseURL,
		cfg.Universe.LookupCount,
		time.Duration(cfg.Universe.LookupTimeoutSec)*time.Second,
	)
	cache := universe.NewCache(source, cfg.Universe.Screens, cfg.Universe.CachePath)

	provider := marketdata.NewHTTPProvider(cfg.Fetch.BaseURL, time.Duration(cfg.Fetch.TimeoutSec)*time.Second)
	fetcher := marketdata.NewFetcher(provider, cfg.Fetch.ChunkSize)

	headlines := news.NewFetcher(cfg.News.URL, time.Duration(cfg.News.TimeoutSec)*time.Second)

	var classifier interfaces.Classifier
	switch cfg.LLM.Provider {
	case "OPENAI":
		classifier = openai.NewClassifier(cfg)
	default:
		classifier = noop.NewClassifier()
		logger.Warn(ctx, "No LLM provider configured - using noop classifier")
	}

	notifier := notify.NewEmailNotifier(cfg)

	return engine.New(cfg, cache, fetcher, headlines, classifier, notifier)
}

func splitRecipients(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
