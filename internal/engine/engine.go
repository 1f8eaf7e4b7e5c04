// Package engine sequences one screening pass: universe, bars, headlines,
// classification, notification. Data flows strictly downstream; no stage
// calls back upstream.
package engine

import (
	"context"
	"time"

	"github.com/Yahelsm/stz-signal-tool/internal/config"
	"github.com/Yahelsm/stz-signal-tool/internal/interfaces"
	"github.com/Yahelsm/stz-signal-tool/internal/logger"
	"github.com/Yahelsm/stz-signal-tool/internal/market"
	"github.com/Yahelsm/stz-signal-tool/internal/report"
	"github.com/Yahelsm/stz-signal-tool/internal/retry"
	"github.com/Yahelsm/stz-signal-tool/internal/types"
)

// Outcome is the terminal state of one run.
type Outcome string

const (
	// OutcomeSuccess: classification delivered.
	OutcomeSuccess Outcome = "SUCCESS"
	// OutcomeUniverseFailure: every screen failed; an error alert was sent.
	OutcomeUniverseFailure Outcome = "UNIVERSE_FAILURE"
	// OutcomeClassifierFailure: retries exhausted; no alert on purpose, a
	// missing email beats a malformed one.
	OutcomeClassifierFailure Outcome = "CLASSIFIER_FAILURE"
)

// UniverseResolver yields today's symbol set. Empty means total failure.
type UniverseResolver interface {
	Universe(ctx context.Context) []string
}

// BarFetcher retrieves per-symbol series; one entry per requested symbol.
type BarFetcher interface {
	FetchBars(ctx context.Context, symbols []string, period, interval string) map[string]types.Series
}

type Engine struct {
	cfg        *config.Config
	universe   UniverseResolver
	fetcher    BarFetcher
	headlines  interfaces.HeadlineSource
	classifier interfaces.Classifier
	notifier   interfaces.Notifier
	session    *market.Session
	policy     retry.Policy
	reportLoc  *time.Location
	now        func() time.Time
}

func New(cfg *config.Config, universe UniverseResolver, fetcher BarFetcher, headlines interfaces.HeadlineSource, classifier interfaces.Classifier, notifier interfaces.Notifier) (*Engine, error) {
	session, err := market.NewSession(cfg.Session.Timezone, cfg.Session.OpenHour, cfg.Session.OpenMin, cfg.Session.CloseHour, cfg.Session.CloseMin)
	if err != nil {
		return nil, err
	}
	reportLoc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:        cfg,
		universe:   universe,
		fetcher:    fetcher,
		headlines:  headlines,
		classifier: classifier,
		notifier:   notifier,
		session:    session,
		policy: retry.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Retry.BaseDelayMS) * time.Millisecond,
			Multiplier:  cfg.Retry.Multiplier,
		},
		reportLoc: reportLoc,
		now:       time.Now,
	}, nil
}

// Run executes one screening pass. The returned error is non-nil only when
// the final notification could not be delivered; degraded upstream data is
// absorbed along the way.
func (e *Engine) Run(ctx context.Context, recipients []string) (Outcome, error) {
	ctx, span := logger.StartSpan(ctx, "screening-run")
	defer span.End()

	symbols := e.universe.Universe(ctx)
	if len(symbols) == 0 {
		logger.Error(ctx, "Universe resolution failed on all screens")
		rep := report.RenderError("Universe fetch failed.")
		if err := e.notifier.Send(ctx, recipients, rep.Subject, rep.Text, rep.HTML); err != nil {
			logger.ErrorWithErr(ctx, "Failed to send error alert", err)
			return OutcomeUniverseFailure, err
		}
		return OutcomeUniverseFailure, nil
	}

	live := e.session.IsOpen(e.now())
	period, interval := e.cfg.Fetch.DailyPeriod, e.cfg.Fetch.DailyInterval
	if live {
		period, interval = e.cfg.Fetch.IntradayPeriod, e.cfg.Fetch.IntradayInterval
	}
	logger.Info(ctx, "Fetching bars", "symbols", len(symbols), "period", period, "interval", interval, "live", live)

	bars := e.fetcher.FetchBars(ctx, symbols, period, interval)
	headlines := e.headlines.Headlines(ctx, e.cfg.News.Count)

	snap := buildSnapshot(bars, headlines)
	logger.Info(ctx, "Snapshot built", "priced_symbols", len(snap.Prices), "headlines", len(snap.News))

	var cls types.Classification
	err := e.policy.Do(ctx, "classify", func(ctx context.Context) error {
		var cerr error
		cls, cerr = e.classifier.Classify(ctx, snap)
		return cerr
	})
	if err != nil {
		logger.ErrorWithErr(ctx, "Classifier unavailable, skipping alert", err)
		return OutcomeClassifierFailure, nil
	}
	logger.Classification(ctx, len(cls.Enter), len(cls.Breakout), len(cls.Exit))

	rep := report.Render(cls, e.now(), e.reportLoc, live)
	if err := e.notifier.Send(ctx, recipients, rep.Subject, rep.Text, rep.HTML); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send alert", err)
		return OutcomeSuccess, err
	}
	return OutcomeSuccess, nil
}

// buildSnapshot takes the latest bar of every non-empty series. Symbols with
// empty series are left out entirely, not included as nulls.
func buildSnapshot(bars map[string]types.Series, headlines []string) types.Snapshot {
	snap := types.Snapshot{Prices: make(map[string]types.Quote), News: headlines}
	if snap.News == nil {
		snap.News = []string{}
	}
	for sym, series := range bars {
		last, ok := series.Latest()
		if !ok {
			continue
		}
		snap.Prices[sym] = types.Quote{O: last.Open, H: last.High, L: last.Low, C: last.Close, V: last.Volume}
	}
	return snap
}
