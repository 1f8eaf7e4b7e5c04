// Package noop is the classifier used when no LLM provider is configured.
// Every bucket comes back empty, so a run produces an all-quiet report.
package noop

import (
	"context"

	"github.com/Yahelsm/stz-signal-tool/internal/types"
)

type Classifier struct{}

func NewClassifier() *Classifier { return &Classifier{} }

func (c *Classifier) Classify(ctx context.Context, snap types.Snapshot) (types.Classification, error) {
	return types.Classification{Enter: []string{}, Breakout: []string{}, Exit: []string{}}, nil
}
