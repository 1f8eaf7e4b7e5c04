package interfaces

import (
	"context"

	"github.com/Yahelsm/stz-signal-tool/internal/types"
)

type Classifier interface {
	Classify(ctx context.Context, snap types.Snapshot) (types.Classification, error)
}
