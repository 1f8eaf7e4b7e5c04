package interfaces

import "context"

// UniverseSource performs one index-constituent lookup for a named screen.
type UniverseSource interface {
	Constituents(ctx context.Context, screen string) ([]string, error)
}
