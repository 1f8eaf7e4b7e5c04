package interfaces

import "context"

// BarProvider issues one batched bar request for a chunk of symbols and
// returns the provider-native JSON response body.
type BarProvider interface {
	FetchChunk(ctx context.Context, symbols []string, period, interval string) ([]byte, error)
}
