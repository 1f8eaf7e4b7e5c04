package interfaces

import "context"

type HeadlineSource interface {
	Headlines(ctx context.Context, count int) []string
}
