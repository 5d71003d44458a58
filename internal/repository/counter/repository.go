package counter

import "context"

// Repository issues strictly increasing, unique integers per named counter.
type Repository interface {
	Next(ctx context.Context, name string) (int64, error)
}
