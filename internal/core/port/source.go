package port

import (
	"context"
	"frogbot/internal/core/domain"
)

type UpdateSource interface {
	// Fetch returns updates with an ID greater than after, in ascending order. An after of 0 means from the
	// beginning.
	Fetch(ctx context.Context, after int64) ([]domain.Update, error)
}
