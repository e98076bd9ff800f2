package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetPoolStatsQueryIsNotConstructed = errors.New(
		"GetPoolStatsQuery must be created via NewGetPoolStatsQuery constructor",
	)
)

// GetPoolStatsQuery counts the pool and the work in progress.
type GetPoolStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPoolStatsQuery() GetPoolStatsQuery {
	return GetPoolStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPoolStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetPoolStatsQueryIsNotConstructed)
}

// GetPoolStatsQueryResponse holds the counters reported by the pool report job.
type GetPoolStatsQueryResponse struct {
	Available   int64
	Held        int64
	Delivered   int64
	OpenBatches int64
}
