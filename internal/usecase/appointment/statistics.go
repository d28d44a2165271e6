package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
)

type GetStatistics struct {
	repo domain.Repository
}

func NewGetStatistics(repo domain.Repository) *GetStatistics {
	return &GetStatistics{repo: repo}
}

// Execute counts appointments per status between from and to, both inclusive.
// Revenue sums the price snapshot of completed appointments.
func (uc *GetStatistics) Execute(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (*domain.Statistics, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, ErrInvalidRange
	}
	return uc.repo.AppointmentStatistics(ctx, from, to)
}
