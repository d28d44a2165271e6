package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

// Now supplies the current instant. Tests replace it to pin "today".
type Now func() time.Time

// gymToday returns the calendar date it currently is at the gym. A gym that
// cannot be found falls back to the default timezone.
func gymToday(ctx context.Context, repo domain.Repository, gymCenterID uint, now Now) (time.Time, string, error) {
	tz := timezone.DefaultTimezone
	gym, err := repo.GetGymCenterByID(ctx, gymCenterID)
	switch {
	case err == nil:
		tz = gym.Timezone
	case !errors.Is(err, domain.ErrNotFound):
		return time.Time{}, "", err
	}
	return domain.DayOf(timezone.In(now(), tz)), tz, nil
}
