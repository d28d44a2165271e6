package appointment

import (
	"context"
	"errors"
	"iter"
	"slices"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type GetAvailability struct {
	repo domain.Repository
	now  Now
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

func (uc *GetAvailability) WithClock(now Now) *GetAvailability {
	uc.now = now
	return uc
}

// Slots loads the trainer's windows and busy periods for the date and returns
// the free slots as a lazy sequence over that snapshot.
func (uc *GetAvailability) Slots(
	ctx context.Context,
	in domain.AvailabilityInput,
) (iter.Seq[domain.TimeSlot], error) {

	trainer, err := uc.repo.GetTrainer(ctx, in.TrainerID)
	if err != nil {
		return nil, err
	}
	if !trainer.Active {
		return nil, domain.ErrNotFound
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, domain.ErrNotFound
	}

	offered, err := uc.repo.TrainerOffersService(ctx, trainer.ID, service.ID)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, domain.ErrServiceNotOffered
	}

	today, _, err := gymToday(ctx, uc.repo, trainer.GymCenterID, uc.now)
	if err != nil {
		return nil, err
	}
	if in.Date.Before(today) {
		return func(func(domain.TimeSlot) bool) {}, nil
	}

	windowRows, err := uc.repo.ListActiveWindows(ctx, trainer.ID, in.Date)
	if err != nil {
		return nil, err
	}
	busyRows, err := uc.repo.ListBlockingAppointments(ctx, trainer.ID, in.Date)
	if err != nil {
		return nil, err
	}

	windows := windowIntervals(windowRows)
	busy := appointmentIntervals(busyRows)
	duration := service.DurationMinutes

	return func(yield func(domain.TimeSlot) bool) {
		for slot := range domain.Slots(windows, busy, duration) {
			if !yield(slot.Slot()) {
				return
			}
		}
	}, nil
}

// Execute collects Slots into a slice. The result is never nil.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {
	seq, err := uc.Slots(ctx, in)
	if err != nil {
		return nil, err
	}
	out := slices.Collect(seq)
	if out == nil {
		out = []domain.TimeSlot{}
	}
	return out, nil
}

// Rows with unparsable times are skipped; they can only come from manual
// edits since every write path validates the format.
func windowIntervals(rows []models.AvailabilityWindow) []domain.Interval {
	out := make([]domain.Interval, 0, len(rows))
	for _, w := range rows {
		iv, err := domain.ParseInterval(w.StartTime, w.EndTime)
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	return out
}

func appointmentIntervals(rows []models.Appointment) []domain.Interval {
	out := make([]domain.Interval, 0, len(rows))
	for _, ap := range rows {
		iv, err := domain.ParseInterval(ap.StartTime, ap.EndTime)
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	return out
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
