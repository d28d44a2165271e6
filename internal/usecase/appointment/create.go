package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	MemberID  uint
	TrainerID uint
	ServiceID uint

	// Date is the calendar date at midnight UTC, as produced by
	// domain.ParseDate.
	Date      time.Time
	StartTime string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Now
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CreateAppointment) WithClock(now Now) *CreateAppointment {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrInvalidService
		}
		return nil, err
	}
	if !service.Active || service.DurationMinutes <= 0 {
		return nil, domain.ErrInvalidService
	}

	// --------------------------------------------------
	// Trainer
	// --------------------------------------------------
	trainer, err := uc.repo.GetTrainer(ctx, in.TrainerID)
	if err != nil {
		return nil, err
	}
	if !trainer.Active {
		return nil, domain.ErrNotFound
	}

	offered, err := uc.repo.TrainerOffersService(ctx, trainer.ID, service.ID)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, domain.ErrInvalidService
	}

	// --------------------------------------------------
	// Requested interval
	// --------------------------------------------------
	start, err := domain.ParseClock(in.StartTime)
	if err != nil || start >= domain.EndOfDay {
		return nil, domain.ErrInvalidTime
	}
	slot := domain.Interval{Start: start, End: start.Add(service.DurationMinutes)}
	if slot.End > domain.EndOfDay {
		return nil, domain.ErrNoAvailability
	}

	today, _, err := gymToday(ctx, uc.repo, trainer.GymCenterID, uc.now)
	if err != nil {
		return nil, err
	}
	if in.Date.Before(today) {
		return nil, domain.ErrNoAvailability
	}

	// --------------------------------------------------
	// Validate and insert under the trainer lock
	// --------------------------------------------------
	ap := &models.Appointment{
		MemberID:        in.MemberID,
		TrainerID:       trainer.ID,
		ServiceID:       service.ID,
		GymCenterID:     trainer.GymCenterID,
		Date:            in.Date,
		StartTime:       slot.Start.String(),
		EndTime:         slot.End.String(),
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockTrainer(ctx, trainer.ID); err != nil {
			return err
		}

		rows, err := tx.ListActiveWindows(ctx, trainer.ID, in.Date)
		if err != nil {
			return err
		}
		if !domain.Fits(slot, windowIntervals(rows)) {
			return domain.ErrNoAvailability
		}

		taken, err := tx.HasOverlap(ctx, trainer.ID, in.Date, ap.StartTime, ap.EndTime)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotTaken
		}

		ap.CreatedAt = uc.now().UTC()
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.audit.Dispatch(audit.Event{
				GymCenterID: trainer.GymCenterID,
				UserID:      &in.MemberID,
				Action:      "appointment_conflict",
				Entity:      "appointment",
				Metadata: map[string]any{
					"trainerId": trainer.ID,
					"date":      domain.FormatDate(in.Date),
					"startTime": ap.StartTime,
				},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		GymCenterID: ap.GymCenterID,
		UserID:      &in.MemberID,
		Action:      "appointment_created",
		Entity:      "appointment",
		EntityID:    &ap.ID,
	})

	return ap, nil
}
