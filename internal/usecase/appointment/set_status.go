package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type SetStatusInput struct {
	AppointmentID uint
	NewStatus     domain.Status
	ActorRole     models.Role
	ActorID       uint
}

type SetAppointmentStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Now
}

func NewSetAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetAppointmentStatus {
	return &SetAppointmentStatus{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *SetAppointmentStatus) WithClock(now Now) *SetAppointmentStatus {
	uc.now = now
	return uc
}

// Execute confirms, cancels or completes an appointment. Members are rejected
// before any lookup; a trainer may only act on their own appointments.
func (uc *SetAppointmentStatus) Execute(
	ctx context.Context,
	in SetStatusInput,
) (*models.Appointment, error) {

	if in.ActorRole != models.RoleAdmin && in.ActorRole != models.RoleTrainer {
		return nil, domain.ErrForbidden
	}

	var (
		ap   *models.Appointment
		from domain.Status
	)
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForUpdate(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		if in.ActorRole == models.RoleTrainer {
			trainer, err := tx.GetTrainer(ctx, ap.TrainerID)
			if err != nil {
				return err
			}
			if err := domain.CanChangeStatus(in.ActorRole, in.ActorID, trainer.UserID); err != nil {
				return err
			}
		}

		from = domain.Status(ap.Status)
		if err := domain.Transition(ap, in.NewStatus, uc.now().UTC()); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		GymCenterID: ap.GymCenterID,
		UserID:      &in.ActorID,
		Action:      "appointment_status_changed",
		Entity:      "appointment",
		EntityID:    &ap.ID,
		Metadata: map[string]string{
			"from": string(from),
			"to":   string(in.NewStatus),
		},
	})

	return ap, nil
}
