package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

var ErrInvalidRange = httperr.ErrBusiness("InvalidDate")

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From) {
		return nil, ErrInvalidRange
	}
	return uc.repo.ListAppointments(ctx, filter)
}

// ForMember lists every appointment a member booked.
func (uc *ListAppointments) ForMember(ctx context.Context, memberID uint) ([]models.Appointment, error) {
	return uc.repo.ListAppointments(ctx, domain.ListFilter{MemberID: memberID})
}

// ForTrainerUser lists the day agenda of the trainer whose identity subject
// is userID.
func (uc *ListAppointments) ForTrainerUser(
	ctx context.Context,
	userID uint,
	date time.Time,
) ([]models.Appointment, error) {
	trainer, err := uc.repo.GetTrainerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListAppointments(ctx, domain.ListFilter{
		TrainerID: trainer.ID,
		From:      date,
		To:        date,
	})
}
