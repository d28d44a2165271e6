package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment/appointmenttest"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

var fixedNow = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	repo    *appointmenttest.Memory
	gym     models.GymCenter
	service models.Service
	trainer models.Trainer
	day     time.Time
}

// newFixture seeds one gym, a 30 minute service and a trainer offering it
// with a 09:00-10:00 window on 2026-03-05.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := appointmenttest.NewMemory()
	gym := repo.AddGym(models.GymCenter{Name: "Central", Timezone: "UTC", Active: true})
	service := repo.AddService(models.Service{
		GymCenterID:     gym.ID,
		Name:            "Personal training",
		DurationMinutes: 30,
		Price:           decimal.RequireFromString("45.50"),
		Active:          true,
	})
	trainer := repo.AddTrainer(models.Trainer{
		UserID:      500,
		GymCenterID: gym.ID,
		Name:        "Ada",
		Active:      true,
	}, service.ID)

	day, err := domain.ParseDate("2026-03-05")
	require.NoError(t, err)
	repo.AddWindow(models.AvailabilityWindow{
		TrainerID: trainer.ID,
		Date:      day,
		StartTime: "09:00",
		EndTime:   "10:00",
		Active:    true,
	})

	return &fixture{repo: repo, gym: gym, service: service, trainer: trainer, day: day}
}

func (f *fixture) input(start string) CreateAppointmentInput {
	return CreateAppointmentInput{
		MemberID:  77,
		TrainerID: f.trainer.ID,
		ServiceID: f.service.ID,
		Date:      f.day,
		StartTime: start,
	}
}
