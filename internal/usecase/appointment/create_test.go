package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

func TestCreateAppointmentPersistsPendingSnapshot(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAppointment(f.repo, nil).WithClock(clock)

	in := f.input("09:30")
	in.Notes = "knee rehab"
	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, "09:30", ap.StartTime)
	assert.Equal(t, "10:00", ap.EndTime)
	assert.Equal(t, 30, ap.DurationMinutes)
	assert.True(t, decimal.RequireFromString("45.50").Equal(ap.Price))
	assert.Equal(t, f.gym.ID, ap.GymCenterID)
	assert.Equal(t, fixedNow, ap.CreatedAt)
	assert.Equal(t, "knee rehab", ap.Notes)

	stored := f.repo.Appointments()
	require.Len(t, stored, 1)
	assert.Equal(t, ap.ID, stored[0].ID)
}

func TestCreateAppointmentRecordedAtTrainersGym(t *testing.T) {
	f := newFixture(t)
	annex := f.repo.AddGym(models.GymCenter{Name: "Annex", Timezone: "UTC", Active: true})
	f.trainer.GymCenterID = annex.ID
	f.repo.AddTrainer(f.trainer, f.service.ID)

	ap, err := NewCreateAppointment(f.repo, nil).WithClock(clock).Execute(context.Background(), f.input("09:00"))
	require.NoError(t, err)
	assert.Equal(t, annex.ID, ap.GymCenterID)
	assert.Equal(t, annex.ID, f.repo.Appointments()[0].GymCenterID)
}

func TestCreateAppointmentSnapshotSurvivesPriceChange(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAppointment(f.repo, nil).WithClock(clock)

	ap, err := uc.Execute(context.Background(), f.input("09:00"))
	require.NoError(t, err)

	f.service.Price = decimal.NewFromInt(99)
	f.service.DurationMinutes = 60
	f.repo.AddService(f.service)

	stored := f.repo.Appointments()
	require.Len(t, stored, 1)
	assert.True(t, ap.Price.Equal(stored[0].Price))
	assert.Equal(t, 30, stored[0].DurationMinutes)
}

func TestCreateAppointmentRejections(t *testing.T) {
	f := newFixture(t)
	inactiveService := f.repo.AddService(models.Service{GymCenterID: f.gym.ID, DurationMinutes: 30, Active: false})
	notOffered := f.repo.AddService(models.Service{GymCenterID: f.gym.ID, DurationMinutes: 30, Active: true})
	longService := f.repo.AddService(models.Service{GymCenterID: f.gym.ID, DurationMinutes: 90, Active: true})
	f.repo.AddTrainer(f.trainer, f.service.ID, longService.ID)
	inactiveTrainer := f.repo.AddTrainer(models.Trainer{UserID: 901, GymCenterID: f.gym.ID}, f.service.ID)

	past, _ := domain.ParseDate("2026-03-01")
	otherDay, _ := domain.ParseDate("2026-03-06")

	with := func(mut func(*CreateAppointmentInput)) CreateAppointmentInput {
		in := f.input("09:00")
		mut(&in)
		return in
	}

	cases := []struct {
		name string
		in   CreateAppointmentInput
		want error
	}{
		{"unknown service", with(func(in *CreateAppointmentInput) { in.ServiceID = 999 }), domain.ErrInvalidService},
		{"inactive service", with(func(in *CreateAppointmentInput) { in.ServiceID = inactiveService.ID }), domain.ErrInvalidService},
		{"service not offered", with(func(in *CreateAppointmentInput) { in.ServiceID = notOffered.ID }), domain.ErrInvalidService},
		{"unknown trainer", with(func(in *CreateAppointmentInput) { in.TrainerID = 999 }), domain.ErrNotFound},
		{"inactive trainer", with(func(in *CreateAppointmentInput) { in.TrainerID = inactiveTrainer.ID }), domain.ErrNotFound},
		{"malformed time", with(func(in *CreateAppointmentInput) { in.StartTime = "9:00" }), domain.ErrInvalidTime},
		{"midnight start", with(func(in *CreateAppointmentInput) { in.StartTime = "24:00" }), domain.ErrInvalidTime},
		{"past date", with(func(in *CreateAppointmentInput) { in.Date = past }), domain.ErrNoAvailability},
		{"no window that day", with(func(in *CreateAppointmentInput) { in.Date = otherDay }), domain.ErrNoAvailability},
		{"misaligned end", with(func(in *CreateAppointmentInput) { in.StartTime = "09:45" }), domain.ErrNoAvailability},
		{"longer than window", with(func(in *CreateAppointmentInput) { in.ServiceID = longService.ID }), domain.ErrNoAvailability},
		{"ends after midnight", with(func(in *CreateAppointmentInput) { in.StartTime = "23:45" }), domain.ErrNoAvailability},
	}

	uc := NewCreateAppointment(f.repo, nil).WithClock(clock)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.repo.Appointments(), "rejected bookings leave no rows")
}

func TestCreateAppointmentOverlapIsSlotTaken(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAppointment(f.repo, nil).WithClock(clock)
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.input("09:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, f.input("09:00"))
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.Len(t, f.repo.Appointments(), 1)
}

func TestCreateAppointmentCancelledFreesSlot(t *testing.T) {
	f := newFixture(t)
	f.repo.AddAppointment(models.Appointment{
		TrainerID: f.trainer.ID, ServiceID: f.service.ID, Date: f.day,
		StartTime: "09:00", EndTime: "09:30", Status: string(domain.StatusCancelled),
	})

	ap, err := NewCreateAppointment(f.repo, nil).WithClock(clock).Execute(context.Background(), f.input("09:00"))
	require.NoError(t, err)
	assert.Equal(t, "09:00", ap.StartTime)
}

func TestCreateAppointmentConcurrentDoubleBooking(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAppointment(f.repo, nil).WithClock(clock)

	const attempts = 8
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, attempts)
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			in := f.input("09:00")
			in.MemberID = uint(100 + i)
			_, errs[i] = uc.Execute(context.Background(), in)
		}()
	}
	close(start)
	wg.Wait()

	var ok, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, taken)
	assert.Len(t, f.repo.Appointments(), 1)
}

func TestCreateAppointmentStorageGuardMapsToSlotTaken(t *testing.T) {
	f := newFixture(t)
	// A row appearing between the overlap check and the insert is caught by
	// the uniqueness guard.
	f.repo.BeforeCreate = func() {
		f.repo.BeforeCreate = nil
		f.repo.AddAppointment(models.Appointment{
			TrainerID: f.trainer.ID, ServiceID: f.service.ID, Date: f.day,
			StartTime: "09:00", EndTime: "09:30", Status: string(domain.StatusPending),
		})
	}

	_, err := NewCreateAppointment(f.repo, nil).WithClock(clock).Execute(context.Background(), f.input("09:00"))
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
}

func TestCreateAppointmentStorageFault(t *testing.T) {
	f := newFixture(t)
	f.repo.FailWith = errors.New("database is closed")

	_, err := NewCreateAppointment(f.repo, nil).WithClock(clock).Execute(context.Background(), f.input("09:00"))
	require.Error(t, err)
	assert.True(t, httperr.IsStorage(err))
}
