package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type memorySink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memorySink) Record(ctx context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (f *fixture) booked(t *testing.T, status domain.Status) models.Appointment {
	t.Helper()
	return f.repo.AddAppointment(models.Appointment{
		MemberID:    77,
		TrainerID:   f.trainer.ID,
		ServiceID:   f.service.ID,
		GymCenterID: f.gym.ID,
		Date:        f.day,
		StartTime:   "09:00",
		EndTime:     "09:30",
		Status:      string(status),
	})
}

func TestSetStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.Status
		stamp    func(*models.Appointment) *time.Time
	}{
		{domain.StatusPending, domain.StatusConfirmed, func(a *models.Appointment) *time.Time { return a.ConfirmedAt }},
		{domain.StatusPending, domain.StatusCancelled, func(a *models.Appointment) *time.Time { return a.CancelledAt }},
		{domain.StatusPending, domain.StatusCompleted, func(a *models.Appointment) *time.Time { return a.CompletedAt }},
		{domain.StatusConfirmed, domain.StatusCancelled, func(a *models.Appointment) *time.Time { return a.CancelledAt }},
		{domain.StatusConfirmed, domain.StatusCompleted, func(a *models.Appointment) *time.Time { return a.CompletedAt }},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			f := newFixture(t)
			ap := f.booked(t, tc.from)

			got, err := NewSetAppointmentStatus(f.repo, nil).WithClock(clock).Execute(context.Background(), SetStatusInput{
				AppointmentID: ap.ID,
				NewStatus:     tc.to,
				ActorRole:     models.RoleAdmin,
				ActorID:       1,
			})
			require.NoError(t, err)
			assert.Equal(t, string(tc.to), got.Status)
			require.NotNil(t, tc.stamp(got))
			assert.Equal(t, fixedNow, *tc.stamp(got))

			stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
			require.NoError(t, err)
			assert.Equal(t, string(tc.to), stored.Status)
		})
	}
}

func TestSetStatusIllegalTransitionLeavesRowUnchanged(t *testing.T) {
	for _, from := range []domain.Status{domain.StatusCancelled, domain.StatusCompleted} {
		for _, to := range []domain.Status{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted} {
			f := newFixture(t)
			ap := f.booked(t, from)

			_, err := NewSetAppointmentStatus(f.repo, nil).Execute(context.Background(), SetStatusInput{
				AppointmentID: ap.ID, NewStatus: to, ActorRole: models.RoleAdmin,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", from, to)

			stored, _ := f.repo.GetAppointment(context.Background(), ap.ID)
			assert.Equal(t, ap, *stored)
		}
	}

	f := newFixture(t)
	ap := f.booked(t, domain.StatusConfirmed)
	_, err := NewSetAppointmentStatus(f.repo, nil).Execute(context.Background(), SetStatusInput{
		AppointmentID: ap.ID, NewStatus: domain.StatusPending, ActorRole: models.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSetStatusAuthorization(t *testing.T) {
	f := newFixture(t)
	ap := f.booked(t, domain.StatusPending)
	uc := NewSetAppointmentStatus(f.repo, nil).WithClock(clock)
	ctx := context.Background()

	_, err := uc.Execute(ctx, SetStatusInput{AppointmentID: ap.ID, NewStatus: domain.StatusConfirmed, ActorRole: models.RoleMember, ActorID: 77})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Execute(ctx, SetStatusInput{AppointmentID: ap.ID, NewStatus: domain.StatusConfirmed, ActorRole: models.RoleTrainer, ActorID: 12345})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Execute(ctx, SetStatusInput{AppointmentID: 9999, NewStatus: domain.StatusConfirmed, ActorRole: models.RoleTrainer, ActorID: f.trainer.UserID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Execute(ctx, SetStatusInput{AppointmentID: ap.ID, NewStatus: domain.StatusConfirmed, ActorRole: models.RoleTrainer, ActorID: f.trainer.UserID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
}

func TestSetStatusDispatchesAuditEvent(t *testing.T) {
	f := newFixture(t)
	ap := f.booked(t, domain.StatusPending)
	sink := &memorySink{}
	dispatcher := audit.NewDispatcher(sink)

	_, err := NewSetAppointmentStatus(f.repo, dispatcher).WithClock(clock).Execute(context.Background(), SetStatusInput{
		AppointmentID: ap.ID, NewStatus: domain.StatusCancelled, ActorRole: models.RoleAdmin, ActorID: 3,
	})
	require.NoError(t, err)
	dispatcher.Close()

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	assert.Equal(t, "appointment_status_changed", ev.Action)
	assert.Equal(t, ap.ID, *ev.EntityID)
	assert.Equal(t, map[string]string{"from": "Pending", "to": "Cancelled"}, ev.Metadata)
}
