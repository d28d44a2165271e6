// Package appointmenttest provides an in-memory appointment.Repository for
// tests. Transactions are serialised by one mutex, and the same
// (trainer, date, start) uniqueness guard as the database schema applies.
package appointmenttest

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type Memory struct {
	txMu sync.Mutex
	mu   sync.Mutex

	gyms         map[uint]models.GymCenter
	services     map[uint]models.Service
	trainers     map[uint]models.Trainer
	offers       map[[2]uint]bool
	windows      []models.AvailabilityWindow
	appointments []models.Appointment
	nextID       uint

	// FailWith, when set, is returned by every call as a storage fault.
	FailWith error

	// BeforeCreate runs inside CreateAppointment before the uniqueness
	// check; tests use it to interleave competing bookings.
	BeforeCreate func()
}

func NewMemory() *Memory {
	return &Memory{
		gyms:     map[uint]models.GymCenter{},
		services: map[uint]models.Service{},
		trainers: map[uint]models.Trainer{},
		offers:   map[[2]uint]bool{},
		nextID:   1,
	}
}

// -------- seeding --------

func (m *Memory) id() uint {
	id := m.nextID
	m.nextID++
	return id
}

func (m *Memory) AddGym(g models.GymCenter) models.GymCenter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID == 0 {
		g.ID = m.id()
	}
	m.gyms[g.ID] = g
	return g
}

func (m *Memory) AddService(s models.Service) models.Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == 0 {
		s.ID = m.id()
	}
	m.services[s.ID] = s
	return s
}

func (m *Memory) AddTrainer(tr models.Trainer, serviceIDs ...uint) models.Trainer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tr.ID == 0 {
		tr.ID = m.id()
	}
	m.trainers[tr.ID] = tr
	for _, sid := range serviceIDs {
		m.offers[[2]uint{tr.ID, sid}] = true
	}
	return tr
}

func (m *Memory) AddWindow(w models.AvailabilityWindow) models.AvailabilityWindow {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.ID == 0 {
		w.ID = m.id()
	}
	m.windows = append(m.windows, w)
	return w
}

func (m *Memory) AddAppointment(ap models.Appointment) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = m.id()
	}
	m.appointments = append(m.appointments, ap)
	return ap
}

// Appointments returns a snapshot of every stored appointment.
func (m *Memory) Appointments() []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.appointments)
}

// -------- domain.Repository --------

type txView struct {
	*Memory
}

func (v txView) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return fn(v)
}

func (m *Memory) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	if m.FailWith != nil {
		return httperr.Storage("begin", m.FailWith)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := slices.Clone(m.appointments)
	m.mu.Unlock()

	if err := fn(txView{m}); err != nil {
		m.mu.Lock()
		m.appointments = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *Memory) fail(op string) error {
	if m.FailWith != nil {
		return httperr.Storage(op, m.FailWith)
	}
	return nil
}

func (m *Memory) GetGymCenterByID(ctx context.Context, id uint) (*models.GymCenter, error) {
	if err := m.fail("get gym"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.gyms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &g, nil
}

func (m *Memory) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	if err := m.fail("get service"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[serviceID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *Memory) GetTrainer(ctx context.Context, trainerID uint) (*models.Trainer, error) {
	if err := m.fail("get trainer"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tr, ok := m.trainers[trainerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tr, nil
}

func (m *Memory) GetTrainerByUserID(ctx context.Context, userID uint) (*models.Trainer, error) {
	if err := m.fail("get trainer"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tr := range m.trainers {
		if tr.UserID == userID {
			return &tr, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *Memory) TrainerOffersService(ctx context.Context, trainerID uint, serviceID uint) (bool, error) {
	if err := m.fail("trainer offers"); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.offers[[2]uint{trainerID, serviceID}], nil
}

func (m *Memory) LockTrainer(ctx context.Context, trainerID uint) error {
	_, err := m.GetTrainer(ctx, trainerID)
	return err
}

func (m *Memory) ListActiveWindows(ctx context.Context, trainerID uint, date time.Time) ([]models.AvailabilityWindow, error) {
	if err := m.fail("list windows"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range m.windows {
		if w.TrainerID == trainerID && w.Active && sameDay(w.Date, date) {
			out = append(out, w)
		}
	}
	slices.SortFunc(out, func(a, b models.AvailabilityWindow) int { return cmp.Compare(a.StartTime, b.StartTime) })
	return out, nil
}

func (m *Memory) ListBlockingAppointments(ctx context.Context, trainerID uint, date time.Time) ([]models.Appointment, error) {
	if err := m.fail("list appointments"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appointments {
		if ap.TrainerID == trainerID && sameDay(ap.Date, date) && domain.Status(ap.Status).Blocking() {
			out = append(out, ap)
		}
	}
	slices.SortFunc(out, func(a, b models.Appointment) int { return cmp.Compare(a.StartTime, b.StartTime) })
	return out, nil
}

func (m *Memory) HasOverlap(ctx context.Context, trainerID uint, date time.Time, start string, end string) (bool, error) {
	aps, err := m.ListBlockingAppointments(ctx, trainerID, date)
	if err != nil {
		return false, err
	}
	for _, ap := range aps {
		if ap.StartTime < end && ap.EndTime > start {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := m.fail("insert appointment"); err != nil {
		return err
	}
	if m.BeforeCreate != nil {
		m.BeforeCreate()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.appointments {
		if other.TrainerID == ap.TrainerID && sameDay(other.Date, ap.Date) &&
			other.StartTime == ap.StartTime && domain.Status(other.Status).Blocking() {
			return domain.ErrSlotTaken
		}
	}
	ap.ID = m.id()
	now := time.Now()
	if ap.CreatedAt.IsZero() {
		ap.CreatedAt = now
	}
	ap.UpdatedAt = now
	m.appointments = append(m.appointments, *ap)
	return nil
}

func (m *Memory) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if err := m.fail("get appointment"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ap := range m.appointments {
		if ap.ID == id {
			cp := ap
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *Memory) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.GetAppointment(ctx, id)
}

func (m *Memory) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := m.fail("update appointment"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID == ap.ID {
			ap.UpdatedAt = time.Now()
			m.appointments[i] = *ap
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *Memory) ListAppointments(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	if err := m.fail("list appointments"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, ap := range m.appointments {
		if f.MemberID != 0 && ap.MemberID != f.MemberID {
			continue
		}
		if f.TrainerID != 0 && ap.TrainerID != f.TrainerID {
			continue
		}
		if f.Status != "" && ap.Status != string(f.Status) {
			continue
		}
		if !f.From.IsZero() && ap.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && ap.Date.After(f.To) {
			continue
		}
		out = append(out, ap)
	}
	slices.SortFunc(out, func(a, b models.Appointment) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.StartTime, b.StartTime)
	})
	return out, nil
}

func (m *Memory) AppointmentStatistics(ctx context.Context, from time.Time, to time.Time) (*domain.Statistics, error) {
	aps, err := m.ListAppointments(ctx, domain.ListFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	st := &domain.Statistics{Revenue: decimal.Zero}
	for _, ap := range aps {
		st.Total++
		switch domain.Status(ap.Status) {
		case domain.StatusPending:
			st.Pending++
		case domain.StatusConfirmed:
			st.Confirmed++
		case domain.StatusCancelled:
			st.Cancelled++
		case domain.StatusCompleted:
			st.Completed++
			st.Revenue = st.Revenue.Add(ap.Price)
		}
	}
	return st, nil
}

func sameDay(a, b time.Time) bool {
	return domain.FormatDate(a) == domain.FormatDate(b)
}

var _ domain.Repository = (*Memory)(nil)
