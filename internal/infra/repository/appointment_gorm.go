package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/httperr"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"

	// SlotIndexName is the partial unique index guarding
	// (trainer_id, date, start_time) for non-Cancelled appointments.
	SlotIndexName = "ux_appointments_trainer_slot"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
	if err == nil {
		return nil
	}
	if httperr.CodeOf(err) != "" || httperr.IsStorage(err) {
		return err
	}
	if isSlotConflict(err) {
		return domain.ErrSlotTaken
	}
	return httperr.Storage("transaction", err)
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *AppointmentGormRepository) GetGymCenterByID(
	ctx context.Context,
	id uint,
) (*models.GymCenter, error) {

	var gym models.GymCenter
	if err := r.db.WithContext(ctx).First(&gym, id).Error; err != nil {
		return nil, translate("get gym center", err)
	}
	return &gym, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, translate("get service", err)
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetTrainer(
	ctx context.Context,
	trainerID uint,
) (*models.Trainer, error) {

	var trainer models.Trainer
	if err := r.db.WithContext(ctx).First(&trainer, trainerID).Error; err != nil {
		return nil, translate("get trainer", err)
	}
	return &trainer, nil
}

func (r *AppointmentGormRepository) GetTrainerByUserID(
	ctx context.Context,
	userID uint,
) (*models.Trainer, error) {

	var trainer models.Trainer
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&trainer).Error; err != nil {
		return nil, translate("get trainer by user", err)
	}
	return &trainer, nil
}

func (r *AppointmentGormRepository) TrainerOffersService(
	ctx context.Context,
	trainerID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("trainer_services").
		Where("trainer_id = ? AND service_id = ?", trainerID, serviceID).
		Count(&count).Error; err != nil {
		return false, httperr.Storage("trainer offers service", err)
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) LockTrainer(
	ctx context.Context,
	trainerID uint,
) error {

	var trainer models.Trainer
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&trainer, trainerID).Error; err != nil {
		return translate("lock trainer", err)
	}
	return nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveWindows(
	ctx context.Context,
	trainerID uint,
	date time.Time,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("trainer_id = ? AND date = ? AND active = ?", trainerID, domain.FormatDate(date), true).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, httperr.Storage("list windows", err)
	}
	return windows, nil
}

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	trainerID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"trainer_id = ? AND date = ? AND status <> ?",
			trainerID, domain.FormatDate(date), string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Storage("list blocking appointments", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) HasOverlap(
	ctx context.Context,
	trainerID uint,
	date time.Time,
	start string,
	end string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"trainer_id = ? AND date = ? AND status <> ? AND start_time < ? AND end_time > ?",
			trainerID, domain.FormatDate(date), string(domain.StatusCancelled), end, start,
		).
		Count(&count).Error; err != nil {
		return false, httperr.Storage("overlap check", err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	// A savepoint keeps the surrounding transaction usable when the unique
	// index rejects the row.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ap).Error
	})
	if err == nil {
		return nil
	}
	if isSlotConflict(err) {
		return domain.ErrSlotTaken
	}
	return httperr.Storage("insert appointment", err)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, translate("get appointment", err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, translate("get appointment", err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).
		Model(ap).
		Select("status", "confirmed_at", "cancelled_at", "completed_at", "updated_at").
		Updates(ap).Error; err != nil {
		return httperr.Storage("update appointment", err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.MemberID != 0 {
		q = q.Where("member_id = ?", f.MemberID)
	}
	if f.TrainerID != 0 {
		q = q.Where("trainer_id = ?", f.TrainerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", domain.FormatDate(f.From))
	}
	if !f.To.IsZero() {
		q = q.Where("date <= ?", domain.FormatDate(f.To))
	}

	var apps []models.Appointment
	if err := q.
		Order("date ASC").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Storage("list appointments", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) AppointmentStatistics(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (*domain.Statistics, error) {

	type row struct {
		Status  string
		Count   int64
		Revenue decimal.Decimal
	}

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(price), 0) AS revenue")

	if !from.IsZero() {
		q = q.Where("date >= ?", domain.FormatDate(from))
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", domain.FormatDate(to))
	}

	var rows []row
	if err := q.Group("status").Scan(&rows).Error; err != nil {
		return nil, httperr.Storage("appointment statistics", err)
	}

	st := &domain.Statistics{Revenue: decimal.Zero}
	for _, rw := range rows {
		st.Total += rw.Count
		switch domain.Status(rw.Status) {
		case domain.StatusPending:
			st.Pending = rw.Count
		case domain.StatusConfirmed:
			st.Confirmed = rw.Count
		case domain.StatusCancelled:
			st.Cancelled = rw.Count
		case domain.StatusCompleted:
			st.Completed = rw.Count
			st.Revenue = rw.Revenue
		}
	}
	return st, nil
}

// --------------------------------------------------
// Errors
// --------------------------------------------------

func translate(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return httperr.Storage(op, err)
}

func isSlotConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return pgErr.ConstraintName == SlotIndexName
	case pgExclusionViolation:
		return true
	}
	return false
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation on
// the named index or constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		pgErr.ConstraintName == constraint
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
