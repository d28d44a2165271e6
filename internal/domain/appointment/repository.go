package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// ListFilter narrows appointment listings. Zero values mean "any".
type ListFilter struct {
	MemberID  uint
	TrainerID uint
	From      time.Time
	To        time.Time
	Status    Status
}

type Statistics struct {
	Total     int64           `json:"total"`
	Pending   int64           `json:"pending"`
	Confirmed int64           `json:"confirmed"`
	Cancelled int64           `json:"cancelled"`
	Completed int64           `json:"completed"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Repository is the persistence boundary of the scheduler. Lookups of missing
// rows return ErrNotFound; other failures are httperr.StorageError.
type Repository interface {
	// Transaction runs fn against a repository bound to one database
	// transaction. Returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Reference data --------
	GetGymCenterByID(ctx context.Context, id uint) (*models.GymCenter, error)
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)
	GetTrainer(ctx context.Context, trainerID uint) (*models.Trainer, error)
	GetTrainerByUserID(ctx context.Context, userID uint) (*models.Trainer, error)
	TrainerOffersService(ctx context.Context, trainerID uint, serviceID uint) (bool, error)

	// LockTrainer takes a row lock on the trainer until the surrounding
	// transaction ends, serialising bookings for that trainer.
	LockTrainer(ctx context.Context, trainerID uint) error

	// -------- Availability --------
	ListActiveWindows(ctx context.Context, trainerID uint, date time.Time) ([]models.AvailabilityWindow, error)

	// ListBlockingAppointments returns the non-Cancelled appointments of a
	// trainer on a date, ordered by start time.
	ListBlockingAppointments(ctx context.Context, trainerID uint, date time.Time) ([]models.Appointment, error)

	HasOverlap(ctx context.Context, trainerID uint, date time.Time, start string, end string) (bool, error)

	// -------- Appointment --------
	// CreateAppointment returns ErrSlotTaken when the storage-level
	// uniqueness guard rejects the row.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointments(ctx context.Context, filter ListFilter) ([]models.Appointment, error)
	AppointmentStatistics(ctx context.Context, from time.Time, to time.Time) (*Statistics, error)
}
