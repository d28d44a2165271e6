package dto

import (
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID          uint   `json:"id"`
	MemberID    uint   `json:"memberId"`
	TrainerID   uint   `json:"trainerId"`
	ServiceID   uint   `json:"serviceId"`
	GymCenterID uint   `json:"gymCenterId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`

	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`

	CreatedAt   time.Time  `json:"createdAt"`
	ConfirmedAt *time.Time `json:"confirmedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

func FromAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		MemberID:        ap.MemberID,
		TrainerID:       ap.TrainerID,
		ServiceID:       ap.ServiceID,
		GymCenterID:     ap.GymCenterID,
		Date:            domain.FormatDate(ap.Date),
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		DurationMinutes: ap.DurationMinutes,
		Price:           ap.Price,
		Status:          ap.Status,
		Notes:           ap.Notes,
		CreatedAt:       ap.CreatedAt,
		ConfirmedAt:     ap.ConfirmedAt,
		CancelledAt:     ap.CancelledAt,
		CompletedAt:     ap.CompletedAt,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}

type AvailabilityWindowDTO struct {
	ID        uint   `json:"id"`
	TrainerID uint   `json:"trainerId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Active    bool   `json:"active"`
}

func FromWindow(w *models.AvailabilityWindow) AvailabilityWindowDTO {
	return AvailabilityWindowDTO{
		ID:        w.ID,
		TrainerID: w.TrainerID,
		Date:      domain.FormatDate(w.Date),
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Active:    w.Active,
	}
}

func FromWindows(ws []models.AvailabilityWindow) []AvailabilityWindowDTO {
	out := make([]AvailabilityWindowDTO, 0, len(ws))
	for i := range ws {
		out = append(out, FromWindow(&ws[i]))
	}
	return out
}
