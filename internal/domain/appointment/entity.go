package appointment

import (
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the requested status and stamps the matching
// timestamp. ap is left untouched when the move is not allowed.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

// CanChangeStatus checks the actor against the appointment owner. trainerUserID
// is the identity subject of the trainer the appointment belongs to.
func CanChangeStatus(role models.Role, actorID uint, trainerUserID uint) error {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleTrainer:
		if actorID == trainerUserID {
			return nil
		}
	}
	return ErrForbidden
}
