package handlers

import (
	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
)

// writeAudit queues an audit event for an admin or trainer mutation.
func writeAudit(
	d *audit.Dispatcher,
	gymCenterID uint,
	userID uint,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {
	d.Dispatch(audit.Event{
		GymCenterID: gymCenterID,
		UserID:      &userID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Metadata:    meta,
	})
}
