package appointment

import "github.com/BruksfildServices01/gym-scheduler/internal/httperr"

const (
	CodeInvalidService    = "InvalidService"
	CodeNoAvailability    = "NoAvailability"
	CodeSlotTaken         = "SlotTaken"
	CodeNotFound          = "NotFound"
	CodeServiceNotOffered = "ServiceNotOffered"
	CodeInvalidTransition = "InvalidTransition"
	CodeInvalidTime       = "InvalidTime"
	CodeForbidden         = "Forbidden"
)

var (
	ErrInvalidService    = httperr.ErrBusiness(CodeInvalidService)
	ErrNoAvailability    = httperr.ErrBusiness(CodeNoAvailability)
	ErrSlotTaken         = httperr.ErrBusiness(CodeSlotTaken)
	ErrNotFound          = httperr.ErrBusiness(CodeNotFound)
	ErrServiceNotOffered = httperr.ErrBusiness(CodeServiceNotOffered)
	ErrInvalidTransition = httperr.ErrBusiness(CodeInvalidTransition)
	ErrInvalidTime       = httperr.ErrBusiness(CodeInvalidTime)
	ErrForbidden         = httperr.ErrBusiness(CodeForbidden)
)
