package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
		StatusCompleted: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
	},
}

// ParseStatus accepts the canonical names case-insensitively.
func ParseStatus(s string) (Status, bool) {
	for _, st := range []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Blocking reports whether an appointment in this status holds its slot.
func (s Status) Blocking() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	if !transitions[from][to] {
		return ErrInvalidTransition
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
