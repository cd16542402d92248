package booking

import "github.com/BruksfildServices01/salon-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// transitions lists every edge a merchant may take. Anything else is rejected.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {StatusConfirmed},
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrConflict("invalid_transition")
}

// InitialStatus is pending unless the booking arrives with a settled payment.
func InitialStatus(paid bool) Status {
	if paid {
		return StatusConfirmed
	}
	return StatusPending
}
