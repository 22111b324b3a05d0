package booking

import "github.com/BruksfildServices01/salon-manager/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSuccess    Status = "success"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {StatusSuccess},
	StatusSuccess:    nil,
	StatusCancelled:  nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.ErrValidation("invalid_status", "unknown booking status "+s)
	}
	return st, nil
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsEditable reports whether schedule, services and staff may still change.
func (s Status) IsEditable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsRevenueCountable reports whether the booking counts towards revenue.
func (s Status) IsRevenueCountable() bool {
	return s == StatusCompleted || s == StatusSuccess
}

// IsActive reports whether the booking still occupies its employee's time.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusInProgress
}

func (s Status) Next() []Status {
	return transitions[s]
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	for _, next := range from.Next() {
		if next == to {
			return nil
		}
	}
	if from.IsTerminal() {
		return httperr.ErrInvalidTransition(string(from), string(to))
	}
	allowed := make([]string, 0, len(from.Next()))
	for _, next := range from.Next() {
		allowed = append(allowed, string(next))
	}
	return httperr.ErrInvalidTransition(string(from), string(to), allowed...)
}

func CanDelete(current Status) error {
	if current != StatusPending && current != StatusCancelled {
		return httperr.ErrInvalidState("booking_not_deletable", "only pending or cancelled bookings can be deleted")
	}
	return nil
}

func CanEdit(current Status) error {
	if !current.IsEditable() {
		return httperr.ErrInvalidState("booking_not_editable", "only pending or confirmed bookings can be changed")
	}
	return nil
}

// InitialStatus is confirmed for bookings entered by staff and pending
// for bookings requested by customers.
func InitialStatus(createdByStaff bool) Status {
	if createdByStaff {
		return StatusConfirmed
	}
	return StatusPending
}

var (
	RevenueStatuses = []string{string(StatusCompleted), string(StatusSuccess)}
	ActiveStatuses  = []string{string(StatusPending), string(StatusConfirmed), string(StatusInProgress)}
)
