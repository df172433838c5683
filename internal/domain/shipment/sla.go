package shipment

import (
	"math"
	"time"
)

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SLADeadline returns ship date (date part) plus slaDays, or nil when either is missing.
// Zero SLA days means the carrier has no SLA configured.
func SLADeadline(shipDate *time.Time, slaDays int) *time.Time {
	if shipDate == nil || slaDays <= 0 {
		return nil
	}
	deadline := DateOf(*shipDate).AddDate(0, 0, slaDays)
	return &deadline
}

// ComputeSLAStatus evaluates the SLA rules in order. It only depends on its arguments.
func ComputeSLAStatus(state State, deadline, deliveryDate *time.Time, today time.Time) SLAStatus {
	switch state {
	case StateCancelled, StateDraft:
		return SLANA
	case StateDelivered:
		if deliveryDate != nil && deadline != nil {
			if !DateOf(*deliveryDate).After(*deadline) {
				return SLAOnTime
			}
			return SLAOverdue
		}
	case StateReturned:
		return SLAOverdue
	}

	if deadline == nil {
		return SLANA
	}

	day := DateOf(today)
	if day.After(*deadline) {
		return SLAOverdue
	}
	if !day.Before(deadline.AddDate(0, 0, -1)) {
		return SLAWarning
	}
	return SLAOnTime
}

// SLAStatus is the shipment's current SLA status as of today.
func (s *Shipment) SLAStatus(today time.Time) SLAStatus {
	return ComputeSLAStatus(s.State, s.SLADeadline, s.DeliveryDate, today)
}

// DaysOverdue is the number of whole days between the deadline and today, 0 if not overdue.
func (s *Shipment) DaysOverdue(today time.Time) int {
	if s.SLADeadline == nil {
		return 0
	}
	days := int(math.Round(DateOf(today).Sub(*s.SLADeadline).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
