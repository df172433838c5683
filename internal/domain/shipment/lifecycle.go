package shipment

import "time"

// Action is a user or system intent that may move a shipment to another state.
type Action string

const (
	ActionConfirm       Action = "confirm"
	ActionCancel        Action = "cancel"
	ActionMarkInTransit Action = "mark_in_transit"
	ActionMarkDelivered Action = "mark_delivered"
	ActionMarkReturned  Action = "mark_returned"
	ActionResetToDraft  Action = "reset_to_draft"
)

type transition struct {
	from []State
	to   State
}

// State machine for shipment actions. Actions requested from any other state are no-ops.
// Incident has no action; only carrier tracking moves a shipment there.
var transitions = map[Action]transition{
	ActionConfirm:       {from: []State{StateDraft}, to: StateConfirmed},
	ActionCancel:        {from: []State{StateDraft, StateConfirmed}, to: StateCancelled},
	ActionMarkInTransit: {from: []State{StateConfirmed}, to: StateInTransit},
	ActionMarkDelivered: {from: []State{StateConfirmed, StateInTransit}, to: StateDelivered},
	ActionMarkReturned:  {from: []State{StateInTransit, StateDelivered}, to: StateReturned},
	ActionResetToDraft:  {from: []State{StateCancelled}, to: StateDraft},
}

// CanApply reports whether action is valid from the shipment's current state.
func (s *Shipment) CanApply(action Action) bool {
	t, ok := transitions[action]
	if !ok {
		return false
	}
	for _, from := range t.from {
		if s.State == from {
			return true
		}
	}
	return false
}

// Apply performs action if the current state allows it and stamps the dates the transition
// owns. It returns false, leaving the shipment untouched, when the action does not apply.
func (s *Shipment) Apply(action Action, now time.Time) bool {
	if !s.CanApply(action) {
		return false
	}

	s.State = transitions[action].to
	switch action {
	case ActionConfirm:
		s.ShipDate = &now
		s.ApplySLA(s.SLADays)
	case ActionMarkDelivered:
		s.DeliveryDate = &now
	}
	s.UpdatedAt = now
	return true
}

// Trackable reports whether carrier tracking may still touch the shipment.
func (s *Shipment) Trackable() bool {
	switch s.State {
	case StateDraft, StateCancelled, StateReturned:
		return false
	}
	return true
}

// ApplyTrackedState moves the shipment to the coarse state reported by the carrier.
// Cancelled and returned shipments never change; a delivered shipment may only become returned.
// Unknown or unchanged states are ignored.
func (s *Shipment) ApplyTrackedState(target State, now time.Time) bool {
	if target == "" || target == s.State || !target.Valid() {
		return false
	}

	if !s.Trackable() {
		return false
	}
	if s.State == StateDelivered && target != StateReturned {
		return false
	}

	switch target {
	case StateDelivered:
		if s.DeliveryDate == nil {
			s.DeliveryDate = &now
		}
	case StateDraft, StateCancelled:
		return false
	}

	s.State = target
	s.UpdatedAt = now
	return true
}

// AllowedActions lists the actions that would change the shipment from its current state.
func (s *Shipment) AllowedActions() []Action {
	var out []Action
	for _, a := range []Action{
		ActionConfirm, ActionCancel, ActionMarkInTransit,
		ActionMarkDelivered, ActionMarkReturned, ActionResetToDraft,
	} {
		if s.CanApply(a) {
			out = append(out, a)
		}
	}
	return out
}
