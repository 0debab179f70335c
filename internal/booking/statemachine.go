package booking

import "github.com/iliyamo/restaurant-table-reservation/internal/model"

// transitions is the complete lifecycle graph.  A status missing
// from the map is terminal.  Every status change in the engine
// funnels through ValidateTransition; nothing else may decide
// what a reservation is allowed to become.
var transitions = map[model.ReservationStatus][]model.ReservationStatus{
    model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
    model.StatusConfirmed: {model.StatusSeated, model.StatusCancelled, model.StatusNoShow},
    model.StatusSeated:    {model.StatusCompleted, model.StatusNoShow},
}

// CanTransition reports whether the lifecycle allows moving a
// reservation from one status to another.
func CanTransition(from, to model.ReservationStatus) bool {
    for _, allowed := range transitions[from] {
        if allowed == to {
            return true
        }
    }
    return false
}

// Terminal reports whether a status admits no further changes.
func Terminal(status model.ReservationStatus) bool {
    return len(transitions[status]) == 0
}

// ValidateTransition returns nil when the change is allowed and a
// typed error otherwise: ValidationError for an unknown target
// status, InvalidTransitionError for a known but forbidden move.
func ValidateTransition(from, to model.ReservationStatus) error {
    if !to.Valid() {
        return &ValidationError{Field: "status", Reason: "unknown status " + string(to)}
    }
    if !CanTransition(from, to) {
        return &InvalidTransitionError{From: from, To: to}
    }
    return nil
}
