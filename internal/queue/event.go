// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit trail.
package queue

// Event kinds carried in the Type field of ReservationEvent.
const (
    EventReservationCreated       = "reservation.created"
    EventReservationStatusChanged = "reservation.status_changed"
)

// ReservationEvent is published after a reservation is created or moves
// through its lifecycle. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.  PreviousStatus is empty for creation events.
type ReservationEvent struct {
    Type            string   `json:"type"`
    ReservationID   uint64   `json:"reservation_id"`
    CustomerID      uint64   `json:"customer_id"`
    PartySize       int      `json:"party_size"`
    Date            string   `json:"date"`
    StartTime       string   `json:"start_time"`
    DurationMinutes int      `json:"duration_minutes"`
    Status          string   `json:"status"`
    PreviousStatus  string   `json:"previous_status,omitempty"`
    TableIDs        []uint64 `json:"table_ids,omitempty"`
    OccurredAt      string   `json:"occurred_at"`
}
