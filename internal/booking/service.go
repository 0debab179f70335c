package booking

import (
    "context"
    "errors"
    "sort"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// EventPublisher receives lifecycle notifications after the
// corresponding write has committed.  Implementations must not
// block the caller for long and must swallow their own delivery
// failures; a lost event never unwinds a seated party.
type EventPublisher interface {
    ReservationCreated(res *model.Reservation, tableIDs []uint64)
    ReservationStatusChanged(res *model.Reservation, previous model.ReservationStatus)
}

// Service is the engine facade handlers talk to.  It composes the
// allocator, the slot generator, the hours resolver and the state
// machine over one store and one policy.
type Service struct {
    store  Store
    pol    Policy
    alloc  *Allocator
    slots  *SlotGenerator
    hours  *HoursResolver
    events EventPublisher
}

// NewService wires a service.  events may be nil to run without
// notifications.
func NewService(store Store, pol Policy, events EventPublisher) *Service {
    pol = pol.withDefaults()
    return &Service{
        store:  store,
        pol:    pol,
        alloc:  NewAllocator(store, pol),
        slots:  NewSlotGenerator(store, pol),
        hours:  NewHoursResolver(store),
        events: events,
    }
}

// Policy returns the effective seating policy after defaulting.
func (s *Service) Policy() Policy { return s.pol }

// Hours exposes the resolver for callers that only need the
// effective window of a date.
func (s *Service) Hours() *HoursResolver { return s.hours }

// CheckAvailability lists the bookable start times for a party on
// a date, on the policy granularity grid.  Advisory: booking is
// what decides.
func (s *Service) CheckAvailability(ctx context.Context, date time.Time, partySize, durationMinutes int) ([]model.TimeOfDay, error) {
    return s.slots.Slots(ctx, date, partySize, durationMinutes)
}

// CheckSlot answers whether one specific start time could be
// seated right now.  nil means yes.
func (s *Service) CheckSlot(ctx context.Context, date time.Time, start model.TimeOfDay, partySize, durationMinutes int) error {
    return s.slots.CheckSlot(ctx, date, start, partySize, durationMinutes)
}

// CreateAndAssign books a reservation and seats it atomically.
// The returned candidate names the tables that were assigned.
func (s *Service) CreateAndAssign(ctx context.Context, req CreateRequest) (*model.Reservation, Candidate, error) {
    res, cand, err := s.alloc.Allocate(ctx, req)
    if err != nil {
        return nil, Candidate{}, err
    }
    if s.events != nil {
        s.events.ReservationCreated(res, cand.TableIDs)
    }
    return res, cand, nil
}

// GetReservation returns a reservation with its assignments.
func (s *Service) GetReservation(ctx context.Context, id uint64) (*model.Reservation, []model.TableAssignment, error) {
    res, err := s.store.ReservationByID(ctx, id)
    if err != nil {
        return nil, nil, err
    }
    if res == nil {
        return nil, nil, &NotFoundError{Entity: "reservation", ID: id}
    }
    asg, err := s.store.AssignmentsFor(ctx, id)
    if err != nil {
        return nil, nil, err
    }
    return res, asg, nil
}

// ListReservations returns reservations filtered by optional date
// and status.
func (s *Service) ListReservations(ctx context.Context, date *time.Time, status *model.ReservationStatus) ([]model.Reservation, error) {
    if status != nil && !status.Valid() {
        return nil, &ValidationError{Field: "status", Reason: "unknown status " + string(*status)}
    }
    if date != nil {
        d := model.DateOnly(*date)
        date = &d
    }
    return s.store.ListReservations(ctx, date, status)
}

// ChangeStatus drives the reservation lifecycle.  The transition
// check and the write happen under the reservation's table locks,
// so a transition into cancelled or no_show releases the tables
// atomically: the instant it commits, conflict checks stop
// counting the reservation.
func (s *Service) ChangeStatus(ctx context.Context, id uint64, to model.ReservationStatus) (*model.Reservation, error) {
    if !to.Valid() {
        return nil, &ValidationError{Field: "status", Reason: "unknown status " + string(to)}
    }
    res, err := s.store.ReservationByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if res == nil {
        return nil, &NotFoundError{Entity: "reservation", ID: id}
    }
    asg, err := s.store.AssignmentsFor(ctx, id)
    if err != nil {
        return nil, err
    }

    var updated *model.Reservation
    var previous model.ReservationStatus
    err = s.store.WithTables(ctx, assignmentTableIDs(asg), func(tx AllocTx) error {
        cur, err := tx.ReservationByID(id)
        if err != nil {
            return err
        }
        if cur == nil {
            return &NotFoundError{Entity: "reservation", ID: id}
        }
        if err := ValidateTransition(cur.Status, to); err != nil {
            return err
        }
        if err := tx.SetStatus(id, to); err != nil {
            return err
        }
        previous = cur.Status
        cur.Status = to
        updated = cur
        return nil
    })
    if err != nil {
        return nil, err
    }
    if s.events != nil {
        s.events.ReservationStatusChanged(updated, previous)
    }
    return updated, nil
}

// CancelReservation is ChangeStatus into cancelled.
func (s *Service) CancelReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
    return s.ChangeStatus(ctx, id, model.StatusCancelled)
}

// UpdateRequest carries the mutable reservation fields; nil
// pointers keep the current value.
type UpdateRequest struct {
    PartySize       *int
    Date            *time.Time
    StartTime       *model.TimeOfDay
    DurationMinutes *int
    SpecialRequests *string
}

// UpdateReservation re-validates and re-seats a reservation with
// changed parameters.  The old assignments are dropped and the
// new ones created in one atomic scope spanning the old and new
// tables, so no concurrent booking ever observes the party
// half-moved.  When nothing can seat the new shape the original
// assignment is left untouched and NoAvailabilityError is
// returned.
func (s *Service) UpdateReservation(ctx context.Context, id uint64, upd UpdateRequest) (*model.Reservation, Candidate, error) {
    res, err := s.store.ReservationByID(ctx, id)
    if err != nil {
        return nil, Candidate{}, err
    }
    if res == nil {
        return nil, Candidate{}, &NotFoundError{Entity: "reservation", ID: id}
    }
    if Terminal(res.Status) {
        return nil, Candidate{}, &ValidationError{Field: "status", Reason: "cannot modify a " + string(res.Status) + " reservation"}
    }

    target := *res
    if upd.PartySize != nil {
        target.PartySize = *upd.PartySize
    }
    if upd.Date != nil {
        target.Date = model.DateOnly(*upd.Date)
    }
    if upd.StartTime != nil {
        target.StartTime = *upd.StartTime
    }
    if upd.DurationMinutes != nil {
        target.DurationMinutes = *upd.DurationMinutes
    }
    if upd.SpecialRequests != nil {
        target.SpecialRequests = upd.SpecialRequests
    }
    if target.PartySize < 1 {
        return nil, Candidate{}, &ValidationError{Field: "party_size", Reason: "must be at least 1"}
    }
    if target.DurationMinutes < 1 {
        return nil, Candidate{}, &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
    }
    if !target.StartTime.InDay() {
        return nil, Candidate{}, &ValidationError{Field: "time", Reason: "start time must fall within the day"}
    }
    if _, err := s.hours.ValidateStart(ctx, target.Date, target.StartTime, target.DurationMinutes); err != nil {
        return nil, Candidate{}, err
    }

    asg, err := s.store.AssignmentsFor(ctx, id)
    if err != nil {
        return nil, Candidate{}, err
    }
    oldIDs := assignmentTableIDs(asg)

    tables, err := s.store.ActiveTables(ctx)
    if err != nil {
        return nil, Candidate{}, err
    }
    occupied, err := s.store.OccupiedWindows(ctx, target.Date, id)
    if err != nil {
        return nil, Candidate{}, err
    }
    snapshot := NewConflictChecker(occupied)
    end := target.StartTime.Add(target.DurationMinutes)

    stream := NewCandidateStream(tables, target.PartySize, nil, s.pol)
    busy := make(map[uint64]bool)
    for {
        if err := ctx.Err(); err != nil {
            return nil, Candidate{}, err
        }
        cand, ok := stream.Next()
        if !ok {
            break
        }
        if anyIn(cand.TableIDs, busy) {
            continue
        }
        if snapshot.AnyBusy(cand.TableIDs, target.StartTime, end) {
            continue
        }

        var lostTo uint64
        attempt := target
        err := s.store.WithTables(ctx, unionIDs(oldIDs, cand.TableIDs), func(tx AllocTx) error {
            cur, err := tx.ReservationByID(id)
            if err != nil {
                return err
            }
            if cur == nil {
                return &NotFoundError{Entity: "reservation", ID: id}
            }
            if Terminal(cur.Status) {
                return &ValidationError{Field: "status", Reason: "cannot modify a " + string(cur.Status) + " reservation"}
            }
            for _, tid := range cand.TableIDs {
                taken, err := tx.Overlaps(tid, attempt.Date, attempt.StartTime, end, id)
                if err != nil {
                    return err
                }
                if taken {
                    lostTo = tid
                    return ErrCandidateTaken
                }
            }
            if err := tx.RemoveAssignments(id); err != nil {
                return err
            }
            if err := tx.AddAssignments(id, cand.TableIDs); err != nil {
                return err
            }
            attempt.Status = cur.Status
            return tx.UpdateReservation(&attempt)
        })
        if err == nil {
            return &attempt, cand, nil
        }
        if errors.Is(err, ErrCandidateTaken) {
            if lostTo != 0 {
                busy[lostTo] = true
            }
            continue
        }
        return nil, Candidate{}, err
    }
    return nil, Candidate{}, &NoAvailabilityError{
        Date:      target.Date,
        StartTime: target.StartTime,
        PartySize: target.PartySize,
    }
}

// DeleteReservation removes the reservation and its assignment
// rows in one atomic unit.  The cascade is explicit: assignments
// go first, then the row, inside the table scope, so a concurrent
// allocation never sees assignments of a vanished reservation.
func (s *Service) DeleteReservation(ctx context.Context, id uint64) error {
    res, err := s.store.ReservationByID(ctx, id)
    if err != nil {
        return err
    }
    if res == nil {
        return &NotFoundError{Entity: "reservation", ID: id}
    }
    asg, err := s.store.AssignmentsFor(ctx, id)
    if err != nil {
        return err
    }
    return s.store.WithTables(ctx, assignmentTableIDs(asg), func(tx AllocTx) error {
        cur, err := tx.ReservationByID(id)
        if err != nil {
            return err
        }
        if cur == nil {
            return &NotFoundError{Entity: "reservation", ID: id}
        }
        if err := tx.RemoveAssignments(id); err != nil {
            return err
        }
        return tx.DeleteReservation(id)
    })
}

// assignmentTableIDs extracts the table IDs of assignment rows in
// ascending order.
func assignmentTableIDs(asg []model.TableAssignment) []uint64 {
    ids := make([]uint64, 0, len(asg))
    for _, a := range asg {
        ids = append(ids, a.TableID)
    }
    sortIDs(ids)
    return ids
}

// sortIDs sorts a table-ID list ascending, the order every lock
// acquisition in the engine uses.
func sortIDs(ids []uint64) {
    sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

// unionIDs merges two ID sets into one ascending list.
func unionIDs(a, b []uint64) []uint64 {
    seen := make(map[uint64]bool, len(a)+len(b))
    out := make([]uint64, 0, len(a)+len(b))
    for _, id := range a {
        if !seen[id] {
            seen[id] = true
            out = append(out, id)
        }
    }
    for _, id := range b {
        if !seen[id] {
            seen[id] = true
            out = append(out, id)
        }
    }
    sortIDs(out)
    return out
}
