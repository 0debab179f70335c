package booking

import (
    "context"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// SlotGenerator enumerates bookable start times for a date.  It
// is read-only and advisory: it takes no locks, so a listed slot
// may be gone by the time a booking for it arrives.  Allocation
// is the authority; this exists so callers can show guests a menu
// of times without hammering the allocator.
type SlotGenerator struct {
    store Store
    hours *HoursResolver
    pol   Policy
}

// NewSlotGenerator wires a generator over a store with the given
// policy.
func NewSlotGenerator(store Store, pol Policy) *SlotGenerator {
    return &SlotGenerator{store: store, hours: NewHoursResolver(store), pol: pol.withDefaults()}
}

// SlotStream walks the start-time grid lazily.  Each Next call
// scans forward from the cursor to the first start whose window
// fits the hours and can still be seated against the snapshot the
// stream was opened with.
type SlotStream struct {
    window   *Window
    tables   []model.Table
    checker  *ConflictChecker
    pol      Policy
    party    int
    duration int
    cursor   model.TimeOfDay
}

// Stream opens a lazy slot enumeration for the date.  A date with
// no effective hours yields a ClosedError; a malformed party size
// or duration a ValidationError.
func (g *SlotGenerator) Stream(ctx context.Context, date time.Time, partySize, durationMinutes int) (*SlotStream, error) {
    if durationMinutes == 0 {
        durationMinutes = g.pol.DefaultDurationMinutes
    }
    if partySize < 1 {
        return nil, &ValidationError{Field: "party_size", Reason: "must be at least 1"}
    }
    if durationMinutes < 1 {
        return nil, &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
    }
    date = model.DateOnly(date)

    w, err := g.hours.Resolve(ctx, date)
    if err != nil {
        return nil, err
    }
    if w == nil {
        return nil, &ClosedError{Date: date, Reason: "no operating hours for this date"}
    }
    tables, err := g.store.ActiveTables(ctx)
    if err != nil {
        return nil, err
    }
    occupied, err := g.store.OccupiedWindows(ctx, date, 0)
    if err != nil {
        return nil, err
    }
    return &SlotStream{
        window:   w,
        tables:   tables,
        checker:  NewConflictChecker(occupied),
        pol:      g.pol,
        party:    partySize,
        duration: durationMinutes,
        cursor:   w.Open,
    }, nil
}

// Next returns the next bookable start time.  The second result
// is false once the grid is exhausted.
func (s *SlotStream) Next() (model.TimeOfDay, bool) {
    step := s.pol.SlotGranularityMinutes
    for t := s.cursor; t <= s.window.LastSeating; t = t.Add(step) {
        // Window-end fit is monotone in t, so the first start
        // that runs past closing ends the whole grid.
        if t.Add(s.duration) > s.window.Close {
            break
        }
        if s.seatable(t) {
            s.cursor = t.Add(step)
            return t, true
        }
    }
    s.cursor = s.window.LastSeating.Add(1)
    return 0, false
}

// seatable reports whether at least one candidate is free for the
// window starting at t.
func (s *SlotStream) seatable(t model.TimeOfDay) bool {
    end := t.Add(s.duration)
    stream := NewCandidateStream(s.tables, s.party, nil, s.pol)
    for {
        cand, ok := stream.Next()
        if !ok {
            return false
        }
        if !s.checker.AnyBusy(cand.TableIDs, t, end) {
            return true
        }
    }
}

// Slots materialises the stream into a slice, in grid order.
func (g *SlotGenerator) Slots(ctx context.Context, date time.Time, partySize, durationMinutes int) ([]model.TimeOfDay, error) {
    stream, err := g.Stream(ctx, date, partySize, durationMinutes)
    if err != nil {
        return nil, err
    }
    var out []model.TimeOfDay
    for {
        t, ok := stream.Next()
        if !ok {
            return out, nil
        }
        out = append(out, t)
    }
}

// CheckSlot answers the point question "could this exact request
// be seated right now": hours validation plus a snapshot
// candidate scan, no locks.  Success means probably; allocation
// remains the authority.
func (g *SlotGenerator) CheckSlot(ctx context.Context, date time.Time, start model.TimeOfDay, partySize, durationMinutes int) error {
    if durationMinutes == 0 {
        durationMinutes = g.pol.DefaultDurationMinutes
    }
    if partySize < 1 {
        return &ValidationError{Field: "party_size", Reason: "must be at least 1"}
    }
    if durationMinutes < 1 {
        return &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
    }
    date = model.DateOnly(date)
    if _, err := g.hours.ValidateStart(ctx, date, start, durationMinutes); err != nil {
        return err
    }
    tables, err := g.store.ActiveTables(ctx)
    if err != nil {
        return err
    }
    occupied, err := g.store.OccupiedWindows(ctx, date, 0)
    if err != nil {
        return err
    }
    checker := NewConflictChecker(occupied)
    end := start.Add(durationMinutes)
    stream := NewCandidateStream(tables, partySize, nil, g.pol)
    for {
        cand, ok := stream.Next()
        if !ok {
            return &NoAvailabilityError{Date: date, StartTime: start, PartySize: partySize}
        }
        if !checker.AnyBusy(cand.TableIDs, start, end) {
            return nil
        }
    }
}
