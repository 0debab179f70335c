package booking

import (
    "context"
    "errors"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// CreateRequest is a booking attempt as the allocator sees it:
// the customer already resolved to an ID, the date normalised,
// the duration possibly left at zero to take the policy default.
type CreateRequest struct {
    CustomerID      uint64
    PartySize       int
    Date            time.Time
    StartTime       model.TimeOfDay
    DurationMinutes int
    SpecialRequests *string
}

// Allocator turns booking requests into committed reservations.
// It validates, resolves hours, walks the candidate stream and
// commits the first candidate whose conflict re-check holds under
// lock.  A candidate lost to a concurrent booking is skipped, not
// surfaced; only exhausting every candidate is an error.
type Allocator struct {
    store Store
    hours *HoursResolver
    pol   Policy
}

// NewAllocator wires an allocator over a store with the given
// policy.
func NewAllocator(store Store, pol Policy) *Allocator {
    return &Allocator{store: store, hours: NewHoursResolver(store), pol: pol.withDefaults()}
}

// normalize fills the duration default and strips the clock from
// the date.  Validation failures are reported before any lock or
// transaction is touched.
func (a *Allocator) normalize(req *CreateRequest) error {
    if req.DurationMinutes == 0 {
        req.DurationMinutes = a.pol.DefaultDurationMinutes
    }
    if req.PartySize < 1 {
        return &ValidationError{Field: "party_size", Reason: "must be at least 1"}
    }
    if req.DurationMinutes < 1 {
        return &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
    }
    if req.Date.IsZero() {
        return &ValidationError{Field: "date", Reason: "missing reservation date"}
    }
    if !req.StartTime.InDay() {
        return &ValidationError{Field: "time", Reason: "start time must fall within the day"}
    }
    req.Date = model.DateOnly(req.Date)
    return nil
}

// Allocate books the request.  On success it returns the created
// reservation (status pending) together with the candidate that
// was seated, whose table numbers are ready for the response.
func (a *Allocator) Allocate(ctx context.Context, req CreateRequest) (*model.Reservation, Candidate, error) {
    if err := a.normalize(&req); err != nil {
        return nil, Candidate{}, err
    }
    customer, err := a.store.CustomerByID(ctx, req.CustomerID)
    if err != nil {
        return nil, Candidate{}, err
    }
    if customer == nil {
        return nil, Candidate{}, &NotFoundError{Entity: "customer", ID: req.CustomerID}
    }
    if _, err := a.hours.ValidateStart(ctx, req.Date, req.StartTime, req.DurationMinutes); err != nil {
        return nil, Candidate{}, err
    }

    tables, err := a.store.ActiveTables(ctx)
    if err != nil {
        return nil, Candidate{}, err
    }
    occupied, err := a.store.OccupiedWindows(ctx, req.Date, 0)
    if err != nil {
        return nil, Candidate{}, err
    }
    snapshot := NewConflictChecker(occupied)
    end := req.StartTime.Add(req.DurationMinutes)

    stream := NewCandidateStream(tables, req.PartySize, nil, a.pol)
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
        // Advisory prune against the snapshot; the authoritative
        // re-check happens under lock below.
        if snapshot.AnyBusy(cand.TableIDs, req.StartTime, end) {
            continue
        }

        res := &model.Reservation{
            CustomerID:      req.CustomerID,
            PartySize:       req.PartySize,
            Date:            req.Date,
            StartTime:       req.StartTime,
            DurationMinutes: req.DurationMinutes,
            Status:          model.StatusPending,
            SpecialRequests: req.SpecialRequests,
        }
        var lostTo uint64
        err := a.store.WithTables(ctx, cand.TableIDs, func(tx AllocTx) error {
            for _, id := range cand.TableIDs {
                taken, err := tx.Overlaps(id, req.Date, req.StartTime, end, 0)
                if err != nil {
                    return err
                }
                if taken {
                    lostTo = id
                    return ErrCandidateTaken
                }
            }
            if err := tx.CreateReservation(res); err != nil {
                return err
            }
            return tx.AddAssignments(res.ID, cand.TableIDs)
        })
        if err == nil {
            return res, cand, nil
        }
        if errors.Is(err, ErrCandidateTaken) {
            // Lost the race for one table; skip every later
            // candidate containing it instead of re-locking.
            if lostTo != 0 {
                busy[lostTo] = true
            }
            continue
        }
        return nil, Candidate{}, err
    }
    return nil, Candidate{}, &NoAvailabilityError{
        Date:      req.Date,
        StartTime: req.StartTime,
        PartySize: req.PartySize,
    }
}

// anyIn reports whether any listed ID is in the set.
func anyIn(ids []uint64, set map[uint64]bool) bool {
    for _, id := range ids {
        if set[id] {
            return true
        }
    }
    return false
}
