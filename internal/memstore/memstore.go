// Package memstore is an in-memory implementation of the booking
// store.  It backs the engine tests and works as a real store for
// ephemeral single-process deployments.  Concurrency follows the
// same discipline as the SQL store: one exclusive lock per table,
// always acquired in ascending table-ID order, held across the
// conflict re-check and the write.  Writes inside a table scope
// are staged and applied in one step when the callback returns,
// so readers never observe a half-applied booking.
package memstore

import (
    "context"
    "sort"
    "sync"
    "sync/atomic"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/booking"
    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Store holds every entity in maps guarded by one RWMutex.  The
// per-table allocation locks live beside the data; they serialise
// check-then-write sequences, while mu only makes individual map
// operations safe.
type Store struct {
    mu sync.RWMutex

    tables       map[uint64]*model.Table
    chairs       map[uint64]*model.Chair
    customers    map[uint64]*model.Customer
    weekly       map[time.Weekday]*model.OperatingHours
    special      map[time.Time]*model.SpecialHours
    reservations map[uint64]*model.Reservation
    assignments  map[uint64]*model.TableAssignment

    lockMu     sync.Mutex
    tableLocks map[uint64]*sync.Mutex

    tableSeq    uint64
    chairSeq    uint64
    customerSeq uint64
    hoursSeq    uint64
    specialSeq  uint64
    resSeq      uint64
    asgSeq      uint64
}

// New returns an empty store.
func New() *Store {
    return &Store{
        tables:       make(map[uint64]*model.Table),
        chairs:       make(map[uint64]*model.Chair),
        customers:    make(map[uint64]*model.Customer),
        weekly:       make(map[time.Weekday]*model.OperatingHours),
        special:      make(map[time.Time]*model.SpecialHours),
        reservations: make(map[uint64]*model.Reservation),
        assignments:  make(map[uint64]*model.TableAssignment),
        tableLocks:   make(map[uint64]*sync.Mutex),
    }
}

// now is the single clock for every timestamp the store writes.
func now() time.Time { return time.Now().UTC() }

// lockFor returns the allocation mutex of one table, creating it
// on first use.
func (s *Store) lockFor(tableID uint64) *sync.Mutex {
    s.lockMu.Lock()
    defer s.lockMu.Unlock()
    l, ok := s.tableLocks[tableID]
    if !ok {
        l = &sync.Mutex{}
        s.tableLocks[tableID] = l
    }
    return l
}

// ActiveTables implements booking.Store.
func (s *Store) ActiveTables(ctx context.Context) ([]model.Table, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Table, 0, len(s.tables))
    for _, t := range s.tables {
        if t.IsActive {
            out = append(out, *t)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
    return out, nil
}

// WeeklyHoursFor implements booking.Store.
func (s *Store) WeeklyHoursFor(ctx context.Context, day time.Weekday) (*model.OperatingHours, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    h, ok := s.weekly[day]
    if !ok {
        return nil, nil
    }
    cp := *h
    return &cp, nil
}

// SpecialHoursFor implements booking.Store.
func (s *Store) SpecialHoursFor(ctx context.Context, date time.Time) (*model.SpecialHours, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    sh, ok := s.special[model.DateOnly(date)]
    if !ok {
        return nil, nil
    }
    cp := *sh
    return &cp, nil
}

// CustomerByID implements booking.Store.
func (s *Store) CustomerByID(ctx context.Context, id uint64) (*model.Customer, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    c, ok := s.customers[id]
    if !ok {
        return nil, nil
    }
    cp := *c
    return &cp, nil
}

// CustomerByEmail implements booking.Store.
func (s *Store) CustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    for _, c := range s.customers {
        if c.Email != nil && *c.Email == email {
            cp := *c
            return &cp, nil
        }
    }
    return nil, nil
}

// CustomerByPhone implements booking.Store.
func (s *Store) CustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    for _, c := range s.customers {
        if c.Phone != nil && *c.Phone == phone {
            cp := *c
            return &cp, nil
        }
    }
    return nil, nil
}

// CreateCustomer implements booking.Store.
func (s *Store) CreateCustomer(ctx context.Context, c *model.Customer) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    c.ID = atomic.AddUint64(&s.customerSeq, 1)
    c.CreatedAt = now()
    c.UpdatedAt = c.CreatedAt
    cp := *c
    s.customers[c.ID] = &cp
    return nil
}

// ReservationByID implements booking.Store.
func (s *Store) ReservationByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.reservationLocked(id), nil
}

// reservationLocked copies a reservation out; callers hold mu.
func (s *Store) reservationLocked(id uint64) *model.Reservation {
    r, ok := s.reservations[id]
    if !ok {
        return nil
    }
    cp := *r
    return &cp
}

// ListReservations implements booking.Store.
func (s *Store) ListReservations(ctx context.Context, date *time.Time, status *model.ReservationStatus) ([]model.Reservation, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    var out []model.Reservation
    for _, r := range s.reservations {
        if date != nil && !r.Date.Equal(*date) {
            continue
        }
        if status != nil && r.Status != *status {
            continue
        }
        out = append(out, *r)
    }
    sort.Slice(out, func(i, j int) bool {
        if !out[i].Date.Equal(out[j].Date) {
            return out[i].Date.Before(out[j].Date)
        }
        if out[i].StartTime != out[j].StartTime {
            return out[i].StartTime < out[j].StartTime
        }
        return out[i].ID < out[j].ID
    })
    return out, nil
}

// AssignmentsFor implements booking.Store.
func (s *Store) AssignmentsFor(ctx context.Context, reservationID uint64) ([]model.TableAssignment, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return s.assignmentsLocked(reservationID), nil
}

// assignmentsLocked collects one reservation's assignment rows in
// ascending table-ID order; callers hold mu.
func (s *Store) assignmentsLocked(reservationID uint64) []model.TableAssignment {
    var out []model.TableAssignment
    for _, a := range s.assignments {
        if a.ReservationID == reservationID {
            out = append(out, *a)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].TableID < out[j].TableID })
    return out
}

// OccupiedWindows implements booking.Store.
func (s *Store) OccupiedWindows(ctx context.Context, date time.Time, excludeReservationID uint64) ([]booking.Occupancy, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    date = model.DateOnly(date)
    var out []booking.Occupancy
    for _, a := range s.assignments {
        r, ok := s.reservations[a.ReservationID]
        if !ok || r.ID == excludeReservationID {
            continue
        }
        if !r.Status.Occupies() || !r.Date.Equal(date) {
            continue
        }
        out = append(out, booking.Occupancy{
            TableID:       a.TableID,
            ReservationID: r.ID,
            Start:         r.StartTime,
            End:           r.EndTime(),
        })
    }
    return out, nil
}

// WithTables implements booking.Store.  Locks are taken in
// ascending table-ID order; the callback's writes are staged and
// applied in one step under mu after it returns nil, then the
// locks are released.  A callback error discards every staged
// write.
func (s *Store) WithTables(ctx context.Context, tableIDs []uint64, fn func(booking.AllocTx) error) error {
    ids := append([]uint64(nil), tableIDs...)
    sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
    for i := 1; i < len(ids); i++ {
        if ids[i] == ids[i-1] {
            ids = append(ids[:i], ids[i+1:]...)
            i--
        }
    }
    for _, id := range ids {
        l := s.lockFor(id)
        l.Lock()
        defer l.Unlock()
    }
    if err := ctx.Err(); err != nil {
        return err
    }
    tx := &memTx{s: s}
    if err := fn(tx); err != nil {
        return err
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    for _, apply := range tx.staged {
        apply()
    }
    return nil
}

// memTx stages writes for one table scope.  Reads go against the
// committed state; a transaction does not read its own staged
// writes, which none of the engine flows need.
type memTx struct {
    s      *Store
    staged []func()
}

// Overlaps implements booking.AllocTx.
func (tx *memTx) Overlaps(tableID uint64, date time.Time, start, end model.TimeOfDay, excludeReservationID uint64) (bool, error) {
    tx.s.mu.RLock()
    defer tx.s.mu.RUnlock()
    date = model.DateOnly(date)
    for _, a := range tx.s.assignments {
        if a.TableID != tableID {
            continue
        }
        r, ok := tx.s.reservations[a.ReservationID]
        if !ok || r.ID == excludeReservationID {
            continue
        }
        if !r.Status.Occupies() || !r.Date.Equal(date) {
            continue
        }
        if booking.Overlaps(start, end, r.StartTime, r.EndTime()) {
            return true, nil
        }
    }
    return false, nil
}

// CreateReservation implements booking.AllocTx.  The ID is handed
// out immediately so the caller can reference it; the row itself
// lands at commit.
func (tx *memTx) CreateReservation(r *model.Reservation) error {
    r.ID = atomic.AddUint64(&tx.s.resSeq, 1)
    r.CreatedAt = now()
    r.UpdatedAt = r.CreatedAt
    cp := *r
    tx.staged = append(tx.staged, func() {
        tx.s.reservations[cp.ID] = &cp
    })
    return nil
}

// AddAssignments implements booking.AllocTx.
func (tx *memTx) AddAssignments(reservationID uint64, tableIDs []uint64) error {
    ts := now()
    for _, tableID := range tableIDs {
        a := model.TableAssignment{
            ID:            atomic.AddUint64(&tx.s.asgSeq, 1),
            ReservationID: reservationID,
            TableID:       tableID,
            CreatedAt:     ts,
        }
        tx.staged = append(tx.staged, func() {
            tx.s.assignments[a.ID] = &a
        })
    }
    return nil
}

// ReservationByID implements booking.AllocTx.
func (tx *memTx) ReservationByID(id uint64) (*model.Reservation, error) {
    tx.s.mu.RLock()
    defer tx.s.mu.RUnlock()
    return tx.s.reservationLocked(id), nil
}

// UpdateReservation implements booking.AllocTx.
func (tx *memTx) UpdateReservation(r *model.Reservation) error {
    cp := *r
    tx.staged = append(tx.staged, func() {
        cur, ok := tx.s.reservations[cp.ID]
        if !ok {
            return
        }
        cur.PartySize = cp.PartySize
        cur.Date = cp.Date
        cur.StartTime = cp.StartTime
        cur.DurationMinutes = cp.DurationMinutes
        cur.SpecialRequests = cp.SpecialRequests
        cur.UpdatedAt = now()
    })
    return nil
}

// SetStatus implements booking.AllocTx.
func (tx *memTx) SetStatus(reservationID uint64, status model.ReservationStatus) error {
    tx.staged = append(tx.staged, func() {
        r, ok := tx.s.reservations[reservationID]
        if !ok {
            return
        }
        r.Status = status
        r.UpdatedAt = now()
    })
    return nil
}

// RemoveAssignments implements booking.AllocTx.
func (tx *memTx) RemoveAssignments(reservationID uint64) error {
    tx.staged = append(tx.staged, func() {
        for id, a := range tx.s.assignments {
            if a.ReservationID == reservationID {
                delete(tx.s.assignments, id)
            }
        }
    })
    return nil
}

// DeleteReservation implements booking.AllocTx.
func (tx *memTx) DeleteReservation(reservationID uint64) error {
    tx.staged = append(tx.staged, func() {
        delete(tx.s.reservations, reservationID)
    })
    return nil
}
