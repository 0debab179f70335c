package memstore

import (
    "context"
    "sort"
    "sync/atomic"
    "time"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// The catalog half of the store: tables with their chairs, the
// weekly and special hours rows, and customer listings.  These
// serve the management handlers; the engine itself only consumes
// the reads declared on booking.Store.

// CreateTable inserts a table and its chair rows, one chair per
// seat up to MaxCapacity.
func (s *Store) CreateTable(ctx context.Context, t *model.Table) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    t.ID = atomic.AddUint64(&s.tableSeq, 1)
    t.CreatedAt = now()
    t.UpdatedAt = t.CreatedAt
    cp := *t
    s.tables[t.ID] = &cp
    s.syncChairsLocked(&cp)
    return nil
}

// ListTables returns every table, active or not, ascending by ID.
func (s *Store) ListTables(ctx context.Context) ([]model.Table, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.Table, 0, len(s.tables))
    for _, t := range s.tables {
        out = append(out, *t)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
    return out, nil
}

// TableByID returns one table or nil.
func (s *Store) TableByID(ctx context.Context, id uint64) (*model.Table, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    t, ok := s.tables[id]
    if !ok {
        return nil, nil
    }
    cp := *t
    return &cp, nil
}

// TableByNumber returns the table with the given floor number or
// nil.
func (s *Store) TableByNumber(ctx context.Context, number int) (*model.Table, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    for _, t := range s.tables {
        if t.TableNumber == number {
            cp := *t
            return &cp, nil
        }
    }
    return nil, nil
}

// UpdateTable rewrites a table row and resyncs its chairs to the
// new capacity in the same step.
func (s *Store) UpdateTable(ctx context.Context, t *model.Table) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    cur, ok := s.tables[t.ID]
    if !ok {
        return nil
    }
    cur.TableNumber = t.TableNumber
    cur.MinCapacity = t.MinCapacity
    cur.MaxCapacity = t.MaxCapacity
    cur.IsShared = t.IsShared
    cur.Location = t.Location
    cur.IsActive = t.IsActive
    cur.UpdatedAt = now()
    *t = *cur
    s.syncChairsLocked(cur)
    return nil
}

// DeleteTable removes a table, its chairs and any assignment rows
// pointing at it.
func (s *Store) DeleteTable(ctx context.Context, id uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.tables, id)
    for cid, c := range s.chairs {
        if c.TableID == id {
            delete(s.chairs, cid)
        }
    }
    for aid, a := range s.assignments {
        if a.TableID == id {
            delete(s.assignments, aid)
        }
    }
    return nil
}

// ChairsFor lists a table's chairs ascending by chair number.
func (s *Store) ChairsFor(ctx context.Context, tableID uint64) ([]model.Chair, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    var out []model.Chair
    for _, c := range s.chairs {
        if c.TableID == tableID {
            out = append(out, *c)
        }
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ChairNumber < out[j].ChairNumber })
    return out, nil
}

// syncChairsLocked grows or shrinks a table's chair rows to match
// MaxCapacity; callers hold mu.
func (s *Store) syncChairsLocked(t *model.Table) {
    var have []*model.Chair
    for _, c := range s.chairs {
        if c.TableID == t.ID {
            have = append(have, c)
        }
    }
    sort.Slice(have, func(i, j int) bool { return have[i].ChairNumber < have[j].ChairNumber })
    for len(have) > t.MaxCapacity {
        last := have[len(have)-1]
        delete(s.chairs, last.ID)
        have = have[:len(have)-1]
    }
    for n := len(have) + 1; n <= t.MaxCapacity; n++ {
        c := &model.Chair{
            ID:          atomic.AddUint64(&s.chairSeq, 1),
            TableID:     t.ID,
            ChairNumber: n,
            CreatedAt:   now(),
        }
        s.chairs[c.ID] = c
    }
}

// UpsertWeeklyHours writes the schedule row of one weekday.
func (s *Store) UpsertWeeklyHours(ctx context.Context, h *model.OperatingHours) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    cur, ok := s.weekly[h.DayOfWeek]
    if ok {
        cur.OpenTime = h.OpenTime
        cur.CloseTime = h.CloseTime
        cur.LastSeating = h.LastSeating
        cur.UpdatedAt = now()
        *h = *cur
        return nil
    }
    h.ID = atomic.AddUint64(&s.hoursSeq, 1)
    h.CreatedAt = now()
    h.UpdatedAt = h.CreatedAt
    cp := *h
    s.weekly[h.DayOfWeek] = &cp
    return nil
}

// ListWeeklyHours returns the weekly rows ordered by weekday.
func (s *Store) ListWeeklyHours(ctx context.Context) ([]model.OperatingHours, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]model.OperatingHours, 0, len(s.weekly))
    for _, h := range s.weekly {
        out = append(out, *h)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
    return out, nil
}

// UpsertSpecialHours writes the override row of one date.
func (s *Store) UpsertSpecialHours(ctx context.Context, sh *model.SpecialHours) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    sh.Date = model.DateOnly(sh.Date)
    cur, ok := s.special[sh.Date]
    if ok {
        cur.IsClosed = sh.IsClosed
        cur.OpenTime = sh.OpenTime
        cur.CloseTime = sh.CloseTime
        cur.LastSeating = sh.LastSeating
        cur.Name = sh.Name
        cur.Description = sh.Description
        cur.UpdatedAt = now()
        *sh = *cur
        return nil
    }
    sh.ID = atomic.AddUint64(&s.specialSeq, 1)
    sh.CreatedAt = now()
    sh.UpdatedAt = sh.CreatedAt
    cp := *sh
    s.special[sh.Date] = &cp
    return nil
}

// ListSpecialHours returns override rows on or after the given
// date, ascending.
func (s *Store) ListSpecialHours(ctx context.Context, from time.Time) ([]model.SpecialHours, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    from = model.DateOnly(from)
    var out []model.SpecialHours
    for _, sh := range s.special {
        if sh.Date.Before(from) {
            continue
        }
        out = append(out, *sh)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
    return out, nil
}

// DeleteSpecialHours removes the override row of one date.  The
// second result reports whether a row existed.
func (s *Store) DeleteSpecialHours(ctx context.Context, date time.Time) (bool, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    date = model.DateOnly(date)
    if _, ok := s.special[date]; !ok {
        return false, nil
    }
    delete(s.special, date)
    return true, nil
}

// ListCustomers returns customers, optionally filtered by exact
// email or phone, ascending by ID.
func (s *Store) ListCustomers(ctx context.Context, email, phone string) ([]model.Customer, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    var out []model.Customer
    for _, c := range s.customers {
        if email != "" && (c.Email == nil || *c.Email != email) {
            continue
        }
        if phone != "" && (c.Phone == nil || *c.Phone != phone) {
            continue
        }
        out = append(out, *c)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
    return out, nil
}
